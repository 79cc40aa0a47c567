// Package pipeline runs one aggregation pass followed by diagram generation
// for every point without a diagram, then hands the new artifacts to the
// configured publishers.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solhycool/visualizations/internal/application/aggregation"
	"github.com/solhycool/visualizations/internal/application/diagram"
	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Trigger names what started a run.
type Trigger string

const (
	TriggerWatch  Trigger = "watch"
	TriggerManual Trigger = "manual"
)

// ErrRunLocked is returned when another process holds the run lock.
var ErrRunLocked = errors.New(errors.ErrCodeConflict, "pipeline run held by another process")

// Locker guards runs across processes sharing a results folder.
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

// RunStatus describes one run.
type RunStatus struct {
	RunID      string        `json:"run_id"`
	Trigger    Trigger       `json:"trigger"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration_ns"`
	Outcome    string        `json:"outcome"`
	Error      string        `json:"error,omitempty"`

	Files      int `json:"files"`
	Conditions int `json:"conditions"`
	Points     int `json:"points"`
	NewPoints  int `json:"new_points"`
	Rendered   int `json:"rendered"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	PublishErr int `json:"publish_errors"`
}

// Pipeline wires the aggregator and the generator. Runs are serialized.
type Pipeline struct {
	aggregator *aggregation.Aggregator
	generator  *diagram.Generator
	batch      diagram.BatchOptions
	publishers []artifact.Publisher
	lock       Locker
	logger     logging.Logger
	metrics    *prometheus.PipelineMetrics
	now        func() time.Time

	runMu sync.Mutex

	mu   sync.RWMutex
	last *RunStatus
	runs int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPublishers appends publishers notified after each run.
func WithPublishers(pubs ...artifact.Publisher) Option {
	return func(p *Pipeline) { p.publishers = append(p.publishers, pubs...) }
}

// WithLock makes each run acquire lock first.
func WithLock(l Locker) Option {
	return func(p *Pipeline) { p.lock = l }
}

// WithMetrics records run outcomes and publish results.
func WithMetrics(m *prometheus.PipelineMetrics) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithClock sets the time source for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline.
func New(agg *aggregation.Aggregator, gen *diagram.Generator, batch diagram.BatchOptions, logger logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	p := &Pipeline{
		aggregator: agg,
		generator:  gen,
		batch:      batch,
		logger:     logger,
		metrics:    prometheus.NewNopPipelineMetrics(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run aggregates, renders and publishes. Aggregation and write failures
// abort the run and are returned; per-point render failures and publisher
// failures are only counted in the status.
func (p *Pipeline) Run(ctx context.Context, trigger Trigger) (*RunStatus, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	status := &RunStatus{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		StartedAt: p.now(),
	}
	log := p.logger.With(logging.String("run_id", status.RunID), logging.String("trigger", string(trigger)))
	log.Info("pipeline run started")

	if p.lock != nil {
		acquired, err := p.lock.TryLock(ctx)
		if err == nil && !acquired {
			err = ErrRunLocked
		}
		if err != nil {
			p.finish(log, status, err)
			return status, err
		}
		defer func() {
			if err := p.lock.Unlock(context.Background()); err != nil {
				log.Warn("failed to release run lock", logging.Err(err))
			}
		}()
	}

	err := p.execute(ctx, log, status)
	p.finish(log, status, err)
	return status, err
}

func (p *Pipeline) execute(ctx context.Context, log logging.Logger, status *RunStatus) error {
	agg, err := p.aggregator.Aggregate()
	if err != nil {
		return err
	}
	status.Files = agg.Files
	status.Conditions = len(agg.Index)
	status.Points = agg.Index.Len()
	status.NewPoints = len(agg.NewKeys)

	report, err := p.generator.GenerateAll(agg.Index, p.batch)
	if report != nil {
		status.Rendered = len(report.Rendered)
		status.Skipped = report.Skipped
		status.Failed = len(report.Failed)
	}
	if err != nil {
		return err
	}

	idx := artifact.Index{
		Path:       p.aggregator.IndexPath(),
		Conditions: status.Conditions,
		Points:     status.Points,
		Data:       agg.Data,
		UpdatedAt:  p.now(),
	}
	status.PublishErr = p.publish(ctx, log, status.RunID, report.Rendered, idx)
	return nil
}

// publish hands artifacts to every publisher and returns the failure count.
func (p *Pipeline) publish(ctx context.Context, log logging.Logger, runID string, diagrams []artifact.Diagram, idx artifact.Index) int {
	failures := 0
	for _, pub := range p.publishers {
		for _, d := range diagrams {
			err := pub.PublishDiagram(ctx, runID, d)
			prometheus.RecordPublish(p.metrics, pub.Name(), err)
			if err != nil {
				failures++
				log.Warn("failed to publish diagram",
					logging.String("publisher", pub.Name()),
					logging.String("condition", d.Condition),
					logging.String("point", d.Point),
					logging.String("theme", d.Theme.String()),
					logging.Err(err))
			}
		}
		err := pub.PublishIndex(ctx, runID, idx)
		prometheus.RecordPublish(p.metrics, pub.Name(), err)
		if err != nil {
			failures++
			log.Warn("failed to publish index", logging.String("publisher", pub.Name()), logging.Err(err))
		}
	}
	return failures
}

func (p *Pipeline) finish(log logging.Logger, status *RunStatus, err error) {
	status.FinishedAt = p.now()
	status.Duration = status.FinishedAt.Sub(status.StartedAt)
	status.Outcome = prometheus.OutcomeSuccess
	if err != nil {
		status.Outcome = prometheus.OutcomeFailure
		status.Error = err.Error()
	}
	prometheus.RecordPipelineRun(p.metrics, string(status.Trigger), status.Duration, err)

	p.mu.Lock()
	snapshot := *status
	p.last = &snapshot
	p.runs++
	p.mu.Unlock()

	fields := []logging.Field{
		logging.Int("files", status.Files),
		logging.Int("new_points", status.NewPoints),
		logging.Int("rendered", status.Rendered),
		logging.Int("skipped", status.Skipped),
		logging.Int("failed", status.Failed),
		logging.Duration("duration", status.Duration),
	}
	if err != nil {
		log.Error("pipeline run failed", append(fields, logging.Err(err))...)
		return
	}
	log.Info("pipeline run finished", fields...)
}

// LastRun returns a copy of the most recent run status, nil before the first run.
func (p *Pipeline) LastRun() *RunStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return nil
	}
	s := *p.last
	return &s
}

// Runs returns the number of completed runs.
func (p *Pipeline) Runs() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.runs
}

// Publishers returns the configured publisher names.
func (p *Pipeline) Publishers() []string {
	names := make([]string, 0, len(p.publishers))
	for _, pub := range p.publishers {
		names = append(names, pub.Name())
	}
	return names
}

// Close releases every publisher and returns the first error.
func (p *Pipeline) Close() error {
	var first error
	for _, pub := range p.publishers {
		if err := pub.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//Personal.AI order the ending
