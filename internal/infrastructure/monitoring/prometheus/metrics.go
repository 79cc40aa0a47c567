package prometheus

import (
	"time"
)

// PipelineMetrics holds all metrics recorded by the watch/aggregate/render pipeline.
type PipelineMetrics struct {
	// Watch gate
	GateDecisionsTotal CounterVec

	// Pipeline runs
	PipelineRunsTotal   CounterVec
	PipelineRunDuration HistogramVec

	// Aggregation
	AggregationDuration HistogramVec
	FilesAggregated     CounterVec
	IndexConditions     GaugeVec
	IndexPoints         GaugeVec

	// Diagram rendering
	DiagramsTotal  CounterVec
	RenderDuration HistogramVec

	// Publishers
	PublishTotal CounterVec
}

// Default Buckets
var (
	DefaultRenderDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultPipelineDurationBuckets = []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600}
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// NewPipelineMetrics registers all metrics and returns PipelineMetrics struct.
func NewPipelineMetrics(collector MetricsCollector) *PipelineMetrics {
	m := &PipelineMetrics{}

	m.GateDecisionsTotal = collector.RegisterCounter("gate_decisions_total", "Watch gate decisions", "decision")

	m.PipelineRunsTotal = collector.RegisterCounter("pipeline_runs_total", "Pipeline runs", "trigger", "outcome")
	m.PipelineRunDuration = collector.RegisterHistogram("pipeline_run_duration_seconds", "Pipeline run duration", DefaultPipelineDurationBuckets, "trigger")

	m.AggregationDuration = collector.RegisterHistogram("aggregation_duration_seconds", "Aggregation pass duration", DefaultPipelineDurationBuckets)
	m.FilesAggregated = collector.RegisterCounter("aggregated_files_total", "Result files merged into the index")
	m.IndexConditions = collector.RegisterGauge("index_conditions", "Operating conditions in the index")
	m.IndexPoints = collector.RegisterGauge("index_points", "Operating points in the index")

	m.DiagramsTotal = collector.RegisterCounter("diagrams_total", "Diagram generation attempts", "theme", "outcome")
	m.RenderDuration = collector.RegisterHistogram("render_duration_seconds", "Single diagram render duration", DefaultRenderDurationBuckets, "theme")

	m.PublishTotal = collector.RegisterCounter("publish_total", "Artifact publications", "publisher", "outcome")

	return m
}

// NewNopPipelineMetrics returns metrics that record nothing.
func NewNopPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		GateDecisionsTotal:  noopCounterVec{},
		PipelineRunsTotal:   noopCounterVec{},
		PipelineRunDuration: noopHistogramVec{},
		AggregationDuration: noopHistogramVec{},
		FilesAggregated:     noopCounterVec{},
		IndexConditions:     noopGaugeVec{},
		IndexPoints:         noopGaugeVec{},
		DiagramsTotal:       noopCounterVec{},
		RenderDuration:      noopHistogramVec{},
		PublishTotal:        noopCounterVec{},
	}
}

// Helpers

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func RecordGateDecision(metrics *PipelineMetrics, decision string) {
	metrics.GateDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordPipelineRun(metrics *PipelineMetrics, trigger string, duration time.Duration, err error) {
	metrics.PipelineRunsTotal.WithLabelValues(trigger, outcome(err)).Inc()
	metrics.PipelineRunDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}

func RecordAggregation(metrics *PipelineMetrics, files, conditions, points int, duration time.Duration) {
	metrics.AggregationDuration.WithLabelValues().Observe(duration.Seconds())
	metrics.FilesAggregated.WithLabelValues().Add(float64(files))
	metrics.IndexConditions.WithLabelValues().Set(float64(conditions))
	metrics.IndexPoints.WithLabelValues().Set(float64(points))
}

// RecordDiagram counts one (point, theme) attempt. Skipped attempts carry no duration.
func RecordDiagram(metrics *PipelineMetrics, theme, result string, duration time.Duration) {
	metrics.DiagramsTotal.WithLabelValues(theme, result).Inc()
	if result != OutcomeSkipped {
		metrics.RenderDuration.WithLabelValues(theme).Observe(duration.Seconds())
	}
}

func RecordPublish(metrics *PipelineMetrics, publisher string, err error) {
	metrics.PublishTotal.WithLabelValues(publisher, outcome(err)).Inc()
}

//Personal.AI order the ending
