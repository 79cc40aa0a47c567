// Package aggregation merges per-operating-point result files into the
// consolidated index.
package aggregation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/infrastructure/storage/localfs"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Result summarizes one aggregation pass.
type Result struct {
	Index         result.Index
	Files         int
	NewConditions int
	// NewKeys are the points that were not in the index before this pass, in
	// file order.
	NewKeys []result.Key
	Data    []byte
}

// Aggregator owns one results folder and its index file.
type Aggregator struct {
	resultsDir string
	indexPath  string
	logger     logging.Logger
	metrics    *prometheus.PipelineMetrics
	write      localfs.WriteFunc
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMetrics records aggregation durations and index sizes.
func WithMetrics(m *prometheus.PipelineMetrics) Option {
	return func(a *Aggregator) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithWriteFunc replaces how the index file is written.
func WithWriteFunc(write localfs.WriteFunc) Option {
	return func(a *Aggregator) {
		if write != nil {
			a.write = write
		}
	}
}

// NewAggregator creates an Aggregator for resultsDir writing to indexPath.
func NewAggregator(resultsDir, indexPath string, logger logging.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	a := &Aggregator{
		resultsDir: resultsDir,
		indexPath:  indexPath,
		logger:     logger,
		metrics:    prometheus.NewNopPipelineMetrics(),
		write:      localfs.WriteFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IndexPath returns the consolidated index path.
func (a *Aggregator) IndexPath() string { return a.indexPath }

// ResultsDir returns the scanned folder.
func (a *Aggregator) ResultsDir() string { return a.resultsDir }

// LoadIndex reads the consolidated index. A missing file yields an empty
// index; an unreadable or corrupt one is an error.
func (a *Aggregator) LoadIndex() (result.Index, error) {
	data, err := os.ReadFile(a.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			a.logger.Warn("consolidated index not found, starting empty",
				logging.String("path", a.indexPath),
				logging.String("code", errors.ErrCodeMissingIndexFile.String()))
			return result.Index{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeIO, "read consolidated index").WithDetail(a.indexPath)
	}
	idx, err := result.ParseIndex(data)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Scan lists the result files directly inside the results folder, sorted by
// name.
func (a *Aggregator) Scan() ([]string, error) {
	entries, err := os.ReadDir(a.resultsDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "list results folder").WithDetail(a.resultsDir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !result.IsResultFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Aggregate merges every result file into the index and rewrites the index
// file in full. Records replace existing ones whole. A malformed file name
// or an unreadable record aborts the pass before anything is written.
func (a *Aggregator) Aggregate() (*Result, error) {
	start := time.Now()

	idx, err := a.LoadIndex()
	if err != nil {
		return nil, err
	}
	names, err := a.Scan()
	if err != nil {
		return nil, err
	}

	res := &Result{Index: idx}
	for _, name := range names {
		key, err := result.ParseFilename(name)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(a.resultsDir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeIO, "read result file").WithDetail(path)
		}
		if !json.Valid(raw) {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "result file is not valid JSON").WithDetail(path)
		}

		put := idx.Put(key, json.RawMessage(raw))
		if put.NewCondition {
			res.NewConditions++
		}
		if put.NewPoint {
			res.NewKeys = append(res.NewKeys, key)
		}
		res.Files++
	}

	data, err := idx.Marshal()
	if err != nil {
		return nil, err
	}
	if err := a.write(a.indexPath, data, 0o644); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "write consolidated index").WithDetail(a.indexPath)
	}
	res.Data = data

	elapsed := time.Since(start)
	prometheus.RecordAggregation(a.metrics, res.Files, len(idx), idx.Len(), elapsed)
	a.logger.Info("results aggregated",
		logging.Int("files", res.Files),
		logging.Int("conditions", len(idx)),
		logging.Int("points", idx.Len()),
		logging.Int("new_points", len(res.NewKeys)),
		logging.Duration("duration", elapsed))
	return res, nil
}

//Personal.AI order the ending
