package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/infrastructure/storage/localfs"
	"github.com/solhycool/visualizations/pkg/errors"
)

// RunFunc runs the pipeline once. It is called synchronously on the event
// path, so no two runs overlap.
type RunFunc func(ctx context.Context) error

// Watcher observes a folder tree and runs the pipeline when the gate allows.
type Watcher struct {
	root    string
	gate    *Gate
	run     RunFunc
	logger  logging.Logger
	metrics *prometheus.PipelineMetrics
	now     func() time.Time
	ignore  []string

	mu       sync.Mutex
	watching map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMetrics records gate decisions.
func WithMetrics(m *prometheus.PipelineMetrics) Option {
	return func(w *Watcher) {
		if m != nil {
			w.metrics = m
		}
	}
}

// WithClock sets the time source fed to the gate.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// WithIgnore drops events for the given files and for anything below the
// given directories. The pipeline's own outputs go here, so writing the index
// or a diagram never counts as a change.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			w.ignore = append(w.ignore, filepath.Clean(p))
		}
	}
}

// NewWatcher creates a Watcher rooted at root.
func NewWatcher(root string, gate *Gate, run RunFunc, logger logging.Logger, opts ...Option) *Watcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	w := &Watcher{
		root:     root,
		gate:     gate,
		run:      run,
		logger:   logger,
		metrics:  prometheus.NewNopPipelineMetrics(),
		now:      time.Now,
		watching: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Gate returns the gate, for hot-reloading its timings.
func (w *Watcher) Gate() *Gate { return w.gate }

// Watching returns the number of directories under watch.
func (w *Watcher) Watching() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watching)
}

// Run watches until ctx is cancelled. Pipeline errors are logged and the
// watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUnavailable, "create filesystem watcher")
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("watching results folder for changes",
		logging.String("path", w.root),
		logging.Int("directories", w.Watching()))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", logging.String("path", w.root))
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("filesystem watch error", logging.Err(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, fw *fsnotify.Watcher, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if w.ignored(ev.Name) {
		return
	}
	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		if ev.Has(fsnotify.Create) && fw != nil {
			if err := w.addTree(fw, ev.Name); err != nil {
				w.logger.Warn("failed to watch new directory", logging.String("path", ev.Name), logging.Err(err))
			}
		}
		return
	}

	decision := w.gate.Observe(w.now())
	prometheus.RecordGateDecision(w.metrics, string(decision))
	if decision != DecisionRun {
		w.logger.Debug("change dropped",
			logging.String("path", ev.Name),
			logging.String("reason", string(decision)))
		return
	}

	w.logger.Info("change detected", logging.String("path", ev.Name))
	err := w.run(ctx)
	w.gate.Done()
	if err != nil {
		w.logger.Error("pipeline run failed", logging.String("path", ev.Name), logging.Err(err))
		return
	}
	w.logger.Info("pipeline run finished", logging.String("path", ev.Name))
}

// ignored reports whether path is one of the pipeline's own outputs or a
// file still being written.
func (w *Watcher) ignored(path string) bool {
	if localfs.IsTempFile(path) {
		return true
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, p := range w.ignore {
		rel, err := filepath.Rel(p, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addTree watches dir and every directory below it, except ignored ones.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeIO, "walk results folder").WithDetail(path)
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.watching[path] {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return errors.Wrap(err, errors.ErrCodeIO, "watch directory").WithDetail(path)
		}
		w.watching[path] = true
		return nil
	})
}

//Personal.AI order the ending
