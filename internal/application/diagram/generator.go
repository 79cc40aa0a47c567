// Package diagram renders facility diagrams for operating points: line widths
// from the loop flow split, icons sized by their variables inside the
// operating range, labels, consumption icons and the optional dark theme.
package diagram

import (
	"os"
	"path/filepath"
	"time"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/infrastructure/storage/localfs"
	"github.com/solhycool/visualizations/internal/infrastructure/svg"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Generator renders diagrams from one immutable template.
type Generator struct {
	template *svg.Template
	assets   AssetStore
	layout   FacilityLayout
	logger   logging.Logger
	metrics  *prometheus.PipelineMetrics
	now      func() time.Time
	write    localfs.WriteFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithLayout overrides the default facility layout.
func WithLayout(l FacilityLayout) Option {
	return func(g *Generator) { g.layout = l }
}

// WithMetrics records per-diagram outcomes.
func WithMetrics(m *prometheus.PipelineMetrics) Option {
	return func(g *Generator) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithClock sets the time source for artifact timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithWriteFunc replaces how finished diagrams reach the output folder.
func WithWriteFunc(write localfs.WriteFunc) Option {
	return func(g *Generator) {
		if write != nil {
			g.write = write
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(tpl *svg.Template, assets AssetStore, logger logging.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	g := &Generator{
		template: tpl,
		assets:   assets,
		layout:   DefaultFacilityLayout(),
		logger:   logger,
		metrics:  prometheus.NewNopPipelineMetrics(),
		now:      time.Now,
		write:    localfs.WriteFile,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Layout returns the layout in use.
func (g *Generator) Layout() FacilityLayout { return g.layout }

// Render produces one diagram from a fresh copy of the template.
func (g *Generator) Render(op *result.OperatingPoint, theme artifact.Theme) ([]byte, error) {
	r := &renderer{
		doc:    g.template.NewDocument(),
		op:     op,
		layout: g.layout,
		assets: g.assets,
	}

	for _, step := range []func() error{r.lines, r.icons, r.texts, r.cooling, r.costs} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	if theme == artifact.ThemeDark {
		if err := applyDarkTheme(r.doc, g.layout.Dark, g.assets); err != nil {
			return nil, err
		}
	}
	return r.doc.Bytes()
}

// ─── Batch generation ───────────────────────────────────────────────────────

// BatchOptions selects where and which variants are produced.
type BatchOptions struct {
	OutputDir string
	Themes    []artifact.Theme
}

// Themes returns the variants to render: light, plus dark when enabled.
func Themes(dark bool) []artifact.Theme {
	if dark {
		return []artifact.Theme{artifact.ThemeLight, artifact.ThemeDark}
	}
	return []artifact.Theme{artifact.ThemeLight}
}

// Failure is one (point, theme) pair that could not be rendered.
type Failure struct {
	Key   result.Key
	Theme artifact.Theme
	Err   error
}

// Report summarizes a batch.
type Report struct {
	Rendered []artifact.Diagram
	Skipped  int
	Failed   []Failure
}

// GenerateAll renders every operating point of idx that has no diagram yet.
// Rendering failures are logged and collected; a failure to write a diagram
// or prepare the output folder aborts the batch.
func (g *Generator) GenerateAll(idx result.Index, opts BatchOptions) (*Report, error) {
	return g.Generate(idx, idx.Keys(), opts)
}

// Generate renders the given keys of idx.
func (g *Generator) Generate(idx result.Index, keys []result.Key, opts BatchOptions) (*Report, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "create diagram output folder").WithDetail(opts.OutputDir)
	}
	themes := opts.Themes
	if len(themes) == 0 {
		themes = Themes(false)
	}

	report := &Report{}
	for _, key := range keys {
		raw, ok := idx.Get(key)
		if !ok {
			continue
		}
		var op *result.OperatingPoint
		for _, theme := range themes {
			path := filepath.Join(opts.OutputDir, artifact.DiagramFilename(key.String(), theme))
			if _, err := os.Stat(path); err == nil {
				g.logger.Info("diagram already exists, skipping",
					logging.String("condition", key.Condition),
					logging.String("point", key.Point),
					logging.String("theme", theme.String()))
				prometheus.RecordDiagram(g.metrics, theme.String(), prometheus.OutcomeSkipped, 0)
				report.Skipped++
				continue
			}

			start := time.Now()
			if op == nil {
				decoded, err := result.DecodeOperatingPoint(raw)
				if err != nil {
					g.fail(report, key, theme, err, time.Since(start))
					continue
				}
				op = decoded
			}

			data, err := g.Render(op, theme)
			if err != nil {
				g.fail(report, key, theme, err, time.Since(start))
				continue
			}
			if err := g.write(path, data, 0o644); err != nil {
				return report, errors.Wrap(err, errors.ErrCodeIO, "write diagram").WithDetail(path)
			}
			prometheus.RecordDiagram(g.metrics, theme.String(), prometheus.OutcomeSuccess, time.Since(start))

			d := artifact.Diagram{
				Condition: key.Condition,
				Point:     key.Point,
				Theme:     theme,
				Path:      path,
				Size:      len(data),
				CreatedAt: g.now(),
			}
			report.Rendered = append(report.Rendered, d)
			g.logger.Info("diagram generated",
				logging.String("condition", key.Condition),
				logging.String("point", key.Point),
				logging.String("theme", theme.String()),
				logging.String("path", path))
		}
	}
	return report, nil
}

func (g *Generator) fail(report *Report, key result.Key, theme artifact.Theme, err error, elapsed time.Duration) {
	g.logger.Error("diagram generation failed",
		logging.String("condition", key.Condition),
		logging.String("point", key.Point),
		logging.String("theme", theme.String()),
		logging.String("code", errors.GetCode(err).String()),
		logging.Err(err))
	prometheus.RecordDiagram(g.metrics, theme.String(), prometheus.OutcomeFailure, elapsed)
	report.Failed = append(report.Failed, Failure{Key: key, Theme: theme, Err: err})
}

//Personal.AI order the ending
