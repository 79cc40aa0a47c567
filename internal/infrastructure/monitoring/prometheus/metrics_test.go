package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipelineMetrics(t *testing.T) (*PipelineMetrics, MetricsCollector) {
	c := newTestCollector(t)
	m := NewPipelineMetrics(c)
	require.NotNil(t, m)
	return m, c
}

func TestNewPipelineMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestPipelineMetrics(t)
	assert.NotNil(t, m.GateDecisionsTotal)
	assert.NotNil(t, m.PipelineRunsTotal)
	assert.NotNil(t, m.AggregationDuration)
	assert.NotNil(t, m.IndexPoints)
	assert.NotNil(t, m.DiagramsTotal)
	assert.NotNil(t, m.PublishTotal)
}

func TestRecordPipelineRun_Outcomes(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	RecordPipelineRun(m, "watch", time.Second, nil)
	RecordPipelineRun(m, "watch", time.Second, errors.New("boom"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_pipeline_runs_total{outcome="success",trigger="watch"} 1`)
	assert.Contains(t, output, `test_unit_pipeline_runs_total{outcome="failure",trigger="watch"} 1`)
	assert.Contains(t, output, `test_unit_pipeline_run_duration_seconds_count{trigger="watch"} 2`)
}

func TestRecordAggregation_SetsGauges(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	RecordAggregation(m, 3, 1, 2, 10*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, "test_unit_aggregated_files_total 3")
	assert.Contains(t, output, "test_unit_index_conditions 1")
	assert.Contains(t, output, "test_unit_index_points 2")
}

func TestRecordDiagram_SkippedHasNoDuration(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	RecordDiagram(m, "light", OutcomeSkipped, 0)
	RecordDiagram(m, "dark", OutcomeSuccess, 20*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_diagrams_total{outcome="skipped",theme="light"} 1`)
	assert.Contains(t, output, `test_unit_diagrams_total{outcome="success",theme="dark"} 1`)
	assert.Contains(t, output, `test_unit_render_duration_seconds_count{theme="dark"} 1`)
	assert.NotContains(t, output, `test_unit_render_duration_seconds_count{theme="light"}`)
}

func TestRecordGateDecisionAndPublish(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	RecordGateDecision(m, "run")
	RecordPublish(m, "minio", errors.New("down"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_gate_decisions_total{decision="run"} 1`)
	assert.Contains(t, output, `test_unit_publish_total{outcome="failure",publisher="minio"} 1`)
}

func TestNewNopPipelineMetrics_DoesNotPanic(t *testing.T) {
	m := NewNopPipelineMetrics()
	assert.NotPanics(t, func() {
		RecordGateDecision(m, "run")
		RecordPipelineRun(m, "render", time.Second, nil)
		RecordAggregation(m, 1, 1, 1, time.Second)
		RecordDiagram(m, "light", OutcomeSuccess, time.Second)
		RecordPublish(m, "kafka", nil)
	})
}

//Personal.AI order the ending
