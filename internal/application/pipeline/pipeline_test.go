package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/solhycool/visualizations/internal/application/aggregation"
	"github.com/solhycool/visualizations/internal/application/diagram"
	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/infrastructure/svg"
	"github.com/solhycool/visualizations/internal/testutil"
	"github.com/solhycool/visualizations/pkg/errors"
)

const (
	condition = "Tamb25_HR40_Tv90_Pth500"
	fileA     = "ptop_Tamb25_HR40_Tv90_Pth500_R10_R250_mc12.0_Tdc45.0_Twct38.0.json"
	fileB     = "ptop_Tamb25_HR40_Tv90_Pth500_R10.5_R250_mc14.0_Tdc45.0_Twct38.0.json"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Name() string { return "mock" }

func (m *mockPublisher) PublishDiagram(ctx context.Context, runID string, d artifact.Diagram) error {
	return m.Called(ctx, runID, d).Error(0)
}

func (m *mockPublisher) PublishIndex(ctx context.Context, runID string, idx artifact.Index) error {
	return m.Called(ctx, runID, idx).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockLocker) Unlock(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type PipelineSuite struct {
	suite.Suite
	resultsDir string
	outputDir  string
	logger     *testutil.MockLogger
	publisher  *mockPublisher
	pipeline   *Pipeline
}

func (s *PipelineSuite) SetupTest() {
	s.resultsDir = s.T().TempDir()
	s.outputDir = filepath.Join(s.resultsDir, "diagrams")
	assetsDir := s.T().TempDir()
	s.logger = testutil.NewMockLogger()
	s.publisher = &mockPublisher{}

	tpl, err := svg.LoadTemplate(testutil.WriteFixtureTemplate(s.T(), assetsDir))
	s.Require().NoError(err)

	agg := aggregation.NewAggregator(s.resultsDir, filepath.Join(s.resultsDir, "results.json"), s.logger)
	gen := diagram.NewGenerator(tpl, diagram.NewDirAssets(assetsDir), s.logger)
	s.pipeline = New(agg, gen, diagram.BatchOptions{OutputDir: s.outputDir, Themes: diagram.Themes(false)}, s.logger,
		WithPublishers(s.publisher))
}

func (s *PipelineSuite) TearDownTest() {
	s.publisher.AssertExpectations(s.T())
}

func (s *PipelineSuite) expectPublishing(times int) {
	s.publisher.On("PublishDiagram", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(times)
	s.publisher.On("PublishIndex", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
}

func (s *PipelineSuite) diagramFiles() []string {
	entries, err := os.ReadDir(s.outputDir)
	s.Require().NoError(err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (s *PipelineSuite) TestEndToEnd() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	testutil.WriteResultFile(s.T(), s.resultsDir, fileB, testutil.NewRecord().Set("decision_variables", "R1", 0.5))
	s.expectPublishing(2)

	status, err := s.pipeline.Run(context.Background(), TriggerManual)
	s.Require().NoError(err)

	data, err := os.ReadFile(filepath.Join(s.resultsDir, "results.json"))
	s.Require().NoError(err)
	idx, err := result.ParseIndex(data)
	s.Require().NoError(err)
	s.Equal([]string{condition}, idx.Conditions())
	s.Len(idx[condition], 2)
	s.Contains(idx[condition], "R10_R250_mc12.0_Tdc45.0_Twct38.0")
	s.Contains(idx[condition], "R10.5_R250_mc14.0_Tdc45.0_Twct38.0")

	s.Equal([]string{
		"Tamb25_HR40_Tv90_Pth500_R10.5_R250_mc14.0_Tdc45.0_Twct38.0.svg",
		"Tamb25_HR40_Tv90_Pth500_R10_R250_mc12.0_Tdc45.0_Twct38.0.svg",
	}, s.diagramFiles())

	s.Equal(prometheus.OutcomeSuccess, status.Outcome)
	s.Equal(2, status.Files)
	s.Equal(1, status.Conditions)
	s.Equal(2, status.Points)
	s.Equal(2, status.NewPoints)
	s.Equal(2, status.Rendered)
	s.Zero(status.Failed)
	s.NotEmpty(status.RunID)

	last := s.pipeline.LastRun()
	s.Require().NotNil(last)
	s.Equal(status.RunID, last.RunID)
	s.Equal(1, s.pipeline.Runs())
}

func (s *PipelineSuite) TestSecondRunRendersNothing() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	s.publisher.On("PublishDiagram", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishIndex", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	_, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().NoError(err)
	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().NoError(err)

	s.Zero(status.Rendered)
	s.Equal(1, status.Skipped)
	s.Zero(status.NewPoints)
	s.Equal(2, s.pipeline.Runs())
}

func (s *PipelineSuite) TestRenderFailureDoesNotAbort() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	testutil.WriteResultFile(s.T(), s.resultsDir, fileB, testutil.NewRecord().Delete("environment", "Tamb"))
	s.expectPublishing(1)

	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().NoError(err)

	s.Equal(1, status.Rendered)
	s.Equal(1, status.Failed)
	s.Len(s.diagramFiles(), 1)
}

func (s *PipelineSuite) TestMalformedFilenameAbortsRun() {
	testutil.WriteResultFile(s.T(), s.resultsDir, "ptop_missing_marker.json", testutil.NewRecord())

	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().Error(err)
	s.True(errors.IsMalformedFilename(err))
	s.Equal(prometheus.OutcomeFailure, status.Outcome)
	s.NotEmpty(status.Error)
	s.True(s.logger.HasMessage("error", "pipeline run failed"))

	s.publisher.AssertNotCalled(s.T(), "PublishIndex", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(prometheus.OutcomeFailure, s.pipeline.LastRun().Outcome)
}

func (s *PipelineSuite) TestPublisherFailureIsCounted() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	s.publisher.On("PublishDiagram", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("unreachable")).Once()
	s.publisher.On("PublishIndex", mock.Anything, mock.Anything, mock.MatchedBy(func(idx artifact.Index) bool {
		return idx.Points == 1 && idx.Conditions == 1 && len(idx.Data) > 0
	})).Return(nil).Once()

	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().NoError(err)
	s.Equal(1, status.PublishErr)
	s.Equal(prometheus.OutcomeSuccess, status.Outcome)
	s.Len(s.logger.Find("warn", "failed to publish diagram"), 1)
}

func (s *PipelineSuite) TestLockHeldElsewhere() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	locker := &mockLocker{}
	locker.On("TryLock", mock.Anything).Return(false, nil).Once()
	WithLock(locker)(s.pipeline)

	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.ErrorIs(err, ErrRunLocked)
	s.True(errors.IsCode(err, errors.ErrCodeConflict))
	s.Equal(prometheus.OutcomeFailure, status.Outcome)
	s.NoFileExists(filepath.Join(s.resultsDir, "results.json"))
	locker.AssertNotCalled(s.T(), "Unlock", mock.Anything)
	locker.AssertExpectations(s.T())
}

func (s *PipelineSuite) TestLockAcquiredAndReleased() {
	testutil.WriteResultFile(s.T(), s.resultsDir, fileA, testutil.NewRecord())
	s.expectPublishing(1)
	locker := &mockLocker{}
	locker.On("TryLock", mock.Anything).Return(true, nil).Once()
	locker.On("Unlock", mock.Anything).Return(fmt.Errorf("lease lost")).Once()
	WithLock(locker)(s.pipeline)

	status, err := s.pipeline.Run(context.Background(), TriggerWatch)
	s.Require().NoError(err)
	s.Equal(1, status.Rendered)
	s.Len(s.logger.Find("warn", "failed to release run lock"), 1)
	locker.AssertExpectations(s.T())
}

func (s *PipelineSuite) TestLockError() {
	locker := &mockLocker{}
	locker.On("TryLock", mock.Anything).Return(false, fmt.Errorf("redis down")).Once()
	WithLock(locker)(s.pipeline)

	_, err := s.pipeline.Run(context.Background(), TriggerManual)
	s.EqualError(err, "redis down")
	s.Equal(1, s.pipeline.Runs())
}

func (s *PipelineSuite) TestClose() {
	s.publisher.On("Close").Return(nil).Once()
	s.NoError(s.pipeline.Close())
	s.Equal([]string{"mock"}, s.pipeline.Publishers())
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func TestLastRun_NilBeforeFirstRun(t *testing.T) {
	p := New(nil, nil, diagram.BatchOptions{}, nil)
	assert.Nil(t, p.LastRun())
	require.Zero(t, p.Runs())
}

//Personal.AI order the ending
