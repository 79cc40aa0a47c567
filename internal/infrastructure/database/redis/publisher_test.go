package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

type IndexCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *Client
	cache  *IndexCache
	data   []byte
}

func (s *IndexCacheTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := NewClient(&RedisConfig{Addr: s.mr.Addr(), IndexTTL: time.Hour}, logging.NewNopLogger())
	s.Require().NoError(err)
	s.client = client
	s.cache = NewIndexCache(client, logging.NewNopLogger())

	idx := result.Index{}
	idx.Put(result.Key{Condition: "Tamb_30_HR_50", Point: "Q_300"}, json.RawMessage(`{"costs":{"Ce":7}}`))
	idx.Put(result.Key{Condition: "Tamb_30_HR_50", Point: "Q_400"}, json.RawMessage(`{"costs":{"Ce":9}}`))
	idx.Put(result.Key{Condition: "Tamb_40_HR_20", Point: "Q_300"}, json.RawMessage(`{"costs":{"Ce":11}}`))
	data, err := idx.Marshal()
	s.Require().NoError(err)
	s.data = data
}

func (s *IndexCacheTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *IndexCacheTestSuite) index() artifact.Index {
	return artifact.Index{
		Path:       "/results/results.json",
		Conditions: 2,
		Points:     3,
		Data:       s.data,
		UpdatedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *IndexCacheTestSuite) TestName() {
	s.Equal("redis", s.cache.Name())
}

func (s *IndexCacheTestSuite) TestPublishIndex() {
	ctx := context.Background()
	s.Require().NoError(s.cache.PublishIndex(ctx, "run-1", s.index()))

	full, err := s.mr.Get("solhycool:index")
	s.Require().NoError(err)
	s.JSONEq(string(s.data), full)

	s.Equal("run-1", s.mr.HGet("solhycool:index:meta", "run_id"))
	s.Equal("3", s.mr.HGet("solhycool:index:meta", "points"))
	s.Equal("2024-06-01T12:00:00Z", s.mr.HGet("solhycool:index:meta", "updated_at"))

	s.JSONEq(`{"costs":{"Ce":7}}`, s.mr.HGet("solhycool:cond:Tamb_30_HR_50", "Q_300"))
	s.JSONEq(`{"costs":{"Ce":9}}`, s.mr.HGet("solhycool:cond:Tamb_30_HR_50", "Q_400"))
	s.JSONEq(`{"costs":{"Ce":11}}`, s.mr.HGet("solhycool:cond:Tamb_40_HR_20", "Q_300"))

	s.Equal(time.Hour, s.mr.TTL("solhycool:index"))
	s.Equal(time.Hour, s.mr.TTL("solhycool:cond:Tamb_40_HR_20"))
}

func (s *IndexCacheTestSuite) TestPublishIndex_Expires() {
	s.Require().NoError(s.cache.PublishIndex(context.Background(), "run-1", s.index()))

	s.mr.FastForward(time.Hour + time.Second)
	s.False(s.mr.Exists("solhycool:index"))
	s.False(s.mr.Exists("solhycool:cond:Tamb_30_HR_50"))
}

func (s *IndexCacheTestSuite) TestPublishIndex_InvalidData() {
	idx := s.index()
	idx.Data = []byte(`[1,2]`)

	err := s.cache.PublishIndex(context.Background(), "run-1", idx)
	s.Error(err)
	s.False(s.mr.Exists("solhycool:index"))
}

func (s *IndexCacheTestSuite) TestPublishIndex_ServerDown() {
	s.mr.Close()

	err := s.cache.PublishIndex(context.Background(), "run-1", s.index())
	s.True(errors.IsCode(err, errors.ErrCodePublishFailed))
}

func (s *IndexCacheTestSuite) TestPublishDiagram() {
	d := artifact.Diagram{Condition: "Tamb_30_HR_50", Point: "Q_300", Theme: artifact.ThemeDark, Path: "/out/Tamb_30_HR_50_Q_300_dark.svg"}

	s.Require().NoError(s.cache.PublishDiagram(context.Background(), "run-1", d))
	s.Equal(d.Path, s.mr.HGet("solhycool:diagrams:Tamb_30_HR_50", "Q_300:dark"))
}

func (s *IndexCacheTestSuite) TestRecord() {
	ctx := context.Background()
	s.Require().NoError(s.cache.PublishIndex(ctx, "run-1", s.index()))

	data, err := s.cache.Record(ctx, result.Key{Condition: "Tamb_30_HR_50", Point: "Q_400"})
	s.Require().NoError(err)
	s.JSONEq(`{"costs":{"Ce":9}}`, string(data))

	_, err = s.cache.Record(ctx, result.Key{Condition: "Tamb_30_HR_50", Point: "Q_999"})
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *IndexCacheTestSuite) TestClosed() {
	s.Require().NoError(s.cache.Close())

	assert.ErrorIs(s.T(), s.cache.PublishIndex(context.Background(), "run-1", s.index()), ErrClientClosed)
	assert.ErrorIs(s.T(), s.cache.PublishDiagram(context.Background(), "run-1", artifact.Diagram{}), ErrClientClosed)
}

func TestIndexCacheTestSuite(t *testing.T) {
	suite.Run(t, new(IndexCacheTestSuite))
}

func TestIndexCache_NoTTL(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewIndexCache(client, nil)

	idx := result.Index{}
	idx.Put(result.Key{Condition: "c", Point: "p"}, json.RawMessage(`{}`))
	data, err := idx.Marshal()
	require.NoError(t, err)

	require.NoError(t, cache.PublishIndex(context.Background(), "run-1", artifact.Index{Data: data}))
	assert.Zero(t, mr.TTL("solhycool:index"))
	assert.True(t, mr.Exists("solhycool:cond:c"))
}

//Personal.AI order the ending
