package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Key layout under the prefix:
//
//	index                     full consolidated index JSON
//	index:meta                hash of run_id, conditions, points, updated_at
//	cond:<condition>          hash of point → record JSON
//	diagrams:<condition>      hash of <point>:<theme> → diagram path
const (
	keyIndex     = "index"
	keyIndexMeta = "index:meta"
	keyCondition = "cond"
	keyDiagrams  = "diagrams"
)

// IndexCache mirrors the consolidated index into Redis hashes.
type IndexCache struct {
	client *Client
	ttl    time.Duration
	logger logging.Logger
}

var _ artifact.Publisher = (*IndexCache)(nil)

// NewIndexCache creates an IndexCache using the client's IndexTTL.
func NewIndexCache(client *Client, log logging.Logger) *IndexCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &IndexCache{client: client, ttl: client.config.IndexTTL, logger: log}
}

func (c *IndexCache) Name() string { return "redis" }

// PublishIndex replaces the cached index and the per-condition hashes in one
// transaction.
func (c *IndexCache) PublishIndex(ctx context.Context, runID string, idx artifact.Index) error {
	if c.client.isClosed() {
		return ErrClientClosed
	}
	parsed, err := result.ParseIndex(idx.Data)
	if err != nil {
		return err
	}

	_, err = c.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.client.Key(keyIndex), idx.Data, c.ttl)
		meta := c.client.Key(keyIndexMeta)
		pipe.HSet(ctx, meta, map[string]interface{}{
			"run_id":     runID,
			"path":       idx.Path,
			"conditions": idx.Conditions,
			"points":     idx.Points,
			"updated_at": idx.UpdatedAt.UTC().Format(time.RFC3339),
		})
		c.expire(ctx, pipe, meta)
		for _, cond := range parsed.Conditions() {
			key := c.client.Key(keyCondition, cond)
			fields := make(map[string]interface{}, len(parsed[cond]))
			for point, record := range parsed[cond] {
				fields[point] = []byte(record)
			}
			pipe.HSet(ctx, key, fields)
			c.expire(ctx, pipe, key)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePublishFailed, "cache consolidated index")
	}
	c.logger.Debug("index cached", logging.Int("conditions", len(parsed)), logging.String("run_id", runID))
	return nil
}

// PublishDiagram records where the diagram of a point lives.
func (c *IndexCache) PublishDiagram(ctx context.Context, runID string, d artifact.Diagram) error {
	if c.client.isClosed() {
		return ErrClientClosed
	}
	key := c.client.Key(keyDiagrams, d.Condition)
	_, err := c.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, d.Point+":"+d.Theme.String(), d.Path)
		c.expire(ctx, pipe, key)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePublishFailed, "cache diagram location").WithDetail(d.Filename())
	}
	return nil
}

// Record returns the cached record of one operating point.
func (c *IndexCache) Record(ctx context.Context, key result.Key) ([]byte, error) {
	data, err := c.client.rdb.HGet(ctx, c.client.Key(keyCondition, key.Condition), key.Point).Bytes()
	if err == redis.Nil {
		return nil, errors.New(errors.ErrCodeNotFound, "operating point not cached").WithDetail(key.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "read cached record")
	}
	return data, nil
}

// Close closes the underlying client.
func (c *IndexCache) Close() error {
	return c.client.Close()
}

func (c *IndexCache) expire(ctx context.Context, pipe redis.Pipeliner, key string) {
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
}

//Personal.AI order the ending
