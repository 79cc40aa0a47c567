// Package minio publishes rendered diagrams and the consolidated index to an
// S3-compatible object store.
package minio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

// MinIOAPI is the subset of *minio.Client the publisher uses.
type MinIOAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOConfig holds connection parameters.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
	// Prefix is prepended to every object name.
	Prefix         string
	ConnectTimeout time.Duration
}

// MinIOClient wraps the SDK client with the target bucket.
type MinIOClient struct {
	client MinIOAPI
	config *MinIOConfig
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewMinIOClient connects, verifies reachability and ensures the bucket
// exists.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to connect to minio")
	}

	c := newMinIOClient(client, cfg, log)
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("MinIO client connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return c, nil
}

func newMinIOClient(api MinIOAPI, cfg *MinIOConfig, log logging.Logger) *MinIOClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MinIOClient{client: api, config: cfg, logger: log}
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "solhycool"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
}

// EnsureBucket creates the target bucket when missing.
func (c *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.config.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUnavailable, "failed to check bucket existence").WithDetail(c.config.Bucket)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.config.Bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeUnavailable, "failed to create bucket").WithDetail(c.config.Bucket)
	}
	c.logger.Info("Created bucket", logging.String("bucket", c.config.Bucket))
	return nil
}

// Bucket returns the target bucket name.
func (c *MinIOClient) Bucket() string { return c.config.Bucket }

// ObjectName prefixes name with the configured prefix.
func (c *MinIOClient) ObjectName(name string) string { return c.config.Prefix + name }

var ErrMinIOClientClosed = errors.New(errors.ErrCodeUnavailable, "minio client is closed")

// Put uploads data under the prefixed name.
func (c *MinIOClient) Put(ctx context.Context, name string, reader io.Reader, size int64, contentType string, meta map[string]string) (minio.UploadInfo, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return minio.UploadInfo{}, ErrMinIOClientClosed
	}

	info, err := c.client.PutObject(ctx, c.config.Bucket, c.ObjectName(name), reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		return minio.UploadInfo{}, errors.Wrap(err, errors.ErrCodePublishFailed, "failed to upload object").WithDetail(c.ObjectName(name))
	}
	return info, nil
}

func (c *MinIOClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type HealthStatus struct {
	Healthy bool
	Latency time.Duration
	Error   string
}

func (c *MinIOClient) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	exists, err := c.client.BucketExists(ctx, c.config.Bucket)
	status := &HealthStatus{Healthy: err == nil && exists, Latency: time.Since(start)}
	if err != nil {
		status.Error = err.Error()
		return status, err
	}
	if !exists {
		status.Error = "bucket " + c.config.Bucket + " missing"
	}
	return status, nil
}

// Ping reports an error unless the bucket is reachable and exists.
func (c *MinIOClient) Ping(ctx context.Context) error {
	status, err := c.HealthCheck(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUnavailable, "minio health check")
	}
	if !status.Healthy {
		return errors.New(errors.ErrCodeUnavailable, status.Error)
	}
	return nil
}

//Personal.AI order the ending
