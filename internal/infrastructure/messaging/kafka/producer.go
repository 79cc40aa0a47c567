// Package kafka emits pipeline artifact events and reads them back for
// operators following a running watcher.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

var ErrProducerClosed = errors.New(errors.ErrCodeUnavailable, "producer closed")

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	Brokers         []string
	Topic           string
	ClientID        string
	BatchSize       int
	BatchTimeout    time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int

	// RequiredAcks follows the Kafka convention: -1 all, 0 none, 1 leader.
	RequiredAcks int
}

// ProducerStats is a snapshot of producer counters.
type ProducerStats struct {
	MessagesSent   int64
	MessagesFailed int64
	BytesSent      int64
}

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes messages to a single topic.
type Producer struct {
	writer WriterInterface
	config ProducerConfig
	logger logging.Logger
	closed atomic.Bool

	sent   atomic.Int64
	failed atomic.Int64
	bytes  atomic.Int64
}

// NewProducer creates a Producer. No connection is made until the first write.
func NewProducer(cfg ProducerConfig, logger logging.Logger) (*Producer, error) {
	if err := ValidateProducerConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	applyDefaults(&cfg)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Transport: &kafka.Transport{
			DialTimeout: 10 * time.Second,
			ClientID:    cfg.ClientID,
		},
	}

	return newProducer(writer, cfg, logger), nil
}

func newProducer(writer WriterInterface, cfg ProducerConfig, logger logging.Logger) *Producer {
	return &Producer{writer: writer, config: cfg, logger: logger}
}

func applyDefaults(cfg *ProducerConfig) {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 100 * time.Millisecond
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = 1024 * 1024
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "solhycool"
	}
}

// Publish writes one message keyed by key.
func (p *Producer) Publish(ctx context.Context, key, value []byte, headers map[string]string) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if len(value) == 0 {
		return errors.New(errors.ErrCodeValidation, "message value required")
	}
	if len(value) > p.config.MaxMessageBytes {
		return errors.Newf(errors.ErrCodeValidation, "message of %d bytes exceeds %d", len(value), p.config.MaxMessageBytes)
	}

	msg := kafka.Message{Key: key, Value: value, Time: time.Now()}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.failed.Add(1)
		return errors.Wrap(err, errors.ErrCodePublishFailed, "publish failed").WithDetail(p.config.Topic)
	}
	p.sent.Add(1)
	p.bytes.Add(int64(len(value)))

	p.logger.Debug("Message published",
		logging.String("topic", p.config.Topic),
		logging.Int64("latency_ms", time.Since(start).Milliseconds()))
	return nil
}

// Stats returns the producer counters.
func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		MessagesSent:   p.sent.Load(),
		MessagesFailed: p.failed.Load(),
		BytesSent:      p.bytes.Load(),
	}
}

// Topic returns the destination topic.
func (p *Producer) Topic() string { return p.config.Topic }

// Close flushes pending batches and closes the writer.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed", logging.Int64("sent", p.sent.Load()))
	return err
}

// ValidateProducerConfig checks the required fields.
func ValidateProducerConfig(cfg ProducerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.Topic == "" {
		return errors.New(errors.ErrCodeValidation, "topic required")
	}
	switch cfg.RequiredAcks {
	case -1, 0, 1:
	default:
		return errors.Newf(errors.ErrCodeValidation, "required_acks must be -1, 0 or 1, got %d", cfg.RequiredAcks)
	}
	return nil
}

//Personal.AI order the ending
