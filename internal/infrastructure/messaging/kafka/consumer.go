package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

// ConsumerConfig holds configuration for the Consumer.
type ConsumerConfig struct {
	Brokers []string
	Topic   string

	// GroupID enables committed offsets. Empty reads from StartOffset.
	GroupID string

	// FromBeginning starts an ungrouped reader at the oldest offset.
	FromBeginning bool
}

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventHandler receives each decoded envelope.
type EventHandler func(ctx context.Context, env *EventEnvelope) error

// Consumer reads artifact events.
type Consumer struct {
	reader  ReaderInterface
	grouped bool
	logger  logging.Logger
}

// NewConsumer creates a Consumer.
func NewConsumer(cfg ConsumerConfig, logger logging.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.Topic == "" {
		return nil, errors.New(errors.ErrCodeValidation, "topic required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	start := kafka.LastOffset
	if cfg.FromBeginning {
		start = kafka.FirstOffset
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: start,
		MaxWait:     time.Second,
	})
	return &Consumer{reader: reader, grouped: cfg.GroupID != "", logger: logger}, nil
}

// Consume decodes messages until ctx is cancelled or the handler fails.
// Undecodable messages are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, errors.ErrCodeUnavailable, "fetch message")
		}

		env, err := DecodeEventEnvelope(m.Value)
		if err != nil {
			c.logger.Warn("Skipping undecodable message",
				logging.Int64("offset", m.Offset),
				logging.Int("partition", m.Partition),
				logging.Err(err))
		} else if err := handler(ctx, env); err != nil {
			return err
		}

		if c.grouped {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				c.logger.Error("CommitMessages failed", logging.Err(err))
			}
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

//Personal.AI order the ending
