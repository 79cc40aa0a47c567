package kafka

import (
	"context"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
)

// EventPublisher emits one event per rendered diagram and per index update.
type EventPublisher struct {
	producer *Producer
	source   string
	logger   logging.Logger
}

var _ artifact.Publisher = (*EventPublisher)(nil)

// NewEventPublisher creates an EventPublisher. source identifies this host.
func NewEventPublisher(producer *Producer, source string, logger logging.Logger) *EventPublisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if source == "" {
		source = "solhycool"
	}
	return &EventPublisher{producer: producer, source: source, logger: logger}
}

func (p *EventPublisher) Name() string { return "kafka" }

func (p *EventPublisher) PublishDiagram(ctx context.Context, runID string, d artifact.Diagram) error {
	return p.emit(ctx, artifact.NewDiagramEvent(runID, d))
}

func (p *EventPublisher) PublishIndex(ctx context.Context, runID string, idx artifact.Index) error {
	return p.emit(ctx, artifact.NewIndexEvent(runID, idx))
}

func (p *EventPublisher) Close() error {
	return p.producer.Close()
}

func (p *EventPublisher) emit(ctx context.Context, ev artifact.Event) error {
	env := NewEventEnvelope(p.source, ev)
	data, err := env.Encode()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, env.Key(), data, map[string]string{
		HeaderEventType: env.EventType,
		HeaderRunID:     ev.RunID,
	})
}

//Personal.AI order the ending
