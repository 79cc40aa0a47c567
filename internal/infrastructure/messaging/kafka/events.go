package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/pkg/errors"
)

// DefaultTopic carries every artifact event.
const DefaultTopic = "solhycool.pipeline"

// SchemaVersion of EventEnvelope.
const SchemaVersion = "1"

// Header keys set on each message.
const (
	HeaderEventType = "event_type"
	HeaderRunID     = "run_id"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	Source        string         `json:"source"`
	Timestamp     time.Time      `json:"timestamp"`
	SchemaVersion string         `json:"schema_version"`
	Payload       artifact.Event `json:"payload"`
}

// NewEventEnvelope wraps ev with a fresh id.
func NewEventEnvelope(source string, ev artifact.Event) *EventEnvelope {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(ev.Type),
		Source:        source,
		Timestamp:     ts,
		SchemaVersion: SchemaVersion,
		Payload:       ev,
	}
}

// Key partitions events of one operating condition together.
func (e *EventEnvelope) Key() []byte {
	if e.Payload.Condition != "" {
		return []byte(e.Payload.Condition)
	}
	return []byte(e.EventType)
}

// Encode marshals the envelope.
func (e *EventEnvelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode event envelope")
	}
	return data, nil
}

// DecodeEventEnvelope parses a message value.
func DecodeEventEnvelope(data []byte) (*EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "decode event envelope")
	}
	if env.EventType == "" {
		return nil, errors.New(errors.ErrCodeSerialization, "event envelope without event_type")
	}
	return &env, nil
}

//Personal.AI order the ending
