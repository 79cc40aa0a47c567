package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/internal/domain/artifact"
)

func TestEventPublisher_PublishDiagram(t *testing.T) {
	w := &mockKafkaWriter{}
	pub := NewEventPublisher(newTestProducer(w), "host-a", nil)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	err := pub.PublishDiagram(context.Background(), "run-1", artifact.Diagram{
		Condition: "Tamb_30",
		Point:     "Q_300",
		Theme:     artifact.ThemeDark,
		Path:      "/out/Tamb_30_Q_300_dark.svg",
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.Len(t, w.written, 1)

	msg := w.written[0]
	assert.Equal(t, []byte("Tamb_30"), msg.Key)

	env, err := DecodeEventEnvelope(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, string(artifact.EventDiagramRendered), env.EventType)
	assert.Equal(t, "host-a", env.Source)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.NotEmpty(t, env.EventID)
	assert.True(t, created.Equal(env.Timestamp))
	assert.Equal(t, "run-1", env.Payload.RunID)
	assert.Equal(t, "Q_300", env.Payload.Point)
	assert.Equal(t, artifact.ThemeDark, env.Payload.Theme)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, map[string]string{
		HeaderEventType: string(artifact.EventDiagramRendered),
		HeaderRunID:     "run-1",
	}, headers)
}

func TestEventPublisher_PublishIndex(t *testing.T) {
	w := &mockKafkaWriter{}
	pub := NewEventPublisher(newTestProducer(w), "", nil)

	err := pub.PublishIndex(context.Background(), "run-2", artifact.Index{Path: "/r/results.json", Conditions: 2, Points: 5})
	require.NoError(t, err)
	require.Len(t, w.written, 1)

	assert.Equal(t, []byte(artifact.EventIndexUpdated), w.written[0].Key)
	env, err := DecodeEventEnvelope(w.written[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "solhycool", env.Source)
	assert.Equal(t, 5, env.Payload.Points)
	assert.Equal(t, "/r/results.json", env.Payload.Path)
	assert.False(t, env.Timestamp.IsZero())
}

func TestEventPublisher_NameAndClose(t *testing.T) {
	w := &mockKafkaWriter{}
	pub := NewEventPublisher(newTestProducer(w), "", nil)

	assert.Equal(t, "kafka", pub.Name())
	assert.NoError(t, pub.Close())
	assert.Equal(t, 1, w.closed)
}

func TestDecodeEventEnvelope_Invalid(t *testing.T) {
	_, err := DecodeEventEnvelope([]byte("nope"))
	assert.Error(t, err)

	_, err = DecodeEventEnvelope([]byte(`{"source":"x"}`))
	assert.Error(t, err)
}

//Personal.AI order the ending
