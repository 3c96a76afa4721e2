package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"gotest.tools/v3/assert"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	event := Event{
		Type:      ItemAdded,
		UserID:    "u1",
		ProductID: "p1",
		At:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	err := p.Publish(context.Background(), event)
	assert.NilError(t, err)
	assert.Equal(t, 1, len(w.messages))

	msg := w.messages[0]
	assert.Equal(t, "u1", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, ItemAdded, string(msg.Headers[0].Value))

	var decoded Event
	assert.NilError(t, json.Unmarshal(msg.Value, &decoded))
	assert.DeepEqual(t, event, decoded)
}

func TestPublish_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), Event{Type: CouponApplied, UserID: "u1"})
	assert.ErrorContains(t, err, "failed to publish cart event")
}
