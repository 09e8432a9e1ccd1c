package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pet-grooming/internal/ports/events"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublish_KeyHeadersAndTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "booking")
	defer span.End()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(w)

	err := p.Publish(ctx, events.Event{
		ID:          "evt-1",
		Type:        events.TypeBookingCreated,
		AggregateID: "app-9",
		OccurredAt:  time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Payload:     map[string]any{"tutor_id": "t1"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	m := w.msgs[0]
	if string(m.Key) != "app-9" || header(m, "event_type") != "booking.created" || header(m, "event_id") != "evt-1" {
		t.Fatalf("unexpected message %+v", m)
	}
	if header(m, "traceparent") == "" {
		t.Fatalf("expected traceparent header")
	}

	var body map[string]any
	_ = json.Unmarshal(m.Value, &body)
	if body["aggregate_id"] != "app-9" || body["occurred_at"] != "2025-03-10T12:00:00Z" {
		t.Fatalf("unexpected body %s", m.Value)
	}
}

func TestNewPublisher_NoBrokersDisabled(t *testing.T) {
	if p := NewPublisher(" , ", ""); p != nil {
		t.Fatalf("expected nil publisher without brokers")
	}
	if got := SplitBrokers("a:9092, b:9092,,"); len(got) != 2 {
		t.Fatalf("unexpected brokers %v", got)
	}
}
