package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pet-grooming/internal/ports/events"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

const DefaultTopic = "pet-grooming.events"

// MessageWriter es lo que usamos de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher manda eventos de dominio a un topic, con key = aggregate id
// para mantener el orden por turno.
type Publisher struct {
	w MessageWriter
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher devuelve nil si no hay brokers: publicar queda deshabilitado.
func NewPublisher(brokers, topic string) *Publisher {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		return nil
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return &Publisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}
}

func NewPublisherWithWriter(w MessageWriter) *Publisher {
	return &Publisher{w: w}
}

type envelope struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	b, err := json.Marshal(envelope{
		ID:          e.ID,
		Type:        e.Type,
		AggregateID: e.AggregateID,
		OccurredAt:  e.OccurredAt.UTC(),
		Payload:     e.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.AggregateID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.ID)},
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", e.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

func SplitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// headerCarrier adapta los headers de kafka al propagador W3C.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: &headers})
	return headers
}
