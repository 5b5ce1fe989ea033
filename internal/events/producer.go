// Package events publishes cache refreshes to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/i474232898/weather-cache/internal/freshness"
	"github.com/i474232898/weather-cache/internal/repository"
	"github.com/i474232898/weather-cache/internal/store"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "weather-updates"

const publishTimeout = 10 * time.Second

// Update is the message body published for each refresh.
type Update struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Identity  string          `json:"identity"`
	FetchedAt int64           `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// producer is the slice of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher is a repository.Observer that sends refreshed payloads to Kafka.
// Hits and misses are not published.
type Publisher struct {
	topic  string
	client producer
	newID  func() string
}

var _ repository.Observer = (*Publisher)(nil)

// NewPublisher connects to the comma-separated brokers.
func NewPublisher(brokers, topic string) (*Publisher, error) {
	seeds := splitBrokers(brokers)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.DefaultProduceTopic(topicOrDefault(topic)),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}

	log.Printf("INFO: kafka publisher initialized for topic %s", topicOrDefault(topic))
	return newPublisher(client, topic), nil
}

func newPublisher(client producer, topic string) *Publisher {
	return &Publisher{
		topic:  topicOrDefault(topic),
		client: client,
		newID:  func() string { return uuid.NewString() },
	}
}

// Close releases the Kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}

func (p *Publisher) Hit(store.Kind, freshness.Identity) {}

func (p *Publisher) Miss(store.Kind, freshness.Identity, bool) {}

// Refreshed publishes asynchronously; failures are logged only.
func (p *Publisher) Refreshed(kind store.Kind, id freshness.Identity, fetchedAt time.Time, payload json.RawMessage) {
	rec, err := p.record(kind, id, fetchedAt, payload)
	if err != nil {
		log.Printf("ERROR: kafka: build message: %v", err)
		return
	}

	go func() {
		if err := p.publish(rec); err != nil {
			log.Printf("ERROR: kafka: async publish %s: %v", string(rec.Key), err)
		}
	}()
}

func (p *Publisher) record(kind store.Kind, id freshness.Identity, fetchedAt time.Time, payload json.RawMessage) (*kgo.Record, error) {
	value, err := json.Marshal(Update{
		ID:        p.newID(),
		Kind:      string(kind),
		Identity:  id.String(),
		FetchedAt: fetchedAt.UnixMilli(),
		Payload:   payload,
	})
	if err != nil {
		return nil, err
	}

	return &kgo.Record{
		Topic: p.topic,
		Key:   []byte(string(kind) + ":" + id.String()),
		Value: value,
	}, nil
}

func (p *Publisher) publish(rec *kgo.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return err
	}
	log.Printf("DEBUG: kafka: published to %s: key=%s", p.topic, string(rec.Key))
	return nil
}

func topicOrDefault(topic string) string {
	if topic == "" {
		return DefaultTopic
	}
	return topic
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
