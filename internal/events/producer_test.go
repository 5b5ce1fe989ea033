package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/i474232898/weather-cache/internal/freshness"
	"github.com/i474232898/weather-cache/internal/store"
)

type fakeProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	err     error
	sent    chan struct{}
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	if f.sent != nil {
		f.sent <- struct{}{}
	}
	return results
}

func (f *fakeProducer) Close() {}

func TestRecordShape(t *testing.T) {
	p := newPublisher(&fakeProducer{}, "")
	p.newID = func() string { return "id-1" }

	fetched := time.UnixMilli(1_700_000_000_123)
	rec, err := p.record(store.KindPollution, freshness.CoordIdentity(52.25, 21), fetched, json.RawMessage(`{"list":[]}`))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if rec.Topic != DefaultTopic {
		t.Fatalf("expected default topic, got %s", rec.Topic)
	}
	if string(rec.Key) != "pollution:52.25,21" {
		t.Fatalf("unexpected key %s", rec.Key)
	}

	var got Update
	if err := json.Unmarshal(rec.Value, &got); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	want := Update{
		ID:        "id-1",
		Kind:      "pollution",
		Identity:  "52.25,21",
		FetchedAt: 1_700_000_000_123,
		Payload:   json.RawMessage(`{"list":[]}`),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected message:\n got %+v\nwant %+v", got, want)
	}
}

func TestPlaceKeyIsLowerCase(t *testing.T) {
	p := newPublisher(&fakeProducer{}, "custom")
	rec, err := p.record(store.KindWeather, freshness.PlaceIdentity("Warsaw"), time.Now(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Topic != "custom" || string(rec.Key) != "weather:warsaw" {
		t.Fatalf("unexpected record topic=%s key=%s", rec.Topic, rec.Key)
	}
}

func TestRefreshedPublishesAsync(t *testing.T) {
	fp := &fakeProducer{sent: make(chan struct{}, 1)}
	p := newPublisher(fp, "")

	p.Hit(store.KindWeather, freshness.PlaceIdentity("Warsaw"))
	p.Miss(store.KindWeather, freshness.PlaceIdentity("Warsaw"), false)
	p.Refreshed(store.KindWeather, freshness.PlaceIdentity("Warsaw"), time.Now(), json.RawMessage(`{"name":"Warsaw"}`))

	select {
	case <-fp.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
	}

	fp.mu.Lock()
	defer fp.mu.Unlock()
	if len(fp.records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(fp.records))
	}
}

func TestPublishError(t *testing.T) {
	fp := &fakeProducer{err: errors.New("broker down")}
	p := newPublisher(fp, "")
	rec, _ := p.record(store.KindForecast, freshness.CoordIdentity(1, 2), time.Now(), json.RawMessage(`{}`))

	if err := p.publish(rec); err == nil {
		t.Fatal("expected publish error")
	}
}

func TestSplitBrokers(t *testing.T) {
	got := splitBrokers(" a:9092, ,b:9092 ")
	if !reflect.DeepEqual(got, []string{"a:9092", "b:9092"}) {
		t.Fatalf("unexpected brokers %v", got)
	}
	if _, err := NewPublisher("", ""); err == nil {
		t.Fatal("expected error without brokers")
	}
}
