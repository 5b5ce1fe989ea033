package repository

import (
	"encoding/json"
	"time"

	"github.com/i474232898/weather-cache/internal/freshness"
	"github.com/i474232898/weather-cache/internal/store"
)

// Observer is notified of every lookup outcome. Implementations must not
// block; Refreshed is called on the request path.
type Observer interface {
	Hit(kind store.Kind, id freshness.Identity)
	Miss(kind store.Kind, id freshness.Identity, forced bool)
	Refreshed(kind store.Kind, id freshness.Identity, fetchedAt time.Time, payload json.RawMessage)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) Hit(store.Kind, freshness.Identity)                                   {}
func (NoopObserver) Miss(store.Kind, freshness.Identity, bool)                            {}
func (NoopObserver) Refreshed(store.Kind, freshness.Identity, time.Time, json.RawMessage) {}
