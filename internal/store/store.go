package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record has been written for a kind.
	ErrNotFound = errors.New("no cached record for kind")

	// ErrCorrupt is returned when a persisted record cannot be decoded.
	ErrCorrupt = errors.New("corrupt cached record")
)

// Kind names one of the independently cached resources.
type Kind string

const (
	KindWeather   Kind = "weather"
	KindPollution Kind = "pollution"
	KindForecast  Kind = "forecast"
)

// Kinds lists every resource kind the store holds a slot for.
var Kinds = []Kind{KindWeather, KindPollution, KindForecast}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindWeather, KindPollution, KindForecast:
		return true
	}
	return false
}

// dataKey is the JSON key holding the encoded payload for this kind.
func (k Kind) dataKey() string {
	return string(k) + "Data"
}

// fileName is the on-disk name of this kind's slot.
func (k Kind) fileName() string {
	return string(k) + "_data.json"
}

// Record is one persisted cache slot: the JSON-encoded payload, the time it
// was fetched and the identity it was fetched for.
type Record struct {
	// Timestamp is the fetch time in epoch milliseconds.
	Timestamp int64
	// Data is the payload encoded as a JSON string.
	Data string
	// CityName is set for place-keyed kinds.
	CityName string
	// Lat and Lon are set for coordinate-keyed kinds.
	Lat *float64
	Lon *float64
	// Units is the API unit system the payload was requested in, if any.
	Units string
}

// Store persists exactly one Record per Kind. Writes replace the previous
// record and are never observed half-done by readers.
type Store interface {
	Read(ctx context.Context, kind Kind) (Record, error)
	Write(ctx context.Context, kind Kind, rec Record) error
}

func checkKind(kind Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown cache kind %q", kind)
	}
	return nil
}
