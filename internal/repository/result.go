package repository

import (
	"errors"

	"github.com/i474232898/weather-cache/internal/freshness"
)

// ErrNoLocation is carried by the coordinate results of an Update when the
// current weather, and therefore the coordinates, could not be obtained.
var ErrNoLocation = errors.New("no coordinates available for location")

// ErrEmptyPlace is returned for a current-weather lookup without a place name.
var ErrEmptyPlace = errors.New("place name is empty")

// Source says where a Result's value came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// Result is the outcome of one lookup. When Source is SourceNone the value is
// the zero value and Err, if set, is the reason the fetch failed. A stale
// cached value is never returned in its place.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Found reports whether the result holds a value.
func (r Result[T]) Found() bool {
	return r.Source != SourceNone
}

// Entry is a decoded cache slot.
type Entry[T any] struct {
	Payload T
	Stamp   freshness.Stamp
	// Units is the unit system the payload was fetched in; empty for
	// unit-less kinds.
	Units string
}
