package freshness

import (
	"fmt"
	"strings"
)

// Identity describes what a cached value answers: either a place name or a
// coordinate pair. The zero value is an empty place.
type Identity struct {
	place  string
	lat    float64
	lon    float64
	coords bool
}

// PlaceIdentity identifies a value looked up by place name. Names are compared
// case-insensitively.
func PlaceIdentity(name string) Identity {
	return Identity{place: strings.TrimSpace(name)}
}

// CoordIdentity identifies a value looked up by coordinates. Coordinates are
// compared exactly, with no tolerance.
func CoordIdentity(lat, lon float64) Identity {
	return Identity{lat: lat, lon: lon, coords: true}
}

// IsCoords reports whether the identity is a coordinate pair.
func (i Identity) IsCoords() bool {
	return i.coords
}

// Place returns the place name; empty for coordinate identities.
func (i Identity) Place() string {
	return i.place
}

// Coords returns the coordinate pair; zero for place identities.
func (i Identity) Coords() (lat, lon float64) {
	return i.lat, i.lon
}

// Equal compares two identities under the kind-appropriate rule.
func (i Identity) Equal(other Identity) bool {
	if i.coords != other.coords {
		return false
	}
	if i.coords {
		return i.lat == other.lat && i.lon == other.lon
	}
	return strings.EqualFold(i.place, other.place)
}

// String renders the identity for logs and message keys.
func (i Identity) String() string {
	if i.coords {
		return fmt.Sprintf("%g,%g", i.lat, i.lon)
	}
	return strings.ToLower(i.place)
}
