package freshness

import (
	"testing"
	"time"
)

func TestDecideTTLBoundary(t *testing.T) {
	stamp := &Stamp{FetchedAtMillis: 0, Identity: PlaceIdentity("Warsaw")}

	tests := []struct {
		name   string
		nowMs  int64
		expect Decision
	}{
		{"just fetched", 0, Hit},
		{"one ms before ttl", 3_599_999, Hit},
		{"exactly ttl", 3_600_000, Miss},
		{"past ttl", 7_200_000, Miss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(stamp, PlaceIdentity("Warsaw"), time.UnixMilli(tt.nowMs), false)
			if got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestDecideIdentityMismatch(t *testing.T) {
	t0 := time.UnixMilli(1_700_000_000_000)
	stamp := &Stamp{FetchedAtMillis: t0.UnixMilli(), Identity: PlaceIdentity("Warsaw")}

	if got := Decide(stamp, PlaceIdentity("Krakow"), t0.Add(time.Millisecond), false); got != Miss {
		t.Fatalf("expected miss for different place, got %s", got)
	}
}

func TestDecideCaseInsensitivePlace(t *testing.T) {
	t0 := time.UnixMilli(1_700_000_000_000)
	stamp := &Stamp{FetchedAtMillis: t0.UnixMilli(), Identity: PlaceIdentity("warsaw")}

	if got := Decide(stamp, PlaceIdentity("Warsaw"), t0.Add(time.Minute), false); got != Hit {
		t.Fatalf("expected hit, got %s", got)
	}
}

func TestDecideForceRefresh(t *testing.T) {
	t0 := time.UnixMilli(1_700_000_000_000)
	stamp := &Stamp{FetchedAtMillis: t0.UnixMilli(), Identity: CoordIdentity(52.23, 21.01)}

	for _, elapsed := range []time.Duration{0, time.Second, 2 * time.Hour} {
		if got := Decide(stamp, CoordIdentity(52.23, 21.01), t0.Add(elapsed), true); got != Miss {
			t.Fatalf("expected forced miss after %v, got %s", elapsed, got)
		}
	}
}

func TestDecideAbsentEntry(t *testing.T) {
	if got := Decide(nil, PlaceIdentity("Warsaw"), time.Now(), false); got != Miss {
		t.Fatalf("expected miss without entry, got %s", got)
	}
}

func TestDecideCoordinatesExact(t *testing.T) {
	t0 := time.UnixMilli(1_700_000_000_000)
	stamp := &Stamp{FetchedAtMillis: t0.UnixMilli(), Identity: CoordIdentity(52.2298, 21.0118)}
	now := t0.Add(time.Minute)

	if got := Decide(stamp, CoordIdentity(52.2298, 21.0118), now, false); got != Hit {
		t.Fatalf("expected hit for identical coordinates, got %s", got)
	}
	if got := Decide(stamp, CoordIdentity(52.22980001, 21.0118), now, false); got != Miss {
		t.Fatalf("expected miss for slightly different latitude, got %s", got)
	}
}

func TestDecideFutureStamp(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	stamp := &Stamp{FetchedAtMillis: now.Add(time.Minute).UnixMilli(), Identity: PlaceIdentity("Warsaw")}

	if got := Decide(stamp, PlaceIdentity("Warsaw"), now, false); got != Miss {
		t.Fatalf("expected miss for entry stamped in the future, got %s", got)
	}
}

func TestPolicyCustomTTL(t *testing.T) {
	p := NewPolicy(10 * time.Minute)
	stamp := &Stamp{FetchedAtMillis: 0, Identity: PlaceIdentity("Oslo")}

	if got := p.Decide(stamp, PlaceIdentity("Oslo"), time.UnixMilli(599_999), false); got != Hit {
		t.Fatalf("expected hit, got %s", got)
	}
	if got := p.Decide(stamp, PlaceIdentity("Oslo"), time.UnixMilli(600_000), false); got != Miss {
		t.Fatalf("expected miss, got %s", got)
	}
	if NewPolicy(0).TTL != DefaultTTL {
		t.Fatalf("expected default ttl for non-positive input")
	}
}

func TestIdentityPlaceNeverEqualsCoords(t *testing.T) {
	if PlaceIdentity("").Equal(CoordIdentity(0, 0)) {
		t.Fatal("place identity must not equal coordinate identity")
	}
}
