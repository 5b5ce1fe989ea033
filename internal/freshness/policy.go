package freshness

import "time"

// DefaultTTL is applied uniformly to every resource kind.
const DefaultTTL = time.Hour

// Decision is the outcome of a freshness check.
type Decision int

const (
	Miss Decision = iota
	Hit
)

func (d Decision) String() string {
	if d == Hit {
		return "hit"
	}
	return "miss"
}

// Stamp is the part of a cached entry the policy looks at.
type Stamp struct {
	FetchedAtMillis int64
	Identity        Identity
}

// Policy decides whether a stored entry may be served instead of fetching.
type Policy struct {
	TTL time.Duration
}

// NewPolicy returns a policy with the given TTL, falling back to DefaultTTL
// when ttl is not positive.
func NewPolicy(ttl time.Duration) Policy {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Policy{TTL: ttl}
}

// Decide returns Hit only when refresh is not forced, an entry exists, its age
// is strictly below the TTL and it answers the requested identity.
// An entry stamped after now is treated as a Miss.
func (p Policy) Decide(stamp *Stamp, requested Identity, now time.Time, forceRefresh bool) Decision {
	if forceRefresh || stamp == nil {
		return Miss
	}

	elapsed := now.UnixMilli() - stamp.FetchedAtMillis
	if elapsed < 0 || elapsed >= p.TTL.Milliseconds() {
		return Miss
	}

	if !stamp.Identity.Equal(requested) {
		return Miss
	}
	return Hit
}

// Decide applies the default policy.
func Decide(stamp *Stamp, requested Identity, now time.Time, forceRefresh bool) Decision {
	return NewPolicy(DefaultTTL).Decide(stamp, requested, now, forceRefresh)
}
