package common

import "strings"

// HasAny reports whether s contains any of subs.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// NormalizePlace trims surrounding whitespace and collapses inner runs of
// spaces so "  New   York " and "New York" name the same place.
func NormalizePlace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
