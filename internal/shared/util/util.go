package util

import (
	"sort"
)

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CloneStrings returns a copy of in. The result is never nil, so it encodes
// as an empty JSON array rather than null.
func CloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ContainsString reports whether want is one of values.
func ContainsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
