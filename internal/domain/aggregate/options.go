// Package aggregate groups raw time entries and sums worked hours per employee.
package aggregate

import (
	"fmt"
	"strings"
)

// Key selects the field entries are grouped by.
type Key string

// Supported grouping keys.
const (
	// ByName merges entries sharing a display name, whatever their identifiers.
	ByName Key = "name"
	// ByID merges entries sharing an identifier and keeps the first display name seen.
	ByID Key = "id"
)

// ParseKey parses a grouping key name. Empty means ByName.
func ParseKey(s string) (Key, error) {
	switch k := Key(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return ByName, nil
	case ByName, ByID:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
}

// Option applies a configuration option to an aggregation.
type Option func(*aggregator)

// WithKey sets the grouping key. Unknown keys are ignored.
func WithKey(k Key) Option {
	return func(a *aggregator) {
		if k == ByName || k == ByID {
			a.key = k
		}
	}
}
