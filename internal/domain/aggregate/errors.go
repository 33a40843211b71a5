package aggregate

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrUnknownKey = errors.New("unknown grouping key")
)
