package validate

import "errors"

// Sentinel kinds for validation errors.
var (
	ErrInvalidInterval = errors.New("invalid interval")
	ErrUnknownPolicy   = errors.New("unknown interval policy")
)
