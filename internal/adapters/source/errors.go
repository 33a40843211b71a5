package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrRequest          = errors.New("time entry request failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("decode time entries failed")
	ErrBodyTooLarge     = errors.New("response body too large")
)
