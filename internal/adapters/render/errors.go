package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrInvalidCanvas = errors.New("invalid canvas geometry")
	ErrNoSlices      = errors.New("no slices to render")
	ErrFont          = errors.New("load font failed")
	ErrEncode        = errors.New("encode png failed")
	ErrWrite         = errors.New("write chart file failed")
)
