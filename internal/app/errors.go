package service

import "errors"

// Sentinel kinds for the stage a run failed in.
var (
	ErrNoSource = errors.New("no time entry source configured")
	ErrFetch    = errors.New("fetch time entries")
	ErrValidate = errors.New("validate time entries")
	ErrLayout   = errors.New("lay out pie chart")
	ErrRender   = errors.New("render pie chart")
)
