package layout

import "errors"

// Sentinel kinds for layout errors.
var (
	// ErrNoData means there is nothing to chart: no employees, or hours summing to zero.
	ErrNoData = errors.New("no chartable data")
	// ErrNegativeHours means an employee's total would produce a negative sweep.
	ErrNegativeHours = errors.New("negative employee hours")
	// ErrUnknownColorPolicy is returned by ParseColorPolicy.
	ErrUnknownColorPolicy = errors.New("unknown color policy")
)
