package model

import "fmt"

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PieSlice is the angular span allocated to one employee.
// Angles are in degrees, clockwise from the positive x axis in image space.
type PieSlice struct {
	Label         string
	StartAngleDeg float64
	SweepAngleDeg float64
	MidAngleDeg   float64
	Color         RGB
}

// EndAngleDeg returns the angle at which the slice ends.
func (s PieSlice) EndAngleDeg() float64 {
	return s.StartAngleDeg + s.SweepAngleDeg
}
