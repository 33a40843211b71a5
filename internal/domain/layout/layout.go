// Package layout partitions the circle into pie slices proportional to each
// employee's share of the total worked hours.
package layout

import (
	"fmt"
	"math"

	"github.com/okian/workhours/internal/domain/model"
)

const fullCircleDeg = 360.0

// Option applies a configuration option to a layout.
type Option func(*engine)

// WithColorPolicy sets the slice color policy. Nil is ignored.
func WithColorPolicy(p ColorPolicy) Option {
	return func(e *engine) {
		if p != nil {
			e.colors = p
		}
	}
}

type engine struct {
	colors ColorPolicy
}

// Layout returns one slice per employee, in input order, starting at 0 degrees.
// Each sweep is 360 * hours / sum(hours). It returns ErrNoData when employees is
// empty or the hours do not sum to a positive finite value, and ErrNegativeHours
// when a single employee's total is negative.
func Layout(employees []model.AggregatedEmployee, opts ...Option) ([]model.PieSlice, error) {
	e := &engine{colors: PaletteColors()}
	for _, opt := range opts {
		opt(e)
	}

	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: no employees", ErrNoData)
	}
	var total float64
	for _, emp := range employees {
		if emp.TotalHours < 0 {
			return nil, fmt.Errorf("%w: %q has %.2f hours", ErrNegativeHours, emp.EmployeeName, emp.TotalHours)
		}
		total += emp.TotalHours
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, fmt.Errorf("%w: total hours is %v", ErrNoData, total)
	}

	slices := make([]model.PieSlice, len(employees))
	start := 0.0
	for i, emp := range employees {
		sweep := fullCircleDeg * emp.TotalHours / total
		slices[i] = model.PieSlice{
			Label:         emp.EmployeeName,
			StartAngleDeg: start,
			SweepAngleDeg: sweep,
			MidAngleDeg:   start + sweep/2,
			Color:         e.colors(i, len(employees)),
		}
		start += sweep
	}
	return slices, nil
}

// LabelAnchor returns the point at distance radius from (cx, cy) along the
// slice's mid angle, in image coordinates (y grows downwards).
func LabelAnchor(s model.PieSlice, cx, cy, radius float64) (float64, float64) {
	rad := s.MidAngleDeg * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}
