// Package model contains domain models passed between layers.
package model

import "time"

// secondsPerHour converts durations to fractional hours.
const secondsPerHour = 3600

// TimeEntry is one raw worked interval for an employee.
type TimeEntry struct {
	EmployeeID   string    // identifier as reported by the source
	EmployeeName string    // display name, also the default grouping key
	StartTimeUTC time.Time // interval start
	EndTimeUTC   time.Time // interval end, expected >= start but not enforced
}

// Duration returns end minus start. It is negative for inverted intervals.
func (e TimeEntry) Duration() time.Duration {
	return e.EndTimeUTC.Sub(e.StartTimeUTC)
}

// Hours returns the interval length in fractional hours.
func (e TimeEntry) Hours() float64 {
	return e.Duration().Seconds() / secondsPerHour
}

// Inverted reports whether the interval ends before it starts.
func (e TimeEntry) Inverted() bool {
	return e.EndTimeUTC.Before(e.StartTimeUTC)
}

// AggregatedEmployee captures one employee's worked hours across all entries.
type AggregatedEmployee struct {
	EmployeeID   string // grouping key the entry was merged under
	EmployeeName string
	TotalHours   float64
}
