// Package validate applies an interval-direction policy to raw time entries
// before they are aggregated.
package validate

import (
	"fmt"
	"strings"

	"github.com/okian/workhours/internal/domain/model"
)

// Policy decides what happens to entries whose end precedes their start.
type Policy string

// Supported policies.
const (
	// PolicyKeep sums inverted intervals as negative hours without reporting them.
	PolicyKeep Policy = "keep"
	// PolicyWarn keeps inverted intervals but lists them in the report.
	PolicyWarn Policy = "warn"
	// PolicyClamp turns inverted intervals into zero-length ones.
	PolicyClamp Policy = "clamp"
	// PolicyReject fails on the first inverted interval.
	PolicyReject Policy = "reject"
)

// ParsePolicy parses a policy name (case-insensitive). Empty means PolicyWarn.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyWarn, nil
	case PolicyKeep, PolicyWarn, PolicyClamp, PolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Issue describes one inverted entry.
type Issue struct {
	Index        int
	EmployeeName string
	Hours        float64
}

// Report summarizes what a policy did.
type Report struct {
	Policy  Policy
	Issues  []Issue
	Clamped int
}

// Apply returns the entries to aggregate under policy p. The input slice is
// never modified. With PolicyReject the returned error wraps ErrInvalidInterval.
func Apply(entries []model.TimeEntry, p Policy) ([]model.TimeEntry, Report, error) {
	report := Report{Policy: p}
	switch p {
	case PolicyKeep, PolicyWarn, PolicyClamp, PolicyReject:
	default:
		return nil, report, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(p))
	}

	out := make([]model.TimeEntry, 0, len(entries))
	for i, e := range entries {
		if !e.Inverted() {
			out = append(out, e)
			continue
		}
		switch p {
		case PolicyKeep:
			out = append(out, e)
			continue
		case PolicyReject:
			return nil, report, fmt.Errorf("%w: entry %d for %q ends %s before it starts",
				ErrInvalidInterval, i, e.EmployeeName, -e.Duration())
		}
		report.Issues = append(report.Issues, Issue{Index: i, EmployeeName: e.EmployeeName, Hours: e.Hours()})
		if p == PolicyClamp {
			e.EndTimeUTC = e.StartTimeUTC
			report.Clamped++
		}
		out = append(out, e)
	}
	return out, report, nil
}
