package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/workhours/internal/domain/model"
)

// Layouts accepted for timestamps. Zone-less values are read as UTC.
var timestampLayouts = []string{ //nolint:gochecknoglobals // read-only
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// timestamp decodes the ISO-8601 flavours the time-entry endpoint emits.
type timestamp struct {
	time.Time
	set bool
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = timestamp{Time: ts.UTC(), set: true}
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// wireEntry is one element of the endpoint's JSON array. encoding/json matches
// keys case-insensitively, so Id/id and EmployeeName/employeeName both decode.
type wireEntry struct {
	ID           string    `json:"Id"`
	EmployeeName *string   `json:"EmployeeName"`
	StartTimeUTC timestamp `json:"StartTimeUtc"`
	// StarTimeUTC is the misspelled key the live endpoint actually sends.
	StarTimeUTC timestamp `json:"StarTimeUtc"`
	EndTimeUTC  timestamp `json:"EndTimeUtc"`
	DeletedOn   timestamp `json:"DeletedOn"`
}

func (w wireEntry) deleted() bool { return w.DeletedOn.set }

func (w wireEntry) toModel() model.TimeEntry {
	start := w.StartTimeUTC
	if !start.set {
		start = w.StarTimeUTC
	}
	var name string
	if w.EmployeeName != nil {
		name = *w.EmployeeName
	}
	return model.TimeEntry{
		EmployeeID:   w.ID,
		EmployeeName: name,
		StartTimeUTC: start.Time,
		EndTimeUTC:   w.EndTimeUTC.Time,
	}
}

// decodeEntries parses a JSON array of time entries.
func decodeEntries(body []byte, skipDeleted bool) ([]model.TimeEntry, int, error) {
	var wire []wireEntry
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	out := make([]model.TimeEntry, 0, len(wire))
	skipped := 0
	for _, w := range wire {
		if skipDeleted && w.deleted() {
			skipped++
			continue
		}
		out = append(out, w.toModel())
	}
	return out, skipped, nil
}
