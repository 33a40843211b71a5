package aggregate

import "github.com/okian/workhours/internal/domain/model"

type aggregator struct {
	key Key
}

// groupKey keeps ids and name fallbacks apart, so an id equal to some
// other employee's name never merges the two.
type groupKey struct {
	byName bool
	value  string
}

func (a *aggregator) keyOf(e model.TimeEntry) groupKey {
	if a.key == ByID && e.EmployeeID != "" {
		return groupKey{value: e.EmployeeID}
	}
	return groupKey{byName: true, value: e.EmployeeName}
}

// Aggregate returns one AggregatedEmployee per distinct key, in the order each
// key first appears in entries. TotalHours is the plain sum of every member's
// hours, negative intervals included. An empty input yields an empty slice.
func Aggregate(entries []model.TimeEntry, opts ...Option) []model.AggregatedEmployee {
	a := &aggregator{key: ByName}
	for _, opt := range opts {
		opt(a)
	}

	out := make([]model.AggregatedEmployee, 0)
	index := make(map[groupKey]int, len(entries))
	for _, e := range entries {
		k := a.keyOf(e)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, model.AggregatedEmployee{
				EmployeeID:   k.value,
				EmployeeName: e.EmployeeName,
			})
		}
		out[i].TotalHours += e.Hours()
	}
	return out
}

// TotalHours sums TotalHours over employees.
func TotalHours(employees []model.AggregatedEmployee) float64 {
	var sum float64
	for _, e := range employees {
		sum += e.TotalHours
	}
	return sum
}
