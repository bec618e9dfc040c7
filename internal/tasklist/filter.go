// Package tasklist holds the task list presenter: the filter, sort and
// pagination rules, the task store, and the view-state machine that drives
// delete and edit round trips against the backend.
package tasklist

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"taskgenie/internal/service"
)

// Filter selects a sort order or a status subset.
type Filter string

const (
	FilterNewest     Filter = "newest"
	FilterOldest     Filter = "oldest"
	FilterToDo       Filter = Filter(service.StatusToDo)
	FilterInProgress Filter = Filter(service.StatusInProgress)
	FilterDone       Filter = Filter(service.StatusDone)
)

// DefaultFilter is the filter a fresh presenter starts with.
const DefaultFilter = FilterNewest

// Filters lists every filter in menu order.
var Filters = []Filter{FilterNewest, FilterOldest, FilterToDo, FilterInProgress, FilterDone}

// ErrUnknownFilter is returned by ParseFilter for names outside Filters.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter accepts a filter name, case-insensitive.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Filters, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFilter, s)
}

// Label returns the menu text for the filter.
func (f Filter) Label() string {
	switch f {
	case FilterNewest:
		return "Newest First"
	case FilterOldest:
		return "Oldest First"
	case FilterToDo, FilterInProgress, FilterDone:
		return service.Status(f).Label()
	}
	return string(f)
}

// Next returns the filter after f in menu order, wrapping around.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Apply returns a new slice holding tasks ordered or subset by f:
//   - newest: stable sort by due date, latest first
//   - oldest: stable sort by due date, earliest first
//   - a status: only tasks with that status, original order
//   - anything else: tasks unchanged
//
// Tasks whose due date does not parse sort as the zero time. The input slice
// is never modified.
func Apply(tasks []service.Task, f Filter) []service.Task {
	switch f {
	case FilterNewest:
		out := slices.Clone(tasks)
		slices.SortStableFunc(out, func(a, b service.Task) int {
			return dueOf(b).Compare(dueOf(a))
		})
		return out
	case FilterOldest:
		out := slices.Clone(tasks)
		slices.SortStableFunc(out, func(a, b service.Task) int {
			return dueOf(a).Compare(dueOf(b))
		})
		return out
	case FilterToDo, FilterInProgress, FilterDone:
		out := make([]service.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == service.Status(f) {
				out = append(out, t)
			}
		}
		return out
	}
	return slices.Clone(tasks)
}

func dueOf(t service.Task) time.Time {
	d, _ := t.Due()
	return d
}
