// Package window loads catalog items in date windows and pages, merging them
// into a duplicate-free working set with range bookkeeping
package window

import (
	"newsstand/internal/core/dates"
)

// Range is a contiguous span of calendar days, inclusive on both ends
type Range struct {
	Start dates.Day `json:"start"`
	End   dates.Day `json:"end"`
}

// NewRange builds a Range, swapping the ends if given backwards
func NewRange(start, end dates.Day) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Valid reports whether both ends carry dates
func (r Range) Valid() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// Key is the canonical bookkeeping key for the range
func (r Range) Key() string {
	return dates.FormatDay(r.Start) + ".." + dates.FormatDay(r.End)
}

// Contains reports whether d falls inside the range
func (r Range) Contains(d dates.Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}
