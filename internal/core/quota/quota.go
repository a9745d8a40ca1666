// Package quota tracks the per-day open counter for guest callers
package quota

import (
	"newsstand/internal/core/dates"
)

// DefaultDailyLimit is the guest open cap per calendar day
const DefaultDailyLimit = 3

// Tracker counts accepted guest opens for one caller with an explicit
// calendar-day rollover: when now advances to a new day the counter resets
// the tracker never reads a clock, now is always an input
type Tracker struct {
	limit int
	used  int
	day   dates.Day
}

// NewTracker constructs a Tracker; limit <= 0 uses the default
func NewTracker(limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Tracker{limit: limit}
}

// Restore seeds the tracker from persisted state, for the pg-backed store
func Restore(limit, used int, day dates.Day) *Tracker {
	t := NewTracker(limit)
	t.used = used
	t.day = day
	return t
}

// RecordOpen counts one accepted open on now's calendar day
// callers invoke this exactly once per accepted open resolved as guest_today
func (t *Tracker) RecordOpen(now dates.Day) {
	t.roll(now)
	t.used++
}

// UsedToday reports opens counted on now's calendar day
func (t *Tracker) UsedToday(now dates.Day) int {
	t.roll(now)
	return t.used
}

// Remaining reports how many opens are left today, never negative
func (t *Tracker) Remaining(now dates.Day) int {
	t.roll(now)
	if t.used >= t.limit {
		return 0
	}
	return t.limit - t.used
}

// HasReachedLimit reports whether today's cap is exhausted
func (t *Tracker) HasReachedLimit(now dates.Day) bool {
	t.roll(now)
	return t.used >= t.limit
}

// Limit returns the configured daily cap
func (t *Tracker) Limit() int { return t.limit }

// roll resets the counter when now names a different calendar day
func (t *Tracker) roll(now dates.Day) {
	if !t.day.Equal(now) {
		t.day = now
		t.used = 0
	}
}
