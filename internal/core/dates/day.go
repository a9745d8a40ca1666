// Package dates provides calendar-day values and a memoizing normalizer
// for the heterogeneous date strings the catalog feeds us
package dates

import (
	"time"
)

// DayLayout is the canonical wire form of a Day
const DayLayout = "2006-01-02"

// Day is a calendar day at UTC midnight
// the zero value means "no date" and compares false against everything
type Day struct {
	t time.Time
}

// DayOf truncates t to its UTC calendar day
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses s in DayLayout
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// MustDay parses s in DayLayout and panics on failure, for tests and constants
func MustDay(s string) Day {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		panic("dates: bad day literal " + s)
	}
	return DayOf(t)
}

// Today returns the current UTC calendar day
func Today() Day { return DayOf(time.Now()) }

// Time exposes the underlying UTC midnight instant
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether d carries no date
func (d Day) IsZero() bool { return d.t.IsZero() }

// Equal reports whether both values name the same calendar day
func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

// Before reports whether d is an earlier day than o
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

// After reports whether d is a later day than o
func (d Day) After(o Day) bool { return d.t.After(o.t) }

// AddDays returns the day n days after d (negative n goes back)
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysSince returns the whole days elapsed from o to d
func (d Day) DaysSince(o Day) int {
	return int(d.t.Sub(o.t) / (24 * time.Hour))
}

// String renders the canonical YYYY-MM-DD form, empty for the zero value
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

// FormatDay renders d in the canonical form; round-trips through Normalize
func FormatDay(d Day) string { return d.String() }

// MarshalJSON encodes the canonical form as a JSON string
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string; empty and null become the zero Day
func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Day{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return err
	}
	*d = DayOf(t)
	return nil
}
