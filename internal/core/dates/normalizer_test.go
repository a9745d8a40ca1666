package dates

import (
	"testing"
	"time"
)

func TestNormalizeAcceptedForms(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	want := MustDay("2025-06-14")

	cases := []struct {
		name string
		in   string
	}{
		{"iso", "2025-06-14"},
		{"slashes ymd", "2025/06/14"},
		{"slashes mdy", "06/14/2025"},
		{"short month", "Jun 14, 2025"},
		{"long month", "June 14, 2025"},
		{"day first short", "14 Jun 2025"},
		{"day first long", "14 June 2025"},
		{"rfc3339", "2025-06-14T09:30:00Z"},
		{"t separated", "2025-06-14T09:30:00"},
		{"space separated", "2025-06-14 09:30:00"},
		{"rfc1123", "Sat, 14 Jun 2025 09:30:00 GMT"},
		{"padded", "  2025-06-14  "},
		{"fullwidth digits", "２０２５-０６-１４"},
		{"zero width joiner", "2025-‍06-14"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := n.Normalize(tc.in)
			if !ok {
				t.Fatalf("Normalize(%q) not ok", tc.in)
			}
			if !got.Equal(want) {
				t.Fatalf("Normalize(%q) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestNormalizeEpoch(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	instant := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
	want := DayOf(instant)

	if got, ok := n.Normalize("1749893400"); !ok || !got.Equal(want) {
		t.Fatalf("epoch seconds = %s ok=%v, want %s", got, ok, want)
	}
	if got, ok := n.Normalize("1749893400000"); !ok || !got.Equal(want) {
		t.Fatalf("epoch millis = %s ok=%v, want %s", got, ok, want)
	}
}

func TestNormalizeRejects(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	for _, in := range []string{"", "null", "NULL", "undefined", "not a date", "14-33-2025", "--"} {
		if d, ok := n.Normalize(in); ok {
			t.Fatalf("Normalize(%q) = %s, want not ok", in, d)
		}
	}
}

func TestNormalizeStripsTimeOfDay(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	d, ok := n.Normalize("2025-06-14T23:59:59Z")
	if !ok {
		t.Fatalf("not ok")
	}
	if h, m, s := d.Time().Clock(); h != 0 || m != 0 || s != 0 {
		t.Fatalf("day carries time-of-day: %v", d.Time())
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	d := MustDay("2001-01-01")
	end := MustDay("2001-12-31")
	for !d.After(end) {
		got, ok := n.Normalize(FormatDay(d))
		if !ok || !got.Equal(d) {
			t.Fatalf("round trip failed for %s: got %s ok=%v", d, got, ok)
		}
		d = d.AddDays(1)
	}
}

func TestNormalizeMemoizesAndResets(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	_, _ = n.Normalize("2025-06-14")
	_, _ = n.Normalize("garbage")
	if n.CacheLen() != 2 {
		t.Fatalf("CacheLen = %d, want 2", n.CacheLen())
	}

	// hits do not grow the cache
	_, _ = n.Normalize("2025-06-14")
	if n.CacheLen() != 2 {
		t.Fatalf("CacheLen after hit = %d, want 2", n.CacheLen())
	}

	n.Reset()
	if n.CacheLen() != 0 {
		t.Fatalf("CacheLen after Reset = %d, want 0", n.CacheLen())
	}
}

func TestNormalizeCacheWipesOnFull(t *testing.T) {
	t.Parallel()

	n := NewNormalizerSize(3)
	base := MustDay("2025-01-01")
	for i := 0; i < 3; i++ {
		_, _ = n.Normalize(FormatDay(base.AddDays(i)))
	}
	if n.CacheLen() != 3 {
		t.Fatalf("CacheLen = %d, want 3", n.CacheLen())
	}

	// overflow wipes and re-seeds with the new entry
	_, _ = n.Normalize(FormatDay(base.AddDays(99)))
	if n.CacheLen() != 1 {
		t.Fatalf("CacheLen after overflow = %d, want 1", n.CacheLen())
	}
}

func TestDayArithmetic(t *testing.T) {
	t.Parallel()

	a := MustDay("2025-06-14")
	b := MustDay("2025-06-21")

	if !b.After(a) || !a.Before(b) {
		t.Fatalf("ordering broken between %s and %s", a, b)
	}
	if got := b.DaysSince(a); got != 7 {
		t.Fatalf("DaysSince = %d, want 7", got)
	}
	if !a.AddDays(7).Equal(b) {
		t.Fatalf("AddDays(7) = %s, want %s", a.AddDays(7), b)
	}

	var zero Day
	if !zero.IsZero() || zero.String() != "" {
		t.Fatalf("zero Day misbehaves: %q", zero.String())
	}
}

func TestDayJSON(t *testing.T) {
	t.Parallel()

	d := MustDay("2025-06-14")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-06-14"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Day
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}

	var empty Day
	if err := empty.UnmarshalJSON([]byte(`""`)); err != nil || !empty.IsZero() {
		t.Fatalf("empty string should decode to zero Day, err=%v", err)
	}
}
