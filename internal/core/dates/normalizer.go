package dates

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultCacheSize bounds the memo cache; on overflow the cache is wiped
const DefaultCacheSize = 4096

// layouts tried in order after the ISO fast path
// keep the day-only forms first so timestamps do not shadow them
var layouts = []string{
	DayLayout,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// pool of unicode cleanup chains, fullwidth digits and stray format
// chars show up in scraped catalog dates
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,                         // fullwidth forms to ASCII
		)
	},
}

type memo struct {
	day Day
	ok  bool
}

// Normalizer parses heterogeneous date inputs to calendar days with memoization
// the cache is owned by the instance so tests can bound and reset it
type Normalizer struct {
	mu    sync.Mutex
	cache map[string]memo
	max   int
}

// NewNormalizer constructs a Normalizer with the default cache bound
func NewNormalizer() *Normalizer { return NewNormalizerSize(DefaultCacheSize) }

// NewNormalizerSize constructs a Normalizer with an explicit cache bound
// size <= 0 disables memoization
func NewNormalizerSize(size int) *Normalizer {
	return &Normalizer{cache: make(map[string]memo), max: size}
}

// Normalize parses raw into a calendar day
// returns ok=false for empty, "null", and unparseable input; never panics
func (n *Normalizer) Normalize(raw string) (Day, bool) {
	if raw == "" {
		return Day{}, false
	}

	n.mu.Lock()
	if m, hit := n.cache[raw]; hit {
		n.mu.Unlock()
		return m.day, m.ok
	}
	n.mu.Unlock()

	day, ok := parse(raw)

	if n.max > 0 {
		n.mu.Lock()
		if len(n.cache) >= n.max {
			n.cache = make(map[string]memo)
		}
		n.cache[raw] = memo{day: day, ok: ok}
		n.mu.Unlock()
	}
	return day, ok
}

// Reset wipes the memo cache, for tests
func (n *Normalizer) Reset() {
	n.mu.Lock()
	n.cache = make(map[string]memo)
	n.mu.Unlock()
}

// CacheLen reports the current number of memoized entries
func (n *Normalizer) CacheLen() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cache)
}

func parse(raw string) (Day, bool) {
	s := preclean(raw)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
		return Day{}, false
	}

	// ISO fast path
	if t, err := time.Parse(DayLayout, s); err == nil {
		return DayOf(t), true
	}

	// epoch seconds or millis
	if isDigits(s) {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			if v >= 1_000_000_000_000 { // millis from 2001-09-09 onward
				return DayOf(time.UnixMilli(v)), true
			}
			return DayOf(time.Unix(v, 0)), true
		}
		return Day{}, false
	}

	for _, layout := range layouts[1:] {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), true
		}
	}
	return Day{}, false
}

// preclean repairs UTF-8, applies the unicode chain, and trims
func preclean(s string) string {
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return strings.TrimSpace(ns)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
