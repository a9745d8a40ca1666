package window

import (
	"context"
	"fmt"
	"sync"
	"time"

	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
	perr "newsstand/internal/platform/errors"
	"newsstand/internal/platform/logger"
)

// Source is the catalog port the loader fetches from
type Source interface {
	ItemsInRange(ctx context.Context, start, end dates.Day) ([]content.Item, error)
	AllItems(ctx context.Context) ([]content.Item, error)
	FeaturedItems(ctx context.Context) ([]content.Item, error)
	ItemsForDate(ctx context.Context, d dates.Day) ([]content.Item, error)
	ItemsForPage(ctx context.Context, page int) ([]content.Item, error)
}

// Config tunes the loader
type Config struct {
	// MinBatch is the sparse-result threshold, a range or page merge adding
	// fewer items than this triggers the one-shot full-catalog fallback
	MinBatch int

	// PrefetchMargin is how close the navigation index may come to an edge
	// of the ordered list before a proactive load fires
	PrefetchMargin int

	// PageEdge is the paginated-mode equivalent of PrefetchMargin
	PageEdge int

	// FetchTimeout bounds each individual upstream fetch
	FetchTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MinBatch <= 0 {
		c.MinBatch = 5
	}
	if c.PrefetchMargin <= 0 {
		c.PrefetchMargin = 10
	}
	if c.PageEdge <= 0 {
		c.PageEdge = 3
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	return c
}

// Loader owns the LoadedState and serializes all merges through one commit path
// fetches run concurrently in the all-settle pattern, failures degrade to
// empty contributions
type Loader struct {
	src Source
	log logger.Logger
	cfg Config
	now func() dates.Day

	mu          sync.Mutex
	state       *LoadedState
	gen         uint64
	fullFetched bool
	maxPage     int
}

// Option tunes loader construction
type Option func(*Loader)

// WithNow overrides the clock used for the "today" slice, for tests
func WithNow(fn func() dates.Day) Option {
	return func(l *Loader) { l.now = fn }
}

// NewLoader constructs a Loader over src
func NewLoader(src Source, log logger.Logger, cfg Config, opts ...Option) *Loader {
	l := &Loader{
		src:   src,
		log:   log,
		cfg:   cfg.withDefaults(),
		now:   dates.Today,
		state: NewState(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// fetch is one named upstream call, run concurrently with its siblings
type fetch struct {
	name string
	run  func(ctx context.Context) ([]content.Item, error)
}

// LoadRange merges the items of r plus the featured and today slices
// already-loaded range keys are a no-op; returns the count of newly added items
// an entirely failed load returns an upstream error, a partial one proceeds
func (l *Loader) LoadRange(ctx context.Context, r Range) (int, error) {
	if !r.Valid() {
		return 0, perr.InvalidArgf("range requires both start and end days")
	}
	key := r.Key()

	l.mu.Lock()
	if l.state.Loaded(key) {
		l.mu.Unlock()
		return 0, nil
	}
	gen := l.gen
	l.mu.Unlock()

	today := l.now()
	batches, oks := l.settle(ctx, []fetch{
		{name: "range " + key, run: func(ctx context.Context) ([]content.Item, error) {
			return l.src.ItemsInRange(ctx, r.Start, r.End)
		}},
		{name: "featured", run: func(ctx context.Context) ([]content.Item, error) {
			return l.src.FeaturedItems(ctx)
		}},
		{name: "today " + dates.FormatDay(today), run: func(ctx context.Context) ([]content.Item, error) {
			return l.src.ItemsForDate(ctx, today)
		}},
	})
	if !anySettled(oks) {
		return 0, perr.Upstreamf("all catalog fetches failed for range %s", key)
	}

	// the key is only marked loaded when the range's own slice came back,
	// so a window blanked by a transient failure stays fetchable
	added, committed := l.commit(gen, key, oks[0], batches)
	if !committed {
		return 0, nil
	}
	added += l.maybeFullFallback(ctx, gen, added)
	return added, nil
}

// LoadMore merges one page of the catalog, already-loaded pages are a no-op
func (l *Loader) LoadMore(ctx context.Context, page int) (int, error) {
	if page < 1 {
		return 0, perr.InvalidArgf("page must be >= 1")
	}
	key := fmt.Sprintf("page:%d", page)

	l.mu.Lock()
	if l.state.Loaded(key) {
		l.mu.Unlock()
		return 0, nil
	}
	gen := l.gen
	l.mu.Unlock()

	batches, oks := l.settle(ctx, []fetch{
		{name: key, run: func(ctx context.Context) ([]content.Item, error) {
			return l.src.ItemsForPage(ctx, page)
		}},
	})
	if !anySettled(oks) {
		return 0, perr.Upstreamf("catalog page %d fetch failed", page)
	}

	added, committed := l.commit(gen, key, oks[0], batches)
	if !committed {
		return 0, nil
	}

	l.mu.Lock()
	if page > l.maxPage {
		l.maxPage = page
	}
	l.mu.Unlock()

	added += l.maybeFullFallback(ctx, gen, added)
	return added, nil
}

// EnsureAround fires proactive loads when index drifts near either edge of
// the ordered list, so navigation never dead-ends mid-scroll
func (l *Loader) EnsureAround(ctx context.Context, index, total int) (int, error) {
	if total == 0 {
		return 0, nil
	}

	// tail edge: older content, fetch the next page
	if index >= total-l.cfg.PrefetchMargin {
		l.mu.Lock()
		next := l.maxPage + 1
		l.mu.Unlock()
		return l.LoadMore(ctx, next)
	}

	// head edge: newest content, refresh today's slice
	if index < l.cfg.PageEdge {
		today := l.now()
		return l.LoadRange(ctx, NewRange(today, today))
	}
	return 0, nil
}

// Snapshot returns the working set in first-seen order
func (l *Loader) Snapshot() []content.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Items()
}

// Item returns one item from the working set
func (l *Loader) Item(id string) (content.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Get(id)
}

// Duplicates reports how many fetched entries were dropped as duplicates
func (l *Loader) Duplicates() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Duplicates()
}

// Len is the number of distinct loaded items
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Len()
}

// Invalidate bumps the generation so in-flight batches are discarded at commit
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.gen++
	l.mu.Unlock()
}

// Reset drops the whole working set and starts a fresh generation
func (l *Loader) Reset() {
	l.mu.Lock()
	l.gen++
	l.state = NewState()
	l.fullFetched = false
	l.maxPage = 0
	l.mu.Unlock()
}

// settle runs the fetches concurrently and waits for all of them
// a failed fetch contributes an empty batch and a log line, nothing more
// returns the batches and a per-fetch success flag
func (l *Loader) settle(ctx context.Context, fetches []fetch) ([][]content.Item, []bool) {
	batches := make([][]content.Item, len(fetches))
	oks := make([]bool, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, f fetch) {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, l.cfg.FetchTimeout)
			defer cancel()

			items, err := f.run(fctx)
			if err != nil {
				l.log.Warn().Err(err).Str("slice", f.name).Msg("catalog fetch failed, degrading to empty")
				return
			}
			batches[i] = items
			oks[i] = true
		}(i, f)
	}
	wg.Wait()
	return batches, oks
}

func anySettled(oks []bool) bool {
	for _, ok := range oks {
		if ok {
			return true
		}
	}
	return false
}

// commit is the single serialized merge path
// a batch resolved under a superseded generation is discarded before merging
// markLoaded is false when the key's own slice failed and only siblings
// settled, leaving the key eligible for a retry
func (l *Loader) commit(gen uint64, key string, markLoaded bool, batches [][]content.Item) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		l.log.Debug().Str("key", key).Msg("discarding batch from superseded generation")
		return 0, false
	}

	added := 0
	for _, b := range batches {
		added += l.state.Merge(b)
	}
	if markLoaded {
		l.state.MarkLoaded(key)
	}
	return added, true
}

// maybeFullFallback runs the one-shot full-catalog fetch when a merge came
// back sparse, so thin windows do not leave the feed perpetually under-filled
func (l *Loader) maybeFullFallback(ctx context.Context, gen uint64, added int) int {
	if added >= l.cfg.MinBatch {
		return 0
	}

	l.mu.Lock()
	if l.fullFetched || gen != l.gen {
		l.mu.Unlock()
		return 0
	}
	l.fullFetched = true
	l.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, l.cfg.FetchTimeout)
	defer cancel()

	items, err := l.src.AllItems(fctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("full catalog fallback failed, degrading to empty")
		return 0
	}

	extra, _ := l.commit(gen, "full-catalog", true, items2batches(items))
	return extra
}

func items2batches(items []content.Item) [][]content.Item {
	return [][]content.Item{items}
}
