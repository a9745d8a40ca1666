package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"newsstand/internal/core/access"
	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
	"newsstand/internal/core/nav"
	"newsstand/internal/core/ordering"
	"newsstand/internal/modkit/repokit"
	perr "newsstand/internal/platform/errors"
	"newsstand/internal/platform/testkit"
	"newsstand/internal/services/api/reader/domain"
	"newsstand/internal/services/api/reader/repo"
)

var testNow = dates.MustDay("2025-06-14")

// stubDB satisfies the TxRunner seam; reader tests never reach real SQL
type stubDB struct{}

func (stubDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (stubDB) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (stubDB) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (stubDB) Tx(ctx context.Context, fn func(q repokit.RowQuerier) error) error {
	return fn(stubDB{})
}

// memRepo is an in-memory stand-in for the postgres repo
type memRepo struct {
	completed map[string]map[string]struct{}
	quota     map[string]int
	incCalls  int
}

func newMemRepo() *memRepo {
	return &memRepo{
		completed: map[string]map[string]struct{}{},
		quota:     map[string]int{},
	}
}

func (m *memRepo) key(userID string, day dates.Day) string {
	return userID + "|" + dates.FormatDay(day)
}

func (m *memRepo) CompletedIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for id := range m.completed[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *memRepo) MarkCompleted(_ context.Context, userID, itemID string) error {
	if m.completed[userID] == nil {
		m.completed[userID] = map[string]struct{}{}
	}
	m.completed[userID][itemID] = struct{}{}
	return nil
}

func (m *memRepo) QuotaUsedOn(_ context.Context, userID string, day dates.Day) (int, error) {
	return m.quota[m.key(userID, day)], nil
}

func (m *memRepo) IncrementQuota(_ context.Context, userID string, day dates.Day) (int, error) {
	m.incCalls++
	k := m.key(userID, day)
	m.quota[k]++
	return m.quota[k], nil
}

type memBinder struct{ r repo.Repo }

func (b memBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

// memFeed is a fixed working set standing in for the catalog feed port
type memFeed struct {
	items       []content.Item
	ensureCalls int
}

func (f *memFeed) Snapshot() []content.Item { return f.items }
func (f *memFeed) Ordered() []content.Item  { return ordering.Order(f.items) }
func (f *memFeed) Item(id string) (content.Item, bool) {
	for _, it := range f.items {
		if it.ID == id {
			return it, true
		}
	}
	return content.Item{}, false
}
func (f *memFeed) Duplicates() int { return 2 }
func (f *memFeed) EnsureRange(context.Context, dates.Day, dates.Day) (int, error) {
	return 0, nil
}
func (f *memFeed) EnsureAround(context.Context, int, int) (int, error) {
	f.ensureCalls++
	return 0, nil
}

// memCH records appended rows
type memCH struct {
	table string
	rows  [][]any
}

func (c *memCH) Insert(_ context.Context, table string, _ []string, rows [][]any) error {
	c.table = table
	c.rows = append(c.rows, rows...)
	return nil
}
func (c *memCH) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (c *memCH) Close() error                                                { return nil }

func item(id, day string, breaking bool) content.Item {
	return content.Item{ID: id, Date: dates.MustDay(day), Breaking: breaking, HasContent: true}
}

type fixture struct {
	svc  *Svc
	repo *memRepo
	feed *memFeed
	ch   *memCH
}

func newFixture(items ...content.Item) *fixture {
	r := newMemRepo()
	f := &memFeed{items: items}
	ch := &memCH{}
	s := New(stubDB{}, memBinder{r: r}, f, repo.NewEventSink(ch), zerolog.Nop(), Options{
		Policy:    access.DefaultPolicy(),
		Placement: nav.PlacementLatest,
	}).WithNow(func() dates.Day { return testNow })
	return &fixture{svc: s, repo: r, feed: f, ch: ch}
}

func guest(id string) domain.Caller { return domain.Caller{UserID: id, Tier: "guest"} }

func TestNewValidatesDeps(t *testing.T) {
	t.Parallel()

	r := newMemRepo()
	f := &memFeed{}
	testkit.MustPanic(t, func() {
		New(nil, memBinder{r: r}, f, nil, zerolog.Nop(), Options{})
	})
	testkit.MustPanic(t, func() {
		New(stubDB{}, nil, f, nil, zerolog.Nop(), Options{})
	})
	testkit.MustPanic(t, func() {
		New(stubDB{}, memBinder{r: r}, nil, nil, zerolog.Nop(), Options{})
	})
}

func TestOpenGuestBurnsQuotaOnce(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("a", "2025-06-14", false))
	out, err := fx.svc.Open(context.Background(), guest("u1"), domain.OpenInput{ItemID: "a"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !out.Accessible || out.Reason != "guest_today" {
		t.Fatalf("decision = %+v", out)
	}
	if fx.repo.incCalls != 1 {
		t.Fatalf("quota increments = %d, want 1", fx.repo.incCalls)
	}
	if out.QuotaUsed != 1 || out.QuotaRemaining != 2 {
		t.Fatalf("quota standing = %d/%d, want 1/2", out.QuotaUsed, out.QuotaRemaining)
	}
	if out.EventID == "" || len(fx.ch.rows) != 1 || fx.ch.table != "reader_open_events" {
		t.Fatalf("open event not recorded: id=%q rows=%d", out.EventID, len(fx.ch.rows))
	}
}

func TestOpenGuestAtLimitIsDeniedWithoutError(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("a", "2025-06-14", false))
	fx.repo.quota[fx.repo.key("u1", testNow)] = 3

	out, err := fx.svc.Open(context.Background(), guest("u1"), domain.OpenInput{ItemID: "a"})
	if err != nil {
		t.Fatalf("denial must be a payload, got error %v", err)
	}
	if out.Accessible || out.Reason != "guest_quota_reached" {
		t.Fatalf("decision = %+v", out)
	}
	if fx.repo.incCalls != 0 {
		t.Fatalf("denied open incremented quota")
	}
	if out.EventID != "" || len(fx.ch.rows) != 0 {
		t.Fatalf("denied open recorded an event")
	}
}

func TestOpenCompletedItemDoesNotBurnQuota(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("a", "2025-06-14", false))
	fx.repo.quota[fx.repo.key("u1", testNow)] = 3
	_ = fx.repo.MarkCompleted(context.Background(), "u1", "a")

	out, err := fx.svc.Open(context.Background(), guest("u1"), domain.OpenInput{ItemID: "a"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !out.Accessible || out.Reason != "guest_today" {
		t.Fatalf("re-read of a completed item should pass: %+v", out)
	}
	if fx.repo.incCalls != 0 {
		t.Fatalf("completed re-read incremented quota")
	}
}

func TestOpenOverrideSkipsQuota(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("hot", "2025-06-20", true)) // breaking and future dated
	out, err := fx.svc.Open(context.Background(), guest("u1"), domain.OpenInput{ItemID: "hot"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !out.Accessible || out.Reason != "override" {
		t.Fatalf("decision = %+v", out)
	}
	if fx.repo.incCalls != 0 {
		t.Fatalf("override open incremented quota")
	}
	if len(fx.ch.rows) != 1 {
		t.Fatalf("accepted override open should be recorded")
	}
}

func TestOpenUnknownItemIsNotFound(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	_, err := fx.svc.Open(context.Background(), guest("u1"), domain.OpenInput{ItemID: "nope"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAccessGuestWindowIsConfigurable(t *testing.T) {
	t.Parallel()

	// four days back: inside the default window, outside a one-day one
	fourBack := item("recent", "2025-06-10", false)

	fx := newFixture(fourBack)
	out, err := fx.svc.Access(context.Background(), guest("u1"), "recent")
	if err != nil {
		t.Fatalf("Access: %v", err)
	}
	if !out.Accessible {
		t.Fatalf("default window should admit a four day old item: %+v", out)
	}

	r := newMemRepo()
	f := &memFeed{items: []content.Item{fourBack}}
	narrow := New(stubDB{}, memBinder{r: r}, f, repo.NewEventSink(&memCH{}), zerolog.Nop(), Options{
		Policy:          access.DefaultPolicy(),
		GuestWindowDays: 1,
	}).WithNow(func() dates.Day { return testNow })

	out, err = narrow.Access(context.Background(), guest("u1"), "recent")
	if err != nil {
		t.Fatalf("Access: %v", err)
	}
	if out.Accessible || out.Reason != "guest_window_exceeded" {
		t.Fatalf("narrow window decision = %+v", out)
	}
}

func TestAccessPremiumOldItem(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("old", "2024-01-01", false))
	out, err := fx.svc.Access(context.Background(),
		domain.Caller{UserID: "u2", Tier: "premium"}, "old")
	if err != nil {
		t.Fatalf("Access: %v", err)
	}
	if !out.Accessible || out.Reason != "premium_access" {
		t.Fatalf("decision = %+v", out)
	}
}

func TestNavigateMovesAndSyncsLocator(t *testing.T) {
	t.Parallel()

	fx := newFixture(
		item("c", "2025-06-10", false),
		item("b", "2025-06-12", false),
		item("a", "2025-06-14", false),
	)

	next := domain.NavigateInput{Direction: "next"}
	pos, err := fx.svc.Navigate(context.Background(), guest("u1"), next)
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	// feed order is date descending: a, b, c; starting at a, next lands on b
	if !pos.Moved || pos.Index != 1 || pos.ItemID != "b" || pos.Locator != "b" {
		t.Fatalf("position = %+v", pos)
	}
	if fx.feed.ensureCalls != 1 {
		t.Fatalf("edge prefetch not fired")
	}

	// out-of-range index clamps to the tail
	idx := 99
	pos, err = fx.svc.Navigate(context.Background(), guest("u1"), domain.NavigateInput{Index: &idx})
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if pos.Index != 2 || pos.ItemID != "c" {
		t.Fatalf("clamped position = %+v", pos)
	}
}

func TestNavigateRequiresASelector(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("a", "2025-06-14", false))
	_, err := fx.svc.Navigate(context.Background(), guest("u1"), domain.NavigateInput{})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestPositionLandsOnLatest(t *testing.T) {
	t.Parallel()

	fx := newFixture(
		item("old", "2025-06-01", false),
		item("new", "2025-06-14", false),
	)
	pos, err := fx.svc.Position(context.Background(), guest("u1"))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pos.Index != 0 || pos.ItemID != "new" || pos.Total != 2 {
		t.Fatalf("position = %+v", pos)
	}
}

func TestQuotaReportsStanding(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.repo.quota[fx.repo.key("u1", testNow)] = 2

	q, err := fx.svc.Quota(context.Background(), guest("u1"))
	if err != nil {
		t.Fatalf("Quota: %v", err)
	}
	if q.Limit != 3 || q.UsedToday != 2 || q.Remaining != 1 {
		t.Fatalf("quota = %+v", q)
	}
}

func TestCompleteMarksAndValidates(t *testing.T) {
	t.Parallel()

	fx := newFixture(item("a", "2025-06-14", false))

	if _, err := fx.svc.Complete(context.Background(), guest("u1"),
		domain.CompleteInput{ItemID: "nope"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}

	out, err := fx.svc.Complete(context.Background(), guest("u1"), domain.CompleteInput{ItemID: "a"})
	if err != nil || !out.Completed {
		t.Fatalf("Complete = %+v, %v", out, err)
	}
	if _, ok := fx.repo.completed["u1"]["a"]; !ok {
		t.Fatalf("completion not persisted")
	}
}
