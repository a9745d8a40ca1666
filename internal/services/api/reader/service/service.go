// Package service contains per-user reading session workflows
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsstand/internal/core/access"
	"newsstand/internal/core/dates"
	"newsstand/internal/core/nav"
	"newsstand/internal/core/quota"
	"newsstand/internal/modkit/repokit"
	perr "newsstand/internal/platform/errors"
	"newsstand/internal/platform/logger"
	catalogdom "newsstand/internal/services/api/catalog/domain"
	"newsstand/internal/services/api/reader/domain"
	"newsstand/internal/services/api/reader/repo"
)

// Service defines the service contract for reader
type Service interface{ domain.ServicePort }

// Options tune decision policy and initial placement
type Options struct {
	Policy    access.Policy
	Placement nav.Placement

	// GuestWindowDays is the trailing window a guest may read from;
	// zero falls back to the resolver default
	GuestWindowDays int
}

// Svc implements the Service interface
// feed and navigation state live in memory per user; completions and the
// guest quota live in postgres, open events go to clickhouse
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	feed catalogdom.FeedPort
	sink *repo.EventSink
	log  logger.Logger

	resolver    *access.Resolver
	placement   nav.Placement
	guestWindow int
	now         func() dates.Day

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a new reader service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Repo],
	feed catalogdom.FeedPort,
	sink *repo.EventSink,
	log logger.Logger,
	o Options,
) *Svc {
	if db == nil {
		panic("reader.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reader.Service requires a non nil Repo binder")
	}
	if feed == nil {
		panic("reader.Service requires the catalog feed port")
	}
	if o.Policy == (access.Policy{}) {
		o.Policy = access.DefaultPolicy()
	}
	return &Svc{
		Repo:        binder.Bind(db),
		binder:      binder,
		db:          db,
		feed:        feed,
		sink:        sink,
		log:         log,
		resolver:    access.NewResolver(o.Policy),
		placement:   o.Placement,
		guestWindow: o.GuestWindowDays,
		now:         dates.Today,
		sessions:    map[string]*session{},
	}
}

// WithNow overrides the clock, for tests
func (s *Svc) WithNow(fn func() dates.Day) *Svc {
	s.now = fn
	return s
}

// Access resolves one item for the caller; denials are payloads not errors
func (s *Svc) Access(ctx context.Context, c domain.Caller, itemID string) (domain.AccessResult, error) {
	item, ok := s.feed.Item(itemID)
	if !ok {
		return domain.AccessResult{}, perr.NotFoundf("item %s is not in the working set", itemID)
	}

	now := s.now()
	user, err := s.userContext(ctx, c, now)
	if err != nil {
		return domain.AccessResult{}, err
	}

	d := s.resolver.Resolve(item, now, user)
	return domain.AccessResult{
		ItemID:     itemID,
		Accessible: d.Accessible,
		Reason:     d.Reason.String(),
	}, nil
}

// Open resolves and, when accepted, records the open
// a guest_today open on an uncompleted item is the only path that burns quota
func (s *Svc) Open(ctx context.Context, c domain.Caller, in domain.OpenInput) (domain.OpenResult, error) {
	item, ok := s.feed.Item(in.ItemID)
	if !ok {
		return domain.OpenResult{}, perr.NotFoundf("item %s is not in the working set", in.ItemID)
	}

	now := s.now()
	user, err := s.userContext(ctx, c, now)
	if err != nil {
		return domain.OpenResult{}, err
	}

	d := s.resolver.Resolve(item, now, user)
	out := domain.OpenResult{
		ItemID:     in.ItemID,
		Accessible: d.Accessible,
		Reason:     d.Reason.String(),
	}

	used := user.GuestQuotaUsed
	if d.Accessible {
		if d.Reason == access.ReasonGuestToday && !user.Completed(in.ItemID) {
			used, err = s.Repo.IncrementQuota(ctx, c.UserID, now)
			if err != nil {
				return domain.OpenResult{}, err
			}
		}

		out.EventID = uuid.NewString()
		ev := repo.OpenEvent{
			EventID:    out.EventID,
			UserID:     c.UserID,
			ItemID:     in.ItemID,
			Tier:       user.Tier.String(),
			Reason:     d.Reason.String(),
			Day:        now,
			DupDropped: s.feed.Duplicates(),
			OpenedAt:   time.Now(),
		}
		if err := s.sink.Record(ctx, ev); err != nil {
			// the sink is diagnostics, a failed append never blocks the open
			s.log.Warn().Err(err).Str("item_id", in.ItemID).Msg("open event append failed")
		}
	}

	if user.Tier == access.TierGuest {
		tr := quota.Restore(s.resolver.Policy.GuestDailyLimit, used, now)
		out.QuotaUsed = tr.UsedToday(now)
		out.QuotaRemaining = tr.Remaining(now)
	}
	return out, nil
}

// Navigate applies one move to the caller's session and syncs the locator
func (s *Svc) Navigate(ctx context.Context, c domain.Caller, in domain.NavigateInput) (domain.Position, error) {
	if in.Direction == "" && in.Index == nil && in.ItemID == nil {
		return domain.Position{}, perr.InvalidArgf("navigate requires direction, index or item_id")
	}

	now := s.now()
	user, err := s.userContext(ctx, c, now)
	if err != nil {
		return domain.Position{}, err
	}

	s.mu.Lock()
	sess := s.ensureSessionLocked(c.UserID)
	s.syncSessionLocked(sess, now, user)

	moved := false
	switch {
	case in.Direction == "prev":
		moved = sess.ctrl.MovePrev()
	case in.Direction == "next":
		moved = sess.ctrl.MoveNext()
	case in.Index != nil:
		moved = sess.ctrl.MoveTo(*in.Index)
	case in.ItemID != nil:
		moved = sess.ctrl.MoveToID(*in.ItemID)
	}
	pos := s.positionLocked(sess, moved)
	index, total := sess.ctrl.Index(), sess.ctrl.Len()
	s.mu.Unlock()

	// edge prefetch outside the session lock, failures degrade to a log line
	if _, err := s.feed.EnsureAround(ctx, index, total); err != nil {
		s.log.Warn().Err(err).Int("index", index).Msg("edge prefetch failed")
	}
	return pos, nil
}

// Position reports the caller's current place without moving
func (s *Svc) Position(ctx context.Context, c domain.Caller) (domain.Position, error) {
	now := s.now()
	user, err := s.userContext(ctx, c, now)
	if err != nil {
		return domain.Position{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensureSessionLocked(c.UserID)
	s.syncSessionLocked(sess, now, user)
	return s.positionLocked(sess, false), nil
}

// Quota reports the caller's guest quota standing for today
func (s *Svc) Quota(ctx context.Context, c domain.Caller) (domain.QuotaResult, error) {
	now := s.now()
	used, err := s.Repo.QuotaUsedOn(ctx, c.UserID, now)
	if err != nil {
		return domain.QuotaResult{}, err
	}

	tr := quota.Restore(s.resolver.Policy.GuestDailyLimit, used, now)
	return domain.QuotaResult{
		Limit:     tr.Limit(),
		UsedToday: tr.UsedToday(now),
		Remaining: tr.Remaining(now),
	}, nil
}

// Complete marks one item finished for the caller
func (s *Svc) Complete(ctx context.Context, c domain.Caller, in domain.CompleteInput) (domain.CompleteResult, error) {
	if _, ok := s.feed.Item(in.ItemID); !ok {
		return domain.CompleteResult{}, perr.NotFoundf("item %s is not in the working set", in.ItemID)
	}
	if err := s.Repo.MarkCompleted(ctx, c.UserID, in.ItemID); err != nil {
		return domain.CompleteResult{}, err
	}
	return domain.CompleteResult{ItemID: in.ItemID, Completed: true}, nil
}

// userContext assembles the resolver input for one caller
func (s *Svc) userContext(ctx context.Context, c domain.Caller, now dates.Day) (access.UserContext, error) {
	tier := access.ParseTier(c.Tier)

	completed, err := s.Repo.CompletedIDs(ctx, c.UserID)
	if err != nil {
		return access.UserContext{}, err
	}

	used := 0
	if tier == access.TierGuest {
		used, err = s.Repo.QuotaUsedOn(ctx, c.UserID, now)
		if err != nil {
			return access.UserContext{}, err
		}
	}

	return access.UserContext{
		Tier:            tier,
		CompletedIDs:    completed,
		GuestQuotaUsed:  used,
		GuestWindowDays: s.guestWindow,
	}, nil
}
