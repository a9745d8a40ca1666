package service

import (
	"newsstand/internal/core/access"
	"newsstand/internal/core/dates"
	"newsstand/internal/core/nav"
	"newsstand/internal/services/api/reader/domain"
)

// session is one user's in-memory reading position
type session struct {
	ctrl    *nav.Controller
	locator *urlLocator

	// feedLen is the feed size at the last controller reset; the working set
	// only grows between loader resets so a length change is the reseed signal
	feedLen int
}

// urlLocator is the in-memory stand-in for the shareable locator value
type urlLocator struct {
	value string
}

func (l *urlLocator) Get() string   { return l.value }
func (l *urlLocator) Set(id string) { l.value = id }

// ensureSessionLocked returns the caller's session, creating it on first use
// callers hold s.mu
func (s *Svc) ensureSessionLocked(userID string) *session {
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	loc := &urlLocator{}
	sess := &session{
		ctrl:    nav.NewController(loc, s.placement),
		locator: loc,
	}
	s.sessions[userID] = sess
	return sess
}

// syncSessionLocked reseeds the controller when the feed changed under it,
// keeping the previous position when its item is still present
// callers hold s.mu
func (s *Svc) syncSessionLocked(sess *session, now dates.Day, user access.UserContext) {
	ordered := s.feed.Ordered()
	if len(ordered) == sess.feedLen {
		return
	}

	current, _ := sess.ctrl.Current()
	ids := make([]string, len(ordered))
	for i, it := range ordered {
		ids[i] = it.ID
	}
	sess.ctrl.Reset(ids, func(i int) bool {
		return s.resolver.Resolve(ordered[i], now, user).Accessible
	})
	if current != "" {
		sess.ctrl.MoveToID(current)
	}
	sess.feedLen = len(ids)
}

// positionLocked renders the session position; callers hold s.mu
func (s *Svc) positionLocked(sess *session, moved bool) domain.Position {
	id, _ := sess.ctrl.Current()
	return domain.Position{
		Index:   sess.ctrl.Index(),
		Total:   sess.ctrl.Len(),
		ItemID:  id,
		Locator: sess.locator.Get(),
		Moved:   moved,
	}
}
