package access

import (
	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
)

// Policy names the resolver knobs that varied across observed deployments
// defaults mirror the dominant behavior; every knob is explicit and testable
type Policy struct {
	// OverrideBypassesFutureLock lets breaking/featured items through even
	// when dated in the future. On by default.
	OverrideBypassesFutureLock bool

	// GuestDailyLimit caps non-override opens per guest per calendar day
	GuestDailyLimit int

	// FreeWindowDays is the trailing window a free account may read without
	// completion history
	FreeWindowDays int
}

// DefaultPolicy returns the production defaults
func DefaultPolicy() Policy {
	return Policy{
		OverrideBypassesFutureLock: true,
		GuestDailyLimit:            3,
		FreeWindowDays:             7,
	}
}

// UserContext carries everything the resolver needs to know about the caller
type UserContext struct {
	Tier            Tier
	CompletedIDs    map[string]struct{}
	GuestQuotaUsed  int
	GuestWindowDays int // 0 means the default of 7
}

// Completed reports whether the caller has finished the item
func (u UserContext) Completed(id string) bool {
	_, ok := u.CompletedIDs[id]
	return ok
}

// Resolver decides item accessibility; it is a pure query with no clock
// reads beyond the explicit now input and no side effects
type Resolver struct {
	Policy Policy
}

// NewResolver constructs a Resolver with the given policy
func NewResolver(p Policy) *Resolver { return &Resolver{Policy: p} }

// Resolve evaluates the decision chain in strict order, first match wins
func (rs *Resolver) Resolve(item content.Item, now dates.Day, user UserContext) Decision {
	if item.Date.IsZero() {
		return deny(ReasonInvalidDate)
	}
	if !item.HasContent {
		return deny(ReasonComingSoon)
	}

	future := item.Date.After(now)

	// override flags win before the future lock unless the policy says otherwise
	if item.Override() {
		if !future || rs.Policy.OverrideBypassesFutureLock {
			return allow(ReasonOverride)
		}
	}
	if future {
		return deny(ReasonFutureLocked)
	}

	switch {
	case user.Tier == TierGuest:
		return rs.resolveGuest(item, now, user)
	case user.Tier.Paid():
		return allow(ReasonPremiumAccess)
	default:
		return rs.resolveFree(item, now, user)
	}
}

func (rs *Resolver) resolveGuest(item content.Item, now dates.Day, user UserContext) Decision {
	window := user.GuestWindowDays
	if window <= 0 {
		window = 7
	}
	if item.Date.Before(now.AddDays(-window)) {
		return deny(ReasonGuestWindowExceeded)
	}
	if user.GuestQuotaUsed >= rs.Policy.GuestDailyLimit && !user.Completed(item.ID) {
		return deny(ReasonGuestQuotaReached)
	}
	return allow(ReasonGuestToday)
}

func (rs *Resolver) resolveFree(item content.Item, now dates.Day, user UserContext) Decision {
	switch {
	case item.Date.Equal(now):
		return allow(ReasonFreeUserAllowed)
	case user.Completed(item.ID):
		return allow(ReasonFreeUserAllowed)
	case !item.Date.Before(now.AddDays(-rs.Policy.FreeWindowDays)):
		return allow(ReasonFreeUserAllowed)
	default:
		return deny(ReasonPremiumRequired)
	}
}
