package access

import (
	"testing"

	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
)

var now = dates.MustDay("2025-06-14")

func item(id, day string, breaking, featured, has bool) content.Item {
	var d dates.Day
	if day != "" {
		d = dates.MustDay(day)
	}
	return content.Item{ID: id, Date: d, Breaking: breaking, Featured: featured, HasContent: has}
}

func guest(used int) UserContext { return UserContext{Tier: TierGuest, GuestQuotaUsed: used} }

func TestResolveChain(t *testing.T) {
	t.Parallel()

	rs := NewResolver(DefaultPolicy())

	cases := []struct {
		name string
		item content.Item
		user UserContext
		want Decision
	}{
		{
			name: "missing date",
			item: item("a", "", false, false, true),
			user: guest(0),
			want: Decision{false, ReasonInvalidDate},
		},
		{
			name: "no content yet",
			item: item("a", "2025-06-14", false, false, false),
			user: UserContext{Tier: TierPro},
			want: Decision{false, ReasonComingSoon},
		},
		{
			name: "future item locked",
			item: item("a", "2025-06-21", false, false, true),
			user: UserContext{Tier: TierPro},
			want: Decision{false, ReasonFutureLocked},
		},
		{
			name: "future breaking item overrides",
			item: item("a", "2025-06-21", true, false, true),
			user: guest(0),
			want: Decision{true, ReasonOverride},
		},
		{
			name: "featured overrides for free tier",
			item: item("a", "2024-01-01", false, true, true),
			user: UserContext{Tier: TierFree},
			want: Decision{true, ReasonOverride},
		},
		{
			name: "guest outside trailing window",
			item: item("a", "2025-06-05", false, false, true),
			user: guest(0),
			want: Decision{false, ReasonGuestWindowExceeded},
		},
		{
			name: "guest quota exhausted",
			item: item("a", "2025-06-14", false, false, true),
			user: guest(3),
			want: Decision{false, ReasonGuestQuotaReached},
		},
		{
			name: "guest quota exhausted but item completed",
			item: item("a", "2025-06-14", false, false, true),
			user: UserContext{Tier: TierGuest, GuestQuotaUsed: 3, CompletedIDs: set("a")},
			want: Decision{true, ReasonGuestToday},
		},
		{
			name: "guest within window and quota",
			item: item("a", "2025-06-12", false, false, true),
			user: guest(2),
			want: Decision{true, ReasonGuestToday},
		},
		{
			name: "premium access",
			item: item("a", "2020-01-01", false, false, true),
			user: UserContext{Tier: TierPremium},
			want: Decision{true, ReasonPremiumAccess},
		},
		{
			name: "pro access",
			item: item("a", "2020-01-01", false, false, true),
			user: UserContext{Tier: TierPro},
			want: Decision{true, ReasonPremiumAccess},
		},
		{
			name: "free today",
			item: item("a", "2025-06-14", false, false, true),
			user: UserContext{Tier: TierFree},
			want: Decision{true, ReasonFreeUserAllowed},
		},
		{
			name: "free completed outside window",
			item: item("a", "2025-05-01", false, false, true),
			user: UserContext{Tier: TierFree, CompletedIDs: set("a")},
			want: Decision{true, ReasonFreeUserAllowed},
		},
		{
			name: "free within window",
			item: item("a", "2025-06-08", false, false, true),
			user: UserContext{Tier: TierFree},
			want: Decision{true, ReasonFreeUserAllowed},
		},
		{
			name: "free outside window",
			item: item("a", "2025-06-01", false, false, true),
			user: UserContext{Tier: TierFree},
			want: Decision{false, ReasonPremiumRequired},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rs.Resolve(tc.item, now, tc.user)
			if got != tc.want {
				t.Fatalf("Resolve = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestOverrideAccessibleForEveryTierAndDate(t *testing.T) {
	t.Parallel()

	rs := NewResolver(DefaultPolicy())
	days := []string{"2020-01-01", "2025-06-14", "2030-12-31"}
	tiers := []Tier{TierGuest, TierFree, TierPremium, TierPro}

	for _, day := range days {
		for _, tier := range tiers {
			it := item("x", day, true, false, true)
			got := rs.Resolve(it, now, UserContext{Tier: tier})
			if !got.Accessible || got.Reason != ReasonOverride {
				t.Fatalf("breaking item %s tier %s = %+v, want override", day, tier, got)
			}

			it = item("x", day, false, true, true)
			got = rs.Resolve(it, now, UserContext{Tier: tier})
			if !got.Accessible || got.Reason != ReasonOverride {
				t.Fatalf("featured item %s tier %s = %+v, want override", day, tier, got)
			}
		}
	}
}

func TestFutureLockedForEveryTier(t *testing.T) {
	t.Parallel()

	rs := NewResolver(DefaultPolicy())
	it := item("x", "2025-06-21", false, false, true)

	for _, tier := range []Tier{TierGuest, TierFree, TierPremium, TierPro} {
		got := rs.Resolve(it, now, UserContext{Tier: tier})
		if got.Accessible || got.Reason != ReasonFutureLocked {
			t.Fatalf("tier %s = %+v, want future_locked", tier, got)
		}
	}
}

func TestOverrideFutureLockToggle(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.OverrideBypassesFutureLock = false
	rs := NewResolver(p)

	future := item("x", "2025-06-21", true, false, true)
	got := rs.Resolve(future, now, UserContext{Tier: TierPro})
	if got.Accessible || got.Reason != ReasonFutureLocked {
		t.Fatalf("toggled-off override on future item = %+v, want future_locked", got)
	}

	// past override items are unaffected by the toggle
	past := item("x", "2025-06-01", true, false, true)
	got = rs.Resolve(past, now, UserContext{Tier: TierGuest})
	if !got.Accessible || got.Reason != ReasonOverride {
		t.Fatalf("toggled-off override on past item = %+v, want override", got)
	}
}

func TestResolveIsPure(t *testing.T) {
	t.Parallel()

	rs := NewResolver(DefaultPolicy())
	it := item("x", "2025-06-12", false, false, true)
	u := guest(1)

	first := rs.Resolve(it, now, u)
	for i := 0; i < 100; i++ {
		if got := rs.Resolve(it, now, u); got != first {
			t.Fatalf("Resolve drifted at iteration %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	cases := map[string]Tier{
		"guest":   TierGuest,
		"free":    TierFree,
		"premium": TierPremium,
		"pro":     TierPro,
		"PRO":     TierPro,
		" free ":  TierFree,
		"":        TierGuest,
		"admin":   TierGuest,
	}
	for in, want := range cases {
		if got := ParseTier(in); got != want {
			t.Fatalf("ParseTier(%q) = %s, want %s", in, got, want)
		}
	}
}

func set(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
