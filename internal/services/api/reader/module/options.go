package module

import (
	"newsstand/internal/core/access"
	"newsstand/internal/core/nav"
	"newsstand/internal/platform/config"
)

// Options tune decision policy and initial placement for this module
type Options struct {
	Policy          access.Policy
	Placement       nav.Placement
	GuestWindowDays int
}

// FromConfig reads module options from READER_* keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("READER_")
	def := access.DefaultPolicy()

	placement := nav.PlacementLatest
	if c.MayEnum("PLACEMENT", "latest", "latest", "first_accessible") == "first_accessible" {
		placement = nav.PlacementFirstAccessible
	}

	return Options{
		Policy: access.Policy{
			OverrideBypassesFutureLock: c.MayBool("OVERRIDE_BYPASSES_FUTURE_LOCK", def.OverrideBypassesFutureLock),
			GuestDailyLimit:            c.MayInt("GUEST_DAILY_LIMIT", def.GuestDailyLimit),
			FreeWindowDays:             c.MayInt("FREE_WINDOW_DAYS", def.FreeWindowDays),
		},
		Placement:       placement,
		GuestWindowDays: c.MayInt("GUEST_WINDOW_DAYS", 7),
	}
}
