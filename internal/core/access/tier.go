// Package access resolves per-item entitlement decisions
package access

import "strings"

// Tier is the entitlement class of a caller
type Tier uint8

// Tier values, guests are the zero value so unknown callers default safely
const (
	TierGuest Tier = iota
	TierFree
	TierPremium
	TierPro
)

var tierNames = map[Tier]string{
	TierGuest:   "guest",
	TierFree:    "free",
	TierPremium: "premium",
	TierPro:     "pro",
}

// String renders the lowercase tier name
func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "guest"
}

// Paid reports whether the tier grants unrestricted catalog access
func (t Tier) Paid() bool { return t == TierPremium || t == TierPro }

// ParseTier maps a raw header/db value to a Tier, unknown values become guest
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return TierFree
	case "premium":
		return TierPremium
	case "pro":
		return TierPro
	default:
		return TierGuest
	}
}

// MarshalJSON encodes the tier as its lowercase name
func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a tier name, unknown values become guest
func (t *Tier) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*t = ParseTier(s)
	return nil
}
