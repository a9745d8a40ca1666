package access

// Reason is the closed set of explanations a Decision can carry
// callers branch on these values, never on errors
type Reason uint8

// Reason values in resolver evaluation order
const (
	ReasonInvalidDate Reason = iota + 1
	ReasonComingSoon
	ReasonOverride
	ReasonFutureLocked
	ReasonGuestWindowExceeded
	ReasonGuestQuotaReached
	ReasonGuestToday
	ReasonPremiumAccess
	ReasonFreeUserAllowed
	ReasonPremiumRequired
)

var reasonNames = map[Reason]string{
	ReasonInvalidDate:         "invalid_date",
	ReasonComingSoon:          "coming_soon",
	ReasonOverride:            "override",
	ReasonFutureLocked:        "future_locked",
	ReasonGuestWindowExceeded: "guest_window_exceeded",
	ReasonGuestQuotaReached:   "guest_quota_reached",
	ReasonGuestToday:          "guest_today",
	ReasonPremiumAccess:       "premium_access",
	ReasonFreeUserAllowed:     "free_user_allowed",
	ReasonPremiumRequired:     "premium_required",
}

// String renders the snake_case reason code
func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// MarshalJSON encodes the reason as its snake_case code
func (r Reason) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// Decision is the immutable result of resolving one item for one caller
type Decision struct {
	Accessible bool   `json:"accessible"`
	Reason     Reason `json:"reason"`
}

func deny(r Reason) Decision  { return Decision{Accessible: false, Reason: r} }
func allow(r Reason) Decision { return Decision{Accessible: true, Reason: r} }
