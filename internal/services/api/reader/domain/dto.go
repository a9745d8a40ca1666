// Package domain holds DTOs for reader http and service contracts
package domain

// AccessResult explains one item's accessibility for the calling user
// denials are payloads, never transport errors
type AccessResult struct {
	ItemID     string `json:"item_id"    example:"story-123"`
	Accessible bool   `json:"accessible" example:"true"`
	Reason     string `json:"reason"     example:"guest_today"`
}

// OpenInput asks to open one item
type OpenInput struct {
	ItemID string `json:"item_id" validate:"required,min=1,max=200" example:"story-123"`
}

// OpenResult reports the open decision plus quota effects
type OpenResult struct {
	ItemID     string `json:"item_id"    example:"story-123"`
	Accessible bool   `json:"accessible" example:"true"`
	Reason     string `json:"reason"     example:"guest_today"`

	// EventID is set when the open was accepted and recorded
	EventID string `json:"event_id,omitempty" example:"0b6f9a4e-8f2d-4a5e-b7c1-2f3a4d5e6f70"`

	QuotaUsed      int `json:"quota_used"      example:"2"`
	QuotaRemaining int `json:"quota_remaining" example:"1"`
}

// NavigateInput moves the caller's position; exactly one selector applies
// direction beats index beats item_id when several are set
type NavigateInput struct {
	Direction string  `json:"direction,omitempty" validate:"omitempty,oneof=prev next" example:"next"`
	Index     *int    `json:"index,omitempty" example:"4"`
	ItemID    *string `json:"item_id,omitempty" example:"story-123"`
}

// Position is the caller's current place in the ordered feed
type Position struct {
	Index   int    `json:"index"   example:"4"`
	Total   int    `json:"total"   example:"48"`
	ItemID  string `json:"item_id" example:"story-123"`
	Locator string `json:"locator" example:"story-123"`
	Moved   bool   `json:"moved"   example:"true"`
}

// QuotaResult is the caller's guest quota standing for today
type QuotaResult struct {
	Limit     int `json:"limit"      example:"3"`
	UsedToday int `json:"used_today" example:"2"`
	Remaining int `json:"remaining"  example:"1"`
}

// CompleteInput marks one item as finished
type CompleteInput struct {
	ItemID string `json:"item_id" validate:"required,min=1,max=200" example:"story-123"`
}

// CompleteResult acknowledges a completion
type CompleteResult struct {
	ItemID    string `json:"item_id"   example:"story-123"`
	Completed bool   `json:"completed" example:"true"`
}
