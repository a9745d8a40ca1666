// Package domain holds DTOs for catalog http and service contracts
package domain

import "newsstand/internal/core/content"

// RangeInput asks the loader to merge a date window
type RangeInput struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-06-01"`
	End   string `json:"end"   validate:"required,datetime=2006-01-02" example:"2025-06-14"`
}

// MoreInput asks the loader to merge one catalog page
type MoreInput struct {
	Page int `json:"page" validate:"required,min=1" example:"2"`
}

// LoadResult reports the outcome of a merge
type LoadResult struct {
	Added      int      `json:"added"       example:"12"`
	Total      int      `json:"total"       example:"48"`
	Duplicates int      `json:"duplicates"  example:"3"`
	OrderedIDs []string `json:"ordered_ids"`
}

// FeedItem is one entry of the ordered working set
type FeedItem struct {
	content.Item
	Position int `json:"position" example:"0"`
}

// ResetResult acknowledges a full working-set reset
type ResetResult struct {
	Reset bool `json:"reset" example:"true"`
}
