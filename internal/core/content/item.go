// Package content defines the item value shared by the engine packages
package content

import (
	"newsstand/internal/core/dates"
)

// Item is one unit of dated content evaluated for access
// items are values: flag or content changes produce a new Item, never a mutation
type Item struct {
	ID         string    `json:"id"`
	Date       dates.Day `json:"date"`
	Categories []string  `json:"categories,omitempty"`
	Breaking   bool      `json:"breaking"`
	Featured   bool      `json:"featured"`
	HasContent bool      `json:"has_content"`
}

// Override reports whether the item carries a sort/access override flag
func (it Item) Override() bool { return it.Breaking || it.Featured }
