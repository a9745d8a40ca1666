package domain

import (
	"context"

	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
)

// ServicePort defines the service contract for catalog
type ServicePort interface {
	LoadRange(ctx context.Context, in RangeInput) (LoadResult, error)
	LoadMore(ctx context.Context, in MoreInput) (LoadResult, error)
	Items(ctx context.Context) ([]FeedItem, error)
	Reset(ctx context.Context) (ResetResult, error)
}

// FeedPort is the read surface other modules consume
// the catalog module owns the loader, consumers never touch it directly
type FeedPort interface {
	// Snapshot returns the working set in first-seen order
	Snapshot() []content.Item

	// Ordered returns the working set in feed order
	Ordered() []content.Item

	// Item looks one item up by id
	Item(id string) (content.Item, bool)

	// Duplicates reports dropped duplicate entries since the last reset
	Duplicates() int

	// EnsureRange proactively merges a date window
	EnsureRange(ctx context.Context, start, end dates.Day) (int, error)

	// EnsureAround fires edge prefetches for a navigation position
	EnsureAround(ctx context.Context, index, total int) (int, error)
}
