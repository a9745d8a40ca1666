// Package service contains catalog feed workflows over the window loader
package service

import (
	"context"

	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
	"newsstand/internal/core/ordering"
	"newsstand/internal/core/window"
	perr "newsstand/internal/platform/errors"
	"newsstand/internal/services/api/catalog/domain"
)

// Service defines the service contract for catalog
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
// it owns the process-wide loader; every consumer goes through it
type Svc struct {
	loader *window.Loader
}

// New creates a new catalog service over an already constructed loader
func New(loader *window.Loader) *Svc {
	if loader == nil {
		panic("catalog.Service requires a non nil window.Loader")
	}
	return &Svc{loader: loader}
}

// LoadRange merges the window named by in plus the featured and today slices
func (s *Svc) LoadRange(ctx context.Context, in domain.RangeInput) (domain.LoadResult, error) {
	start, err := dates.ParseDay(in.Start)
	if err != nil {
		return domain.LoadResult{}, perr.InvalidArgf("start must be YYYY-MM-DD")
	}
	end, err := dates.ParseDay(in.End)
	if err != nil {
		return domain.LoadResult{}, perr.InvalidArgf("end must be YYYY-MM-DD")
	}

	added, err := s.loader.LoadRange(ctx, window.NewRange(start, end))
	if err != nil {
		return domain.LoadResult{}, err
	}
	return s.result(added), nil
}

// LoadMore merges one catalog page
func (s *Svc) LoadMore(ctx context.Context, in domain.MoreInput) (domain.LoadResult, error) {
	added, err := s.loader.LoadMore(ctx, in.Page)
	if err != nil {
		return domain.LoadResult{}, err
	}
	return s.result(added), nil
}

// Items returns the working set in feed order
func (s *Svc) Items(_ context.Context) ([]domain.FeedItem, error) {
	ordered := ordering.Order(s.loader.Snapshot())
	out := make([]domain.FeedItem, 0, len(ordered))
	for i, it := range ordered {
		out = append(out, domain.FeedItem{Item: it, Position: i})
	}
	return out, nil
}

// Reset drops the working set and starts a fresh generation
func (s *Svc) Reset(_ context.Context) (domain.ResetResult, error) {
	s.loader.Reset()
	return domain.ResetResult{Reset: true}, nil
}

func (s *Svc) result(added int) domain.LoadResult {
	return domain.LoadResult{
		Added:      added,
		Total:      s.loader.Len(),
		Duplicates: s.loader.Duplicates(),
		OrderedIDs: ordering.OrderIDs(s.loader.Snapshot()),
	}
}

// Feed adapts the service loader to the domain FeedPort for other modules
type Feed struct {
	Loader *window.Loader
}

// Snapshot implements domain.FeedPort
func (f Feed) Snapshot() []content.Item { return f.Loader.Snapshot() }

// Ordered implements domain.FeedPort
func (f Feed) Ordered() []content.Item { return ordering.Order(f.Loader.Snapshot()) }

// Item implements domain.FeedPort
func (f Feed) Item(id string) (content.Item, bool) { return f.Loader.Item(id) }

// Duplicates implements domain.FeedPort
func (f Feed) Duplicates() int { return f.Loader.Duplicates() }

// EnsureRange implements domain.FeedPort
func (f Feed) EnsureRange(ctx context.Context, start, end dates.Day) (int, error) {
	return f.Loader.LoadRange(ctx, window.NewRange(start, end))
}

// EnsureAround implements domain.FeedPort
func (f Feed) EnsureAround(ctx context.Context, index, total int) (int, error) {
	return f.Loader.EnsureAround(ctx, index, total)
}
