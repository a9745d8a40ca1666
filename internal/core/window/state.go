package window

import (
	"newsstand/internal/core/content"
)

// LoadedState is the duplicate-free working set of fetched items
// it grows monotonically until a full reset; items are never mutated in place
type LoadedState struct {
	items map[string]content.Item
	order []string // first-seen insertion order, feeds the stable sort
	keys  map[string]struct{}
	dups  int
}

// NewState returns an empty LoadedState
func NewState() *LoadedState {
	return &LoadedState{
		items: make(map[string]content.Item),
		keys:  make(map[string]struct{}),
	}
}

// Merge folds a fetch batch into the set, first seen wins
// duplicates are dropped silently but counted for diagnostics
// merging the same batch twice adds nothing, and merge order across batches
// does not change the final id set
func (s *LoadedState) Merge(batch []content.Item) int {
	added := 0
	for _, it := range batch {
		if it.ID == "" {
			continue
		}
		if _, seen := s.items[it.ID]; seen {
			s.dups++
			continue
		}
		s.items[it.ID] = it
		s.order = append(s.order, it.ID)
		added++
	}
	return added
}

// Has reports whether the id is already in the working set
func (s *LoadedState) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Get returns the item for id
func (s *LoadedState) Get(id string) (content.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Len is the number of distinct items loaded
func (s *LoadedState) Len() int { return len(s.items) }

// Items returns the working set in first-seen order
func (s *LoadedState) Items() []content.Item {
	out := make([]content.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Duplicates is the count of entries discarded during merges
func (s *LoadedState) Duplicates() int { return s.dups }

// MarkLoaded records a range or page key as fetched
func (s *LoadedState) MarkLoaded(key string) { s.keys[key] = struct{}{} }

// Loaded reports whether a range or page key was already fetched
func (s *LoadedState) Loaded(key string) bool {
	_, ok := s.keys[key]
	return ok
}
