// Package ordering arranges content items into the deterministic feed order
package ordering

import (
	"sort"

	"newsstand/internal/core/content"
)

// Order returns a new slice sorted by the feed order:
// breaking first, featured before plain among the non-breaking items, then
// date descending
// final ties keep insertion order, the sort is stable so repeated sorts of
// the same input are byte-identical
func Order(items []content.Item) []content.Item {
	out := make([]content.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// OrderIDs is Order projected onto item ids
func OrderIDs(items []content.Item) []string {
	ordered := Order(items)
	ids := make([]string, len(ordered))
	for i, it := range ordered {
		ids[i] = it.ID
	}
	return ids
}

func less(a, b content.Item) bool {
	if a.Breaking != b.Breaking {
		return a.Breaking
	}
	// featured only separates non-breaking items; within the breaking
	// class the date decides
	if !a.Breaking && a.Featured != b.Featured {
		return a.Featured
	}
	return a.Date.After(b.Date)
}
