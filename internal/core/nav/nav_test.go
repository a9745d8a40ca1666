package nav

import (
	"testing"
)

type memLocator struct {
	value string
	sets  int
}

func (m *memLocator) Get() string   { return m.value }
func (m *memLocator) Set(id string) { m.value = id; m.sets++ }

func TestResetPlacementLatest(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementLatest)

	c.Reset([]string{"a", "b", "c"}, func(i int) bool { return i >= 2 })

	if c.Index() != 0 {
		t.Fatalf("Index = %d, want 0", c.Index())
	}
	if loc.value != "a" {
		t.Fatalf("locator = %q, want a", loc.value)
	}
}

func TestResetPlacementFirstAccessible(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementFirstAccessible)

	c.Reset([]string{"a", "b", "c"}, func(i int) bool { return i >= 1 })

	if c.Index() != 1 {
		t.Fatalf("Index = %d, want 1", c.Index())
	}
	if loc.value != "b" {
		t.Fatalf("locator = %q, want b", loc.value)
	}
}

func TestResetFirstAccessibleFallsBackToZero(t *testing.T) {
	t.Parallel()

	c := NewController(&memLocator{}, PlacementFirstAccessible)
	c.Reset([]string{"a", "b"}, func(int) bool { return false })

	if c.Index() != 0 {
		t.Fatalf("Index = %d, want 0 when nothing is accessible", c.Index())
	}
}

func TestMovesClampAtBounds(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementLatest)
	c.Reset([]string{"a", "b", "c"}, nil)

	// head clamp: no wraparound
	if moved := c.MovePrev(); moved {
		t.Fatalf("MovePrev at head should not move")
	}
	if c.Index() != 0 {
		t.Fatalf("Index after clamped MovePrev = %d", c.Index())
	}

	if !c.MoveNext() || c.Index() != 1 {
		t.Fatalf("MoveNext = index %d, want 1", c.Index())
	}
	if !c.MoveNext() || c.Index() != 2 {
		t.Fatalf("MoveNext = index %d, want 2", c.Index())
	}

	// tail clamp
	if moved := c.MoveNext(); moved {
		t.Fatalf("MoveNext at tail should not move")
	}
	if c.Index() != 2 {
		t.Fatalf("Index after clamped MoveNext = %d", c.Index())
	}
}

func TestMoveToClampsOutOfRange(t *testing.T) {
	t.Parallel()

	c := NewController(&memLocator{}, PlacementLatest)
	c.Reset([]string{"a", "b", "c"}, nil)

	if !c.MoveTo(99) || c.Index() != 2 {
		t.Fatalf("MoveTo(99) landed on %d, want 2", c.Index())
	}
	if !c.MoveTo(-5) || c.Index() != 0 {
		t.Fatalf("MoveTo(-5) landed on %d, want 0", c.Index())
	}
}

func TestEverySuccessfulMoveSyncsLocator(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementLatest)
	c.Reset([]string{"a", "b", "c"}, nil)

	setsAfterReset := loc.sets

	c.MoveNext()        // a -> b
	c.MoveNext()        // b -> c
	c.MoveNext()        // clamped, no sync
	c.MoveTo(c.Index()) // same index, no sync
	c.MovePrev()        // c -> b

	if got := loc.sets - setsAfterReset; got != 3 {
		t.Fatalf("locator synced %d times, want 3", got)
	}
	if loc.value != "b" {
		t.Fatalf("locator = %q, want b", loc.value)
	}
}

func TestMoveToID(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementLatest)
	c.Reset([]string{"a", "b", "c"}, nil)

	if !c.MoveToID("c") || c.Index() != 2 {
		t.Fatalf("MoveToID(c) landed on %d", c.Index())
	}
	if c.MoveToID("missing") {
		t.Fatalf("MoveToID(missing) reported a move")
	}
	if c.Index() != 2 {
		t.Fatalf("failed MoveToID changed the index to %d", c.Index())
	}
}

func TestEmptyList(t *testing.T) {
	t.Parallel()

	loc := &memLocator{}
	c := NewController(loc, PlacementLatest)
	c.Reset(nil, nil)

	if _, ok := c.Current(); ok {
		t.Fatalf("Current on empty list should not be ok")
	}
	if c.MoveNext() || c.MovePrev() || c.MoveTo(0) {
		t.Fatalf("moves on empty list should be no-ops")
	}
	if loc.sets != 0 {
		t.Fatalf("empty reset should not touch the locator")
	}
}

func TestIndexInvariantUnderRandomMoves(t *testing.T) {
	t.Parallel()

	c := NewController(&memLocator{}, PlacementLatest)
	c.Reset([]string{"a", "b", "c", "d", "e"}, nil)

	moves := []int{3, -10, 42, 2, 4, 0, 1, 99, -1}
	for _, m := range moves {
		c.MoveTo(m)
		if c.Index() < 0 || c.Index() > c.Len()-1 {
			t.Fatalf("index %d escaped [0,%d]", c.Index(), c.Len()-1)
		}
	}
}
