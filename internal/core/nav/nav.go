// Package nav maintains the current position in the ordered, filtered feed
// and keeps an external locator in sync with it
package nav

// Locator is the external single-value reference the controller syncs
// (a shareable URL parameter in the observed deployments)
type Locator interface {
	Get() string
	Set(id string)
}

// Placement names the initial landing policy applied on Reset
// both observed behaviors are explicit configuration, not a silent choice
type Placement uint8

const (
	// PlacementLatest lands on index 0 regardless of accessibility
	PlacementLatest Placement = iota

	// PlacementFirstAccessible lands on the first accessible index
	PlacementFirstAccessible
)

// String renders the placement policy name
func (p Placement) String() string {
	if p == PlacementFirstAccessible {
		return "first_accessible"
	}
	return "latest"
}

// Controller owns the current index over an ordered id list
// moves clamp at the bounds; every successful move pushes the current id to
// the locator, and that side effect belongs to the controller exclusively
type Controller struct {
	ids       []string
	index     int
	locator   Locator
	placement Placement
}

// NewController constructs a Controller with the given placement policy
func NewController(locator Locator, placement Placement) *Controller {
	return &Controller{locator: locator, placement: placement}
}

// Reset replaces the ordered list and applies the initial placement policy
// accessibleAt reports per-index accessibility for PlacementFirstAccessible;
// when no index is accessible the controller falls back to index 0
func (c *Controller) Reset(ids []string, accessibleAt func(i int) bool) {
	c.ids = append([]string(nil), ids...)
	c.index = 0

	if len(c.ids) == 0 {
		return
	}

	if c.placement == PlacementFirstAccessible && accessibleAt != nil {
		for i := range c.ids {
			if accessibleAt(i) {
				c.index = i
				break
			}
		}
	}
	c.sync()
}

// Len is the length of the ordered list
func (c *Controller) Len() int { return len(c.ids) }

// Index returns the current index, 0 for an empty list
func (c *Controller) Index() int { return c.index }

// Current returns the current item id, ok=false when the list is empty
func (c *Controller) Current() (string, bool) {
	if len(c.ids) == 0 {
		return "", false
	}
	return c.ids[c.index], true
}

// MoveTo jumps to index i, reporting whether the position changed
// out-of-range targets clamp to the nearest bound
func (c *Controller) MoveTo(i int) bool {
	if len(c.ids) == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.ids)-1 {
		i = len(c.ids) - 1
	}
	if i == c.index {
		return false
	}
	c.index = i
	c.sync()
	return true
}

// MovePrev steps toward the head of the list, clamping at 0
func (c *Controller) MovePrev() bool { return c.MoveTo(c.index - 1) }

// MoveNext steps toward the tail of the list, clamping at the end
func (c *Controller) MoveNext() bool { return c.MoveTo(c.index + 1) }

// MoveToID jumps to the position of id, false when absent
func (c *Controller) MoveToID(id string) bool {
	for i, x := range c.ids {
		if x == id {
			if i == c.index {
				return false
			}
			c.index = i
			c.sync()
			return true
		}
	}
	return false
}

// sync pushes the current id to the external locator
func (c *Controller) sync() {
	if c.locator == nil || len(c.ids) == 0 {
		return
	}
	c.locator.Set(c.ids[c.index])
}
