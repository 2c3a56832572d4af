package wizard

import "slices"

// Item kinds. The primary menu item is tagged "menu"; supplement items added
// at the supplements step are tagged "upsell" so they can be identified and
// replaced wholesale on repeat visits to that step.
const (
	ItemKindMenu   = "menu"
	ItemKindUpsell = "upsell"
)

// Item is one cart entry: the selected menu or a supplement.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Kind       string `json:"kind"`
	PriceCents int64  `json:"price_cents"`
}

// Cart is the ordered collection of selected items, keyed by item identity.
type Cart struct {
	items []Item
}

// NewCart creates a cart holding the given items in order. Later duplicates
// of the same identity replace earlier ones in place.
func NewCart(items ...Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.add(item)
	}
	return c
}

func (c *Cart) add(item Item) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	return slices.Clone(c.items)
}

// Len returns the number of items in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// SetMenu resets the cart to hold exactly the primary menu item. Confirming
// the detail step goes through here, so re-selecting a menu never leaves the
// previous one behind.
func (c *Cart) SetMenu(menu Item) {
	menu.Kind = ItemKindMenu
	c.items = []Item{menu}
}

// ReplaceUpsells removes every upsell item and appends the given set. The
// supplements step may be completed any number of times without duplicate
// accumulation: the prior upsell subset is fully replaced, never merged.
func (c *Cart) ReplaceUpsells(items []Item) {
	kept := make([]Item, 0, len(c.items)+len(items))
	for _, item := range c.items {
		if item.Kind != ItemKindUpsell {
			kept = append(kept, item)
		}
	}
	c.items = kept
	for _, item := range items {
		item.Kind = ItemKindUpsell
		c.add(item)
	}
}

// Upsells returns the current upsell subset in insertion order.
func (c *Cart) Upsells() []Item {
	var upsells []Item
	for _, item := range c.items {
		if item.Kind == ItemKindUpsell {
			upsells = append(upsells, item)
		}
	}
	return upsells
}

// TotalCents returns the cart total.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.items {
		total += item.PriceCents
	}
	return total
}
