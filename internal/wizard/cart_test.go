package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem() Item {
	return Item{ID: "m1", Name: "Plat du jour", Category: "menu", PriceCents: 950}
}

func upsell(id string) Item {
	return Item{ID: id, Name: "Extra " + id, Kind: ItemKindUpsell, PriceCents: 150}
}

func TestCart_SetMenu(t *testing.T) {
	t.Parallel()
	cart := NewCart()
	cart.SetMenu(menuItem())
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, ItemKindMenu, cart.Items()[0].Kind)

	// re-selecting replaces, never accumulates
	other := Item{ID: "m2", Name: "Autre plat", PriceCents: 1050}
	cart.SetMenu(other)
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, "m2", cart.Items()[0].ID)
}

func TestCart_ReplaceUpsells(t *testing.T) {
	t.Parallel()

	t.Run("second completion replaces the first set", func(t *testing.T) {
		t.Parallel()
		cart := NewCart()
		cart.SetMenu(menuItem())

		cart.ReplaceUpsells([]Item{upsell("a1"), upsell("a2")})
		require.Equal(t, 3, cart.Len())

		cart.ReplaceUpsells([]Item{upsell("b1")})
		items := cart.Items()
		require.Equal(t, 2, cart.Len())
		assert.Equal(t, "m1", items[0].ID)
		assert.Equal(t, "b1", items[1].ID)
	})

	t.Run("empty set clears upsells", func(t *testing.T) {
		t.Parallel()
		cart := NewCart()
		cart.SetMenu(menuItem())
		cart.ReplaceUpsells([]Item{upsell("a1")})
		cart.ReplaceUpsells(nil)
		require.Equal(t, 1, cart.Len())
		assert.Empty(t, cart.Upsells())
	})

	t.Run("non-upsell items survive", func(t *testing.T) {
		t.Parallel()
		cart := NewCart(menuItem(), upsell("a1"))
		cart.ReplaceUpsells([]Item{upsell("b1"), upsell("b2")})

		var ids []string
		for _, item := range cart.Items() {
			ids = append(ids, item.ID)
		}
		assert.Equal(t, []string{"m1", "b1", "b2"}, ids)
	})
}

func TestCart_TotalCents(t *testing.T) {
	t.Parallel()
	cart := NewCart()
	cart.SetMenu(menuItem())
	cart.ReplaceUpsells([]Item{upsell("a1"), upsell("a2")})
	assert.Equal(t, int64(950+150+150), cart.TotalCents())
}

func TestCart_DuplicateIdentityReplaces(t *testing.T) {
	t.Parallel()
	cart := NewCart(
		Item{ID: "x", Name: "first", Kind: ItemKindUpsell, PriceCents: 100},
		Item{ID: "x", Name: "second", Kind: ItemKindUpsell, PriceCents: 200},
	)
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, "second", cart.Items()[0].Name)
}
