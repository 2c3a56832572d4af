package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuskiosk/orderflow/internal/payment"
	"github.com/campuskiosk/orderflow/internal/wizard"
	"github.com/campuskiosk/orderflow/internal/wizard/finitestate"
)

func TestRenderSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("fresh order", func(t *testing.T) {
		t.Parallel()
		out := renderSnapshot(wizard.Snapshot{Step: finitestate.StepSelection}, payment.IntentRef{}, false)
		assert.Contains(t, out, "Saved Order")
		assert.Contains(t, out, "selection")
		assert.NotContains(t, out, "Pending payment")
	})

	t.Run("full order with pending payment", func(t *testing.T) {
		t.Parallel()
		snap := wizard.Snapshot{
			Step:         finitestate.StepCheckout,
			SelectedMenu: &wizard.Item{ID: "menu-1", Name: "Menu du jour"},
			Extras: []wizard.Item{
				{ID: "coke", Name: "Coke", Category: "boisson"},
				{ID: "brownie", Name: "Brownie", Category: "dessert"},
			},
			Delivery: &wizard.DeliveryInfo{
				Kind:       wizard.DeliveryOnsite,
				RoomNumber: "2043",
				TimeSlot:   "19:30",
			},
			SessionEmail: "jean.dupont@example.org",
			Contact:      wizard.ContactInfo{Phone: "0612345678"},
		}
		ref := payment.IntentRef{ReservationID: 42, CheckoutIntentID: "intent-1"}

		out := renderSnapshot(snap, ref, true)
		assert.Contains(t, out, "checkout")
		assert.Contains(t, out, "Menu du jour")
		assert.Contains(t, out, "Coke")
		assert.Contains(t, out, "Brownie")
		assert.Contains(t, out, "2043")
		assert.Contains(t, out, "19:30")
		assert.Contains(t, out, "0612345678")
		assert.Contains(t, out, "jean.dupont@example.org")
		assert.Contains(t, out, "intent-1")
		assert.Contains(t, out, "42")
	})

	t.Run("external delivery shows address", func(t *testing.T) {
		t.Parallel()
		snap := wizard.Snapshot{
			Step:         finitestate.StepDelivery,
			SelectedMenu: &wizard.Item{ID: "menu-1", Name: "Menu du jour"},
			Delivery: &wizard.DeliveryInfo{
				Kind:     wizard.DeliveryExternal,
				Address:  "12 rue des Lilas",
				TimeSlot: "20:00",
			},
		}
		out := renderSnapshot(snap, payment.IntentRef{}, false)
		assert.Contains(t, out, "12 rue des Lilas")
		assert.NotContains(t, out, "Room:")
	})
}
