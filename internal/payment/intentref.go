package payment

import (
	"github.com/campuskiosk/orderflow/internal/kioskstore"
)

// IntentRef ties a locally-initiated payment attempt to its server-side
// identifiers. It is persisted before the external redirect and is the sole
// mechanism for resuming confirmation afterwards.
type IntentRef struct {
	ReservationID    int64  `json:"reservation_id"`
	CheckoutIntentID string `json:"checkout_intent_id"`
}

// LoadIntentRef reads the persisted intent reference. The bool reports
// whether one exists.
func LoadIntentRef(store *kioskstore.Store) (IntentRef, bool) {
	ref := kioskstore.ReadJSON(store, kioskstore.KeyPaymentRef, IntentRef{})
	return ref, ref.CheckoutIntentID != ""
}

// SaveIntentRef persists the intent reference.
func SaveIntentRef(store *kioskstore.Store, ref IntentRef) error {
	return store.WriteJSON(kioskstore.KeyPaymentRef, ref)
}

// ClearIntentRefIf deletes the stored reference only when it matches the
// given checkout intent id. A terminal outcome for a different intent, say
// an older attempt on a shared kiosk, must not wipe the reference belonging
// to the attempt this device is still tracking.
func ClearIntentRefIf(store *kioskstore.Store, checkoutIntentID string) error {
	stored, ok := LoadIntentRef(store)
	if !ok || stored.CheckoutIntentID != checkoutIntentID {
		return nil
	}
	return store.Delete(kioskstore.KeyPaymentRef)
}
