package wizard

import (
	"github.com/campuskiosk/orderflow/internal/kioskstore"
	"github.com/campuskiosk/orderflow/internal/wizard/finitestate"
)

// ContactInfo is collected once at the info step.
type ContactInfo struct {
	Phone           string `json:"phone"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// Snapshot is the full persisted wizard state: one value object, one
// serialize/deserialize pair, saved as a whole on every state-changing
// transition and deleted as a whole on payment success or explicit reset.
type Snapshot struct {
	Step         string        `json:"step"`
	SelectedMenu *Item         `json:"selected_menu,omitempty"`
	Cart         []Item        `json:"cart,omitempty"`
	Extras       []Item        `json:"extras,omitempty"`
	Delivery     *DeliveryInfo `json:"delivery,omitempty"`
	SessionEmail string        `json:"session_email,omitempty"`
	Contact      ContactInfo   `json:"contact"`
}

// emptySnapshot is the state of a fresh wizard.
func emptySnapshot() Snapshot {
	return Snapshot{Step: finitestate.StepSelection}
}

// Normalize enforces the consistency invariant: any step other than
// selection requires a selected menu. A violating snapshot is reset to a
// fresh one rather than resumed broken. The bool reports whether a
// correction happened.
func (s Snapshot) Normalize() (Snapshot, bool) {
	if !finitestate.ValidStep(s.Step) {
		return emptySnapshot(), true
	}
	if s.Step != finitestate.StepSelection && s.SelectedMenu == nil {
		return emptySnapshot(), true
	}
	return s, false
}

// LoadSnapshot reads the persisted snapshot, returning a fresh one when
// nothing is stored or the stored value is corrupted.
func LoadSnapshot(store *kioskstore.Store) Snapshot {
	return kioskstore.ReadJSON(store, kioskstore.KeySnapshot, emptySnapshot())
}

// SaveSnapshot persists the snapshot.
func SaveSnapshot(store *kioskstore.Store, snap Snapshot) error {
	return store.WriteJSON(kioskstore.KeySnapshot, snap)
}

// ClearSnapshot deletes the persisted snapshot.
func ClearSnapshot(store *kioskstore.Store) error {
	return store.Delete(kioskstore.KeySnapshot)
}
