// Order wizard step state machine.
// Tracks which checkout screen the user is on and which moves are legal.
package finitestate

import (
	"log/slog"
	"slices"

	fsm "github.com/robbyt/go-fsm"
)

// Wizard step constants. The flow is linear with two branch points: DELIVERY
// forks on session validity, and VERIFICATION only advances when the
// verifying account is eligible.
const (
	StepSelection    = "selection"    // pick a primary menu item
	StepDetail       = "detail"       // confirm the selected menu
	StepSupplements  = "supplements"  // optional upsell items
	StepInfo         = "info"         // contact info (phone, special requests)
	StepDelivery     = "delivery"     // onsite/external + time slot
	StepVerification = "verification" // email code verification
	StepCheckout     = "checkout"     // payment handoff; wizard ends here
)

// StepTransitions defines the forward moves of the order wizard. Backward
// movement rides browser history and lands via SetState, so it is
// deliberately absent here.
var StepTransitions = map[string][]string{
	StepSelection:    {StepDetail},
	StepDetail:       {StepSupplements},
	StepSupplements:  {StepInfo},
	StepInfo:         {StepDelivery},
	StepDelivery:     {StepCheckout, StepVerification},
	StepVerification: {StepCheckout},
	StepCheckout:     {}, // the external payment redirect unmounts the wizard
}

// Machine defines the interface for the step state machine. This abstraction
// allows for different FSM implementations and simplifies testing.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string
}

// New creates a step machine starting at the given step. Resume from a
// persisted snapshot passes the restored step; a fresh wizard passes
// StepSelection.
func New(handler slog.Handler, initial string) (Machine, error) {
	return fsm.New(handler, initial, StepTransitions)
}

// ValidStep reports whether s names a wizard step.
func ValidStep(s string) bool {
	_, ok := StepTransitions[s]
	return ok
}

// stepOrder is the canonical forward ordering, used only for display.
var stepOrder = []string{
	StepSelection,
	StepDetail,
	StepSupplements,
	StepInfo,
	StepDelivery,
	StepVerification,
	StepCheckout,
}

// StepIndex returns the position of s in the canonical ordering, or -1.
func StepIndex(s string) int {
	return slices.Index(stepOrder, s)
}
