// Package wizard drives the multi-step checkout flow: menu selection through
// payment handoff. The step transition function is pure state-machine logic;
// history mirroring and persistence hang off each transition.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campuskiosk/orderflow/internal/api"
	"github.com/campuskiosk/orderflow/internal/authgate"
	"github.com/campuskiosk/orderflow/internal/history"
	"github.com/campuskiosk/orderflow/internal/kioskstore"
	"github.com/campuskiosk/orderflow/internal/wizard/finitestate"
)

// AuthProber is the slice of the auth gate the wizard needs.
type AuthProber interface {
	Probe(ctx context.Context) authgate.Result
}

// SlotSource lists currently available delivery slots.
type SlotSource interface {
	Availability(ctx context.Context, menuID, boissonID string, bonusIDs []string) ([]api.TimeSlot, error)
}

// CodeVerifier is the email verification surface of the API client.
type CodeVerifier interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*api.VerifyResult, error)
}

// Config holds the collaborators for creating a Wizard.
type Config struct {
	Store     *kioskstore.Store
	Navigator history.Navigator
	Gate      AuthProber
	Slots     SlotSource
	Verifier  CodeVerifier

	Logger *slog.Logger

	// OuterNavigation receives restored history entries that do not belong
	// to the wizard.
	OuterNavigation func(history.Entry)
}

// Wizard is the order wizard engine. All state-changing operations persist
// the snapshot and mirror the transition into navigation history before
// returning.
type Wizard struct {
	logger *slog.Logger
	store  *kioskstore.Store
	fsm    finitestate.Machine
	hist   *history.Synchronizer
	gate   AuthProber
	slots  SlotSource
	verify CodeVerifier

	mu   sync.Mutex
	busy bool
	snap Snapshot
}

// New mounts a wizard: the persisted snapshot is loaded and validated, the
// step machine is armed at the resumed (or corrected) step, and history is
// re-armed with a replace so mounting never consumes a back-step.
func New(cfg Config) (*Wizard, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Navigator == nil {
		return nil, fmt.Errorf("navigator is required")
	}
	if cfg.Gate == nil {
		return nil, fmt.Errorf("auth gate is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().WithGroup("wizard.Wizard")
	}

	w := &Wizard{
		logger: logger,
		store:  cfg.Store,
		gate:   cfg.Gate,
		slots:  cfg.Slots,
		verify: cfg.Verifier,
	}

	snap, corrected := LoadSnapshot(cfg.Store).Normalize()
	if corrected {
		logger.Warn("Persisted snapshot inconsistent, starting over")
		if err := ClearSnapshot(cfg.Store); err != nil {
			logger.Error("Failed to clear inconsistent snapshot", "error", err)
		}
	}
	w.snap = snap

	fsm, err := finitestate.New(logger.WithGroup("fsm").Handler(), snap.Step)
	if err != nil {
		return nil, fmt.Errorf("failed to create step machine: %w", err)
	}
	w.fsm = fsm

	syncOpts := []history.SyncOption{
		history.WithLogger(logger.WithGroup("history")),
		history.WithValidator(w.validateStep),
		history.WithStepHandler(w.restoreStep),
	}
	if cfg.OuterNavigation != nil {
		syncOpts = append(syncOpts, history.WithOuterHandler(cfg.OuterNavigation))
	}
	w.hist = history.NewSynchronizer(cfg.Navigator, syncOpts...)
	w.hist.Arm(snap.Step)

	return w, nil
}

// Step returns the current wizard step.
func (w *Wizard) Step() string {
	return w.fsm.GetState()
}

// Snapshot returns a copy of the current wizard state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

// SelectMenu records the chosen primary menu and advances to the detail
// step. Re-selecting after going back replaces the previous choice.
func (w *Wizard) SelectMenu(menu Item) error {
	if err := w.begin(finitestate.StepSelection); err != nil {
		return err
	}
	defer w.end()

	menu.Kind = ItemKindMenu
	w.snap.SelectedMenu = &menu
	return w.advance(finitestate.StepDetail)
}

// ConfirmDetail confirms the selected menu: the cart is reset to exactly
// that item and the wizard advances to supplements.
func (w *Wizard) ConfirmDetail() error {
	if err := w.begin(finitestate.StepDetail); err != nil {
		return err
	}
	defer w.end()

	if w.snap.SelectedMenu == nil {
		return ErrNoMenuSelected
	}
	cart := NewCart()
	cart.SetMenu(*w.snap.SelectedMenu)
	w.snap.Cart = cart.Items()
	return w.advance(finitestate.StepSupplements)
}

// ConfirmSupplements completes the supplements step with the confirmed
// upsell set. Prior upsells are fully replaced, so completing this step
// repeatedly never accumulates duplicates.
func (w *Wizard) ConfirmSupplements(items []Item) error {
	if err := w.begin(finitestate.StepSupplements); err != nil {
		return err
	}
	defer w.end()

	cart := NewCart(w.snap.Cart...)
	cart.ReplaceUpsells(items)
	w.snap.Cart = cart.Items()
	w.snap.Extras = cart.Upsells()
	return w.advance(finitestate.StepInfo)
}

// SubmitContact validates and records contact info, advancing to delivery.
func (w *Wizard) SubmitContact(contact ContactInfo) error {
	if err := w.begin(finitestate.StepInfo); err != nil {
		return err
	}
	defer w.end()

	if err := ValidatePhone(contact.Phone); err != nil {
		return err
	}
	w.snap.Contact = contact
	return w.advance(finitestate.StepDelivery)
}

// DeliveryResult reports where the delivery step branched to. TransientErr
// is set when the session probe failed on the network: the wizard still
// moved on to verification, but the UI should surface a dismissible error.
type DeliveryResult struct {
	Next         string
	TransientErr error
}

// SubmitDelivery validates delivery info against the currently available
// slots, then branches through the auth gate: a valid session skips straight
// to checkout, anything else lands on verification.
func (w *Wizard) SubmitDelivery(ctx context.Context, info DeliveryInfo) (DeliveryResult, error) {
	if err := w.begin(finitestate.StepDelivery); err != nil {
		return DeliveryResult{}, err
	}
	defer w.end()

	if err := info.Validate(); err != nil {
		return DeliveryResult{}, err
	}
	if err := w.checkSlot(ctx, info.TimeSlot); err != nil {
		return DeliveryResult{}, err
	}
	w.snap.Delivery = &info

	probe := w.gate.Probe(ctx)
	switch probe.Outcome {
	case authgate.Authenticated:
		w.snap.SessionEmail = probe.Email
		if err := w.advance(finitestate.StepCheckout); err != nil {
			return DeliveryResult{}, err
		}
		return DeliveryResult{Next: finitestate.StepCheckout}, nil
	case authgate.ProbeFailed:
		if err := w.advance(finitestate.StepVerification); err != nil {
			return DeliveryResult{}, err
		}
		return DeliveryResult{Next: finitestate.StepVerification, TransientErr: probe.Err}, nil
	default:
		if err := w.advance(finitestate.StepVerification); err != nil {
			return DeliveryResult{}, err
		}
		return DeliveryResult{Next: finitestate.StepVerification}, nil
	}
}

// RequestVerificationCode asks the backend to email a login code.
func (w *Wizard) RequestVerificationCode(ctx context.Context, email string) error {
	if step := w.fsm.GetState(); step != finitestate.StepVerification {
		return fmt.Errorf("%w: %s", ErrWrongStep, step)
	}
	return w.verify.RequestCode(ctx, email)
}

// SubmitVerificationCode exchanges the emailed code for a session. An
// ineligible account is a terminal block: the error is returned and no
// transition happens.
func (w *Wizard) SubmitVerificationCode(ctx context.Context, email, code string) error {
	if err := w.begin(finitestate.StepVerification); err != nil {
		return err
	}
	defer w.end()

	result, err := w.verify.VerifyCode(ctx, email, code)
	if err != nil {
		return err
	}
	if !result.IsCotisant {
		return ErrNotEligible
	}
	w.snap.SessionEmail = email
	return w.advance(finitestate.StepCheckout)
}

// Back routes the user's back gesture through native history navigation
// rather than rolling state back locally.
func (w *Wizard) Back() {
	w.hist.Back()
}

// Reset clears the entire persisted state and re-arms the wizard at
// selection. Callers must have confirmed this with the user: it is
// destructive.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.snap = emptySnapshot()
	if err := w.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted state: %w", err)
	}
	if err := w.fsm.SetState(finitestate.StepSelection); err != nil {
		return err
	}
	w.hist.Arm(finitestate.StepSelection)
	w.logger.Info("Wizard reset")
	return nil
}

// begin guards a transition: the triggering control is disabled while a
// transition's async work is in flight, and this is the programmatic
// equivalent for re-entrant callers.
func (w *Wizard) begin(expectStep string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrTransitionInFlight
	}
	if step := w.fsm.GetState(); step != expectStep {
		return fmt.Errorf("%w: at %s, expected %s", ErrWrongStep, step, expectStep)
	}
	w.busy = true
	return nil
}

func (w *Wizard) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// advance moves the step machine forward, persists the snapshot, and pushes
// a history entry. A persistence failure is logged, not surfaced: losing the
// resume snapshot must not break the in-progress order.
func (w *Wizard) advance(step string) error {
	if err := w.fsm.Transition(step); err != nil {
		return fmt.Errorf("%w: %w", ErrWrongStep, err)
	}
	w.snap.Step = step
	if err := SaveSnapshot(w.store, w.snap); err != nil {
		w.logger.Error("Failed to persist snapshot", "step", step, "error", err)
	}
	w.hist.StepForward(step)
	return nil
}

// checkSlot rejects a time slot the backend does not currently offer.
func (w *Wizard) checkSlot(ctx context.Context, slot string) error {
	if w.slots == nil {
		return nil
	}
	menuID := ""
	if w.snap.SelectedMenu != nil {
		menuID = w.snap.SelectedMenu.ID
	}
	boissonID := ""
	var bonusIDs []string
	for _, extra := range w.snap.Extras {
		if extra.Category == "boisson" && boissonID == "" {
			boissonID = extra.ID
			continue
		}
		bonusIDs = append(bonusIDs, extra.ID)
	}

	slots, err := w.slots.Availability(ctx, menuID, boissonID, bonusIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch slot availability: %w", err)
	}
	for _, s := range slots {
		if s.Slot == slot && s.Available {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrSlotUnavailable, slot)
}

// validateStep corrects a step restored from history against the selected
// menu invariant.
func (w *Wizard) validateStep(step string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !finitestate.ValidStep(step) {
		return finitestate.StepSelection
	}
	if step != finitestate.StepSelection && w.snap.SelectedMenu == nil {
		return finitestate.StepSelection
	}
	return step
}

// restoreStep lands a validated history step in the wizard. Arriving at
// selection without a menu means the rest of the snapshot is inconsistent
// leftovers, so it is dropped.
func (w *Wizard) restoreStep(step string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.fsm.SetState(step); err != nil {
		w.logger.Error("Failed to restore step", "step", step, "error", err)
		return
	}
	if step == finitestate.StepSelection && w.snap.SelectedMenu == nil {
		w.snap = emptySnapshot()
	}
	w.snap.Step = step
	if err := SaveSnapshot(w.store, w.snap); err != nil {
		w.logger.Error("Failed to persist snapshot", "step", step, "error", err)
	}
}
