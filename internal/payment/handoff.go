package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campuskiosk/orderflow/internal/api"
	"github.com/campuskiosk/orderflow/internal/kioskstore"
	"github.com/campuskiosk/orderflow/internal/wizard"
)

// Backend is the slice of the ordering API the handoff needs.
type Backend interface {
	Me(ctx context.Context) (*api.Profile, error)
	CreateReservation(ctx context.Context, req api.ReservationRequest) (*api.Reservation, error)
	CreateCheckout(ctx context.Context, req api.CheckoutRequest) (*api.Checkout, error)
}

// Handoff turns a completed wizard snapshot into a server-side reservation
// and a payment checkout intent, persisting the intent reference before the
// caller redirects to the provider.
type Handoff struct {
	backend Backend
	store   *kioskstore.Store
	logger  *slog.Logger
}

// NewHandoff creates a Handoff. A nil logger falls back to slog.Default.
func NewHandoff(backend Backend, store *kioskstore.Store, logger *slog.Logger) *Handoff {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handoff{
		backend: backend,
		store:   store,
		logger:  logger.WithGroup("payment.Handoff"),
	}
}

// Prepare creates the reservation and checkout intent for the given order
// and returns the checkout to redirect to. The intent reference is written
// to storage before returning, so a crash or closed tab during the external
// payment flow can still be reconciled by the confirmation poller.
func (h *Handoff) Prepare(ctx context.Context, snap wizard.Snapshot) (*api.Checkout, error) {
	if err := validateOrder(snap); err != nil {
		return nil, err
	}

	email, first, last, err := h.payerIdentity(ctx, snap)
	if err != nil {
		return nil, err
	}

	reservation, err := h.backend.CreateReservation(ctx, buildReservation(snap))
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	h.logger.Debug("Reservation created", "id", reservation.ID)

	checkout, err := h.backend.CreateCheckout(ctx, api.CheckoutRequest{
		PayerEmail:     email,
		PayerFirstName: first,
		PayerLastName:  last,
		ReservationID:  reservation.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	ref := IntentRef{
		ReservationID:    reservation.ID,
		CheckoutIntentID: checkout.CheckoutIntentID,
	}
	if err := SaveIntentRef(h.store, ref); err != nil {
		return nil, fmt.Errorf("failed to persist payment intent reference: %w", err)
	}
	h.logger.Debug("Checkout prepared", "intentID", checkout.CheckoutIntentID)

	return checkout, nil
}

// payerIdentity resolves the name and email to bill. The authenticated
// profile wins; when it is unavailable the name is derived from the session
// email as a best effort.
func (h *Handoff) payerIdentity(ctx context.Context, snap wizard.Snapshot) (email, first, last string, err error) {
	profile, err := h.backend.Me(ctx)
	if err == nil && profile.FirstName != "" && profile.LastName != "" {
		return profile.Email, profile.FirstName, profile.LastName, nil
	}
	if err != nil {
		h.logger.Debug("Profile unavailable, deriving payer name from email", "error", err)
	}

	if snap.SessionEmail == "" {
		return "", "", "", ErrMissingSessionEmail
	}
	first, last, err = DeriveNameFromEmail(snap.SessionEmail)
	if err != nil {
		return "", "", "", err
	}
	return snap.SessionEmail, first, last, nil
}

func validateOrder(snap wizard.Snapshot) error {
	if snap.SelectedMenu == nil || snap.Delivery == nil || snap.Contact.Phone == "" {
		return ErrIncompleteOrder
	}
	return snap.Delivery.Validate()
}

func buildReservation(snap wizard.Snapshot) api.ReservationRequest {
	boisson := ""
	var extras []string
	for _, extra := range snap.Extras {
		if extra.Category == "boisson" && boisson == "" {
			boisson = extra.ID
			continue
		}
		extras = append(extras, extra.ID)
	}

	return api.ReservationRequest{
		HeureReservation: snap.Delivery.TimeSlot,
		HabiteResidence:  snap.Delivery.Kind == wizard.DeliveryOnsite,
		NumeroChambre:    snap.Delivery.RoomNumber,
		Adresse:          snap.Delivery.Address,
		Phone:            strings.TrimSpace(snap.Contact.Phone),
		SpecialRequests:  snap.Contact.SpecialRequests,
		Menu:             snap.SelectedMenu.ID,
		Boisson:          boisson,
		Extras:           extras,
	}
}
