package api

// Wire types for the ordering backend. JSON field names follow the backend
// contract, which is French in places (prenom/nom, heure_reservation).

// Profile is the authenticated user profile from GET /api/users/me.
type Profile struct {
	Email          string `json:"email"`
	FirstName      string `json:"prenom"`
	LastName       string `json:"nom"`
	HasActiveOrder bool   `json:"has_active_order"`
	PaymentStatus  string `json:"payment_status"`
}

// TimeSlot is one delivery slot from the availability endpoint.
type TimeSlot struct {
	Slot         string `json:"slot"`
	Start        string `json:"start"`
	Available    bool   `json:"available"`
	CurrentCount int    `json:"current_count"`
	MaxCapacity  int    `json:"max_capacity"`
}

type availabilityResponse struct {
	Slots []TimeSlot `json:"slots"`
}

// VerifyResult is the successful response of POST /api/auth/verify.
type VerifyResult struct {
	IsCotisant bool `json:"is_cotisant"`
}

// ReservationRequest creates a server-side reservation from the wizard state.
type ReservationRequest struct {
	HeureReservation string   `json:"heure_reservation"`
	HabiteResidence  bool     `json:"habite_residence"`
	NumeroChambre    string   `json:"numero_chambre,omitempty"`
	Adresse          string   `json:"adresse,omitempty"`
	Phone            string   `json:"phone"`
	SpecialRequests  string   `json:"special_requests,omitempty"`
	Menu             string   `json:"menu"`
	Boisson          string   `json:"boisson,omitempty"`
	Extras           []string `json:"extras"`
}

// Reservation is the created reservation record.
type Reservation struct {
	ID int64 `json:"id"`
}

// CheckoutRequest creates a payment checkout intent for a reservation.
type CheckoutRequest struct {
	PayerEmail     string `json:"payer_email"`
	PayerFirstName string `json:"payer_first_name"`
	PayerLastName  string `json:"payer_last_name"`
	ReservationID  int64  `json:"reservation_id"`
}

// Checkout references the payment provider session to redirect to.
type Checkout struct {
	CheckoutIntentID string `json:"checkout_intent_id"`
	RedirectURL      string `json:"redirect_url"`
}

// Payment status values returned by GET /api/payments/status/{id}.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentStatus is the polled payment state of a checkout intent.
type PaymentStatus struct {
	PaymentStatus string `json:"payment_status"`
	StatusToken   string `json:"status_token,omitempty"`
}
