package wizard

import "errors"

var (
	ErrTransitionInFlight = errors.New("a transition is already in flight")
	ErrWrongStep          = errors.New("operation not valid for current step")
	ErrNoMenuSelected     = errors.New("no menu selected")
	ErrNotEligible        = errors.New("account is not eligible to order")

	// Delivery validation
	ErrMissingTimeSlot    = errors.New("no time slot chosen")
	ErrSlotUnavailable    = errors.New("chosen time slot is not available")
	ErrMissingRoomNumber  = errors.New("room number required for onsite delivery")
	ErrUnexpectedRoomInfo = errors.New("room number only applies to onsite delivery")
	ErrMissingAddress     = errors.New("address required for external delivery")
	ErrUnexpectedAddress  = errors.New("address only applies to onsite delivery")
	ErrUnknownDeliveryKind = errors.New("unknown delivery kind")

	// Field validation. Room number failures get one error per failure
	// mode so the UI can show a specific message.
	ErrRoomNumberLength = errors.New("room number must be exactly 4 digits")
	ErrRoomNumberDigits = errors.New("room number must contain only digits")
	ErrRoomNumberRange  = errors.New("room number must be between 1001 and 7999")
	ErrInvalidPhone     = errors.New("invalid phone number")
)
