package wizard

import "fmt"

// DeliveryKind discriminates the delivery info union.
type DeliveryKind string

const (
	// DeliveryOnsite delivers to a residence room.
	DeliveryOnsite DeliveryKind = "onsite"

	// DeliveryExternal delivers to a street address.
	DeliveryExternal DeliveryKind = "external"
)

// DeliveryInfo is where and when the order is delivered. RoomNumber is set
// iff Kind is onsite; Address iff Kind is external.
type DeliveryInfo struct {
	Kind       DeliveryKind `json:"kind"`
	RoomNumber string       `json:"room_number,omitempty"`
	Address    string       `json:"address,omitempty"`

	// TimeSlot is the chosen slot's start time identifier. It must name a
	// currently available slot before the wizard may advance.
	TimeSlot string `json:"time_slot"`
}

// Validate checks the union invariants and field formats.
func (d DeliveryInfo) Validate() error {
	switch d.Kind {
	case DeliveryOnsite:
		if d.Address != "" {
			return ErrUnexpectedAddress
		}
		if d.RoomNumber == "" {
			return ErrMissingRoomNumber
		}
		if err := ValidateRoomNumber(d.RoomNumber); err != nil {
			return err
		}
	case DeliveryExternal:
		if d.RoomNumber != "" {
			return ErrUnexpectedRoomInfo
		}
		if d.Address == "" {
			return ErrMissingAddress
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeliveryKind, d.Kind)
	}

	if d.TimeSlot == "" {
		return ErrMissingTimeSlot
	}
	return nil
}
