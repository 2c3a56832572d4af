package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoomNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		room    string
		wantErr error
	}{
		{"1001", nil},
		{"7999", nil},
		{"1204", nil},
		{"4500", nil},
		{"", ErrRoomNumberLength},
		{"120", ErrRoomNumberLength},
		{"12045", ErrRoomNumberLength},
		{"12a4", ErrRoomNumberDigits},
		{"12.4", ErrRoomNumberDigits},
		{"-123", ErrRoomNumberDigits},
		{"1000", ErrRoomNumberRange},
		{"0999", ErrRoomNumberRange},
		{"8000", ErrRoomNumberRange},
		{"9999", ErrRoomNumberRange},
	}

	for _, tc := range tests {
		t.Run(tc.room, func(t *testing.T) {
			t.Parallel()
			err := ValidateRoomNumber(tc.room)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	valid := []string{
		"0612345678",
		"06 12 34 56 78",
		"06.12.34.56.78",
		"06-12-34-56-78",
		"+33612345678",
		"+33 6 12 34 56 78",
		"0033612345678",
		"0112345678",
	}
	for _, phone := range valid {
		t.Run("valid "+phone, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, ValidatePhone(phone))
		})
	}

	invalid := []string{
		"",
		"061234567",    // too short
		"06123456789",  // too long
		"1612345678",   // no leading zero
		"0012345678",   // 00 prefix without country code
		"061234567a",   // letter
		"+44612345678", // wrong country code shape
	}
	for _, phone := range invalid {
		t.Run("invalid "+phone, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, ValidatePhone(phone), ErrInvalidPhone)
		})
	}
}

func TestDeliveryInfo_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    DeliveryInfo
		wantErr error
	}{
		{
			name: "onsite ok",
			info: DeliveryInfo{Kind: DeliveryOnsite, RoomNumber: "1204", TimeSlot: "12:00"},
		},
		{
			name: "external ok",
			info: DeliveryInfo{Kind: DeliveryExternal, Address: "12 rue des Lilas", TimeSlot: "12:00"},
		},
		{
			name:    "onsite without room",
			info:    DeliveryInfo{Kind: DeliveryOnsite, TimeSlot: "12:00"},
			wantErr: ErrMissingRoomNumber,
		},
		{
			name:    "onsite with address",
			info:    DeliveryInfo{Kind: DeliveryOnsite, RoomNumber: "1204", Address: "nope", TimeSlot: "12:00"},
			wantErr: ErrUnexpectedAddress,
		},
		{
			name:    "onsite bad room",
			info:    DeliveryInfo{Kind: DeliveryOnsite, RoomNumber: "9999", TimeSlot: "12:00"},
			wantErr: ErrRoomNumberRange,
		},
		{
			name:    "external without address",
			info:    DeliveryInfo{Kind: DeliveryExternal, TimeSlot: "12:00"},
			wantErr: ErrMissingAddress,
		},
		{
			name:    "external with room",
			info:    DeliveryInfo{Kind: DeliveryExternal, Address: "12 rue des Lilas", RoomNumber: "1204", TimeSlot: "12:00"},
			wantErr: ErrUnexpectedRoomInfo,
		},
		{
			name:    "missing slot",
			info:    DeliveryInfo{Kind: DeliveryOnsite, RoomNumber: "1204"},
			wantErr: ErrMissingTimeSlot,
		},
		{
			name:    "unknown kind",
			info:    DeliveryInfo{Kind: "drone", TimeSlot: "12:00"},
			wantErr: ErrUnknownDeliveryKind,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.info.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
