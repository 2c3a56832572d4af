package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRoomNumber accepts exactly 4-digit residence room numbers in
// [1001, 7999]. Each failure mode returns its own sentinel so the UI can
// show a specific message.
func ValidateRoomNumber(room string) error {
	if len(room) != 4 {
		return ErrRoomNumberLength
	}
	for _, r := range room {
		if r < '0' || r > '9' {
			return ErrRoomNumberDigits
		}
	}
	n, err := strconv.Atoi(room)
	if err != nil {
		return ErrRoomNumberDigits
	}
	if n < 1001 || n > 7999 {
		return ErrRoomNumberRange
	}
	return nil
}

// ValidatePhone accepts French mobile/landline numbers, tolerating the usual
// separators: "06 12 34 56 78", "06.12.34.56.78", "+33 6 12 34 56 78".
func ValidatePhone(phone string) error {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-':
			return -1
		}
		return r
	}, phone)

	digits := cleaned
	switch {
	case strings.HasPrefix(cleaned, "+33"):
		digits = "0" + cleaned[3:]
	case strings.HasPrefix(cleaned, "0033"):
		digits = "0" + cleaned[4:]
	}

	if len(digits) != 10 || digits[0] != '0' || digits[1] == '0' {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
		}
	}
	return nil
}
