package payment

import (
	"fmt"
	"strings"
	"unicode"
)

// minNameLength is the plausibility floor for each derived name part.
const minNameLength = 2

// nameSeparators are the common local-part separators split on when deriving
// a name from an email address.
const nameSeparators = "._-+"

// DeriveNameFromEmail guesses a payer first/last name from the local part of
// an email address: "jean.dupont@x" becomes ("Jean", "Dupont"). This is a
// best-effort heuristic for unauthenticated payers, never verified identity.
func DeriveNameFromEmail(email string) (first, last string, err error) {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "", "", fmt.Errorf("%w: %q", ErrNoPlausibleName, email)
	}

	segments := strings.FieldsFunc(local, func(r rune) bool {
		return strings.ContainsRune(nameSeparators, r)
	})

	var parts []string
	for _, seg := range segments {
		if len(seg) >= minNameLength {
			parts = append(parts, capitalize(seg))
		}
	}

	switch len(parts) {
	case 0:
		return "", "", fmt.Errorf("%w: %q", ErrNoPlausibleName, email)
	case 1:
		return parts[0], parts[0], nil
	default:
		return parts[0], strings.Join(parts[1:], " "), nil
	}
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
