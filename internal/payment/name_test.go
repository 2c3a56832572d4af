package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveNameFromEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		first string
		last  string
	}{
		{
			name:  "dot separated",
			email: "jean.dupont@example.org",
			first: "Jean",
			last:  "Dupont",
		},
		{
			name:  "underscore separated",
			email: "marie_curie@example.org",
			first: "Marie",
			last:  "Curie",
		},
		{
			name:  "single part reused for both",
			email: "plato@example.org",
			first: "Plato",
			last:  "Plato",
		},
		{
			name:  "three parts join the tail",
			email: "anna.de.souza@example.org",
			first: "Anna",
			last:  "De Souza",
		},
		{
			name:  "short segments dropped",
			email: "j.dupont@example.org",
			first: "Dupont",
			last:  "Dupont",
		},
		{
			name:  "mixed case normalized",
			email: "JEAN.DUPONT@example.org",
			first: "Jean",
			last:  "Dupont",
		},
		{
			name:  "plus tag treated as separator",
			email: "jean+orders.dupont@example.org",
			first: "Jean",
			last:  "Orders Dupont",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			first, last, err := DeriveNameFromEmail(tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestDeriveNameFromEmail_NoPlausibleName(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"", "@example.org", "a@example.org", "a.b@example.org"} {
		t.Run(email, func(t *testing.T) {
			t.Parallel()
			_, _, err := DeriveNameFromEmail(email)
			require.ErrorIs(t, err, ErrNoPlausibleName)
		})
	}
}
