package payment

import "errors"

var (
	ErrNoPlausibleName    = errors.New("could not determine a plausible payer name")
	ErrMissingSessionEmail = errors.New("no verified session email bound to the order")
	ErrIncompleteOrder    = errors.New("order is missing required fields")
)
