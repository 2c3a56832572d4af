package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the session is absent or expired and a
	// refresh did not help. Callers treat this as "not logged in", never
	// as a fatal condition.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrIntentNotFound is a 404 from the payment status endpoint: the
	// checkout intent is unknown to the backend.
	ErrIntentNotFound = errors.New("checkout intent not found")

	// ErrUnexpectedContentType means the response body was not JSON,
	// typically an upstream gateway error page.
	ErrUnexpectedContentType = errors.New("unexpected response content type")
)

// ServerError carries a non-2xx response with the backend's detail text when
// it supplied one.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}
