// Package api is the HTTP client for the campus ordering backend. It covers
// exactly the endpoints the order wizard consumes and handles session
// refresh transparently for cookie-authenticated calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// Client talks to the ordering backend.
type Client struct {
	logger      *slog.Logger
	baseURL     string
	httpClient  *http.Client
	coordinator *AuthCoordinator
}

// Config holds configuration options for creating a Client.
type Config struct {
	Logger  *slog.Logger
	BaseURL string

	// HTTPClient overrides the default cookie-jar client, mainly for tests.
	HTTPClient *http.Client
}

// New creates a new client instance.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().WithGroup("api.Client")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar}
	}

	c := &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
	c.coordinator = NewAuthCoordinator(c.refreshSession, logger.WithGroup("coordinator"))
	return c
}

// Coordinator exposes the single-flight refresh coordinator, mainly so tests
// can exercise it directly.
func (c *Client) Coordinator() *AuthCoordinator {
	return c.coordinator
}

// Me fetches the authenticated user profile. ErrNotAuthenticated means there
// is no valid session even after a refresh attempt.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.doAuthenticated(ctx, http.MethodGet, "/api/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RequestCode asks the backend to email a verification code.
func (c *Client) RequestCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/request-code", body, nil)
}

// VerifyCode exchanges an emailed code for a session. The response is only
// decoded when the body is actually JSON; gateway error pages surface as
// ErrUnexpectedContentType instead of a decode panic.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	body := map[string]string{"email": email, "code": code}
	var result VerifyResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Availability lists delivery slots, optionally filtered by the current cart
// so the backend can account for preparation capacity.
func (c *Client) Availability(ctx context.Context, menuID, boissonID string, bonusIDs []string) ([]TimeSlot, error) {
	query := url.Values{}
	if menuID != "" {
		query.Set("menu_id", menuID)
	}
	if boissonID != "" {
		query.Set("boisson_id", boissonID)
	}
	if len(bonusIDs) > 0 {
		query.Set("bonus_ids", strings.Join(bonusIDs, ","))
	}

	path := "/api/reservations/availability"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp availabilityResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// CreateReservation creates the server-side reservation record.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error) {
	var reservation Reservation
	if err := c.doAuthenticated(ctx, http.MethodPost, "/api/reservations/", req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CreateCheckout creates a payment checkout intent for a reservation.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	var checkout Checkout
	if err := c.doAuthenticated(ctx, http.MethodPost, "/api/payments/checkout", req, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// PaymentStatus polls the payment state of a checkout intent. A 404 maps to
// ErrIntentNotFound.
func (c *Client) PaymentStatus(ctx context.Context, checkoutIntentID string) (*PaymentStatus, error) {
	var status PaymentStatus
	path := "/api/payments/status/" + url.PathEscape(checkoutIntentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// refreshSession is the raw refresh call, always routed through the
// coordinator so concurrent 401s share one attempt.
func (c *Client) refreshSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, nil)
}

// doAuthenticated performs a cookie-authenticated round trip. On a 401 it
// refreshes the session once (single-flight) and retries; a failed refresh
// or a second 401 propagates as ErrNotAuthenticated.
func (c *Client) doAuthenticated(ctx context.Context, method, path string, body, dest any) error {
	status, err := c.roundTrip(ctx, method, path, body, dest)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return nil
	}

	if refreshErr := c.coordinator.Refresh(ctx); refreshErr != nil {
		c.logger.Debug("Session refresh failed", "error", refreshErr)
		return fmt.Errorf("%w: refresh failed", ErrNotAuthenticated)
	}

	status, err = c.roundTrip(ctx, method, path, body, dest)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s %s", ErrNotAuthenticated, method, path)
	}
	return nil
}

// do performs an unauthenticated round trip, mapping any non-2xx status to
// an error.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	status, err := c.roundTrip(ctx, method, path, body, dest)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s %s", ErrNotAuthenticated, method, path)
	}
	return nil
}

// roundTrip sends one request. It returns the 401 status instead of an error
// so doAuthenticated can drive the refresh-and-retry; every other non-2xx
// becomes an error here.
func (c *Client) roundTrip(ctx context.Context, method, path string, body, dest any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.Must(uuid.NewV6()).String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Failed to close response body", "error", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/api/payments/status/"):
		return resp.StatusCode, fmt.Errorf("%w: %s", ErrIntentNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return resp.StatusCode, c.serverError(resp)
	}

	if dest == nil {
		return resp.StatusCode, nil
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return resp.StatusCode, fmt.Errorf("%w: %q", ErrUnexpectedContentType, resp.Header.Get("Content-Type"))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// serverError extracts the backend's detail text when the error body is JSON.
func (c *Client) serverError(resp *http.Response) error {
	serverErr := &ServerError{StatusCode: resp.StatusCode}
	if isJSON(resp.Header.Get("Content-Type")) {
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			serverErr.Detail = body.Detail
		}
	}
	return serverErr
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
