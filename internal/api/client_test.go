package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Me(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/me", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
			writeJSON(t, w, http.StatusOK, Profile{
				Email:     "sam@example.edu",
				FirstName: "Sam",
				LastName:  "Riviere",
			})
		}))

		profile, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sam@example.edu", profile.Email)
		assert.Equal(t, "Sam", profile.FirstName)
	})

	t.Run("401 refreshes once and retries", func(t *testing.T) {
		t.Parallel()
		var refreshed atomic.Bool
		var refreshCalls atomic.Int32

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/auth/refresh":
				refreshCalls.Add(1)
				refreshed.Store(true)
				w.WriteHeader(http.StatusOK)
			case "/api/users/me":
				if !refreshed.Load() {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				writeJSON(t, w, http.StatusOK, Profile{Email: "sam@example.edu"})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

		profile, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sam@example.edu", profile.Email)
		assert.Equal(t, int32(1), refreshCalls.Load())
	})

	t.Run("failed refresh propagates ErrNotAuthenticated", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/auth/refresh":
				w.WriteHeader(http.StatusUnauthorized)
			default:
				w.WriteHeader(http.StatusUnauthorized)
			}
		}))

		_, err := client.Me(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}

func TestClient_ConcurrentRefreshIsSingleFlight(t *testing.T) {
	t.Parallel()

	var unauthorizedServed atomic.Int32
	var refreshCalls atomic.Int32
	var refreshed atomic.Bool
	bothWaiting := make(chan struct{})

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			// hold the refresh until both callers have seen their 401,
			// so both are waiting on the coordinator at once
			<-bothWaiting
			refreshCalls.Add(1)
			refreshed.Store(true)
			w.WriteHeader(http.StatusOK)
		case "/api/users/me":
			if !refreshed.Load() {
				if unauthorizedServed.Add(1) == 2 {
					close(bothWaiting)
				}
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, http.StatusOK, Profile{Email: "sam@example.edu"})
		}
	}))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Me(context.Background())
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent 401s must share one refresh")
}

func TestClient_VerifyCode(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/verify", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "sam@example.edu", body["email"])
			assert.Equal(t, "123456", body["code"])
			writeJSON(t, w, http.StatusOK, VerifyResult{IsCotisant: true})
		}))

		result, err := client.VerifyCode(context.Background(), "sam@example.edu", "123456")
		require.NoError(t, err)
		assert.True(t, result.IsCotisant)
	})

	t.Run("gateway HTML error page", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
		}))

		_, err := client.VerifyCode(context.Background(), "sam@example.edu", "123456")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedContentType)
	})

	t.Run("server detail surfaced", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusBadRequest, map[string]string{"detail": "code expired"})
		}))

		_, err := client.VerifyCode(context.Background(), "sam@example.edu", "123456")
		require.Error(t, err)
		var serverErr *ServerError
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
		assert.Equal(t, "code expired", serverErr.Detail)
	})
}

func TestClient_Availability(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservations/availability", r.URL.Path)
		assert.Equal(t, "m1", r.URL.Query().Get("menu_id"))
		assert.Equal(t, "b2,b3", r.URL.Query().Get("bonus_ids"))
		writeJSON(t, w, http.StatusOK, availabilityResponse{Slots: []TimeSlot{
			{Slot: "12:00", Start: "2026-09-01T12:00:00", Available: true, CurrentCount: 3, MaxCapacity: 10},
			{Slot: "12:30", Start: "2026-09-01T12:30:00", Available: false, CurrentCount: 10, MaxCapacity: 10},
		}})
	}))

	slots, err := client.Availability(context.Background(), "m1", "", []string{"b2", "b3"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
}

func TestClient_PaymentStatus(t *testing.T) {
	t.Parallel()

	t.Run("pending", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/payments/status/ci_42", r.URL.Path)
			writeJSON(t, w, http.StatusOK, PaymentStatus{PaymentStatus: PaymentPending})
		}))

		status, err := client.PaymentStatus(context.Background(), "ci_42")
		require.NoError(t, err)
		assert.Equal(t, PaymentPending, status.PaymentStatus)
	})

	t.Run("unknown intent", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.PaymentStatus(context.Background(), "ci_missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIntentNotFound)
	})
}

func TestClient_CreateReservationAndCheckout(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/reservations/":
			var req ReservationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "12:00", req.HeureReservation)
			assert.True(t, req.HabiteResidence)
			assert.Equal(t, "1204", req.NumeroChambre)
			writeJSON(t, w, http.StatusCreated, Reservation{ID: 77})
		case "/api/payments/checkout":
			var req CheckoutRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(77), req.ReservationID)
			writeJSON(t, w, http.StatusCreated, Checkout{
				CheckoutIntentID: "ci_77",
				RedirectURL:      "https://pay.example.com/ci_77",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	reservation, err := client.CreateReservation(context.Background(), ReservationRequest{
		HeureReservation: "12:00",
		HabiteResidence:  true,
		NumeroChambre:    "1204",
		Phone:            "0612345678",
		Menu:             "m1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), reservation.ID)

	checkout, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		PayerEmail:     "sam@example.edu",
		PayerFirstName: "Sam",
		PayerLastName:  "Riviere",
		ReservationID:  reservation.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ci_77", checkout.CheckoutIntentID)
	assert.Equal(t, "https://pay.example.com/ci_77", checkout.RedirectURL)
}
