// Package confirm polls the payment backend after the external checkout
// redirect until the payment settles or the poll budget runs out.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
	"github.com/robbyt/go-supervisor/supervisor"

	"github.com/campuskiosk/orderflow/internal/api"
	"github.com/campuskiosk/orderflow/internal/kioskstore"
	"github.com/campuskiosk/orderflow/internal/payment"
	"github.com/campuskiosk/orderflow/internal/payment/confirm/finitestate"
)

var (
	_ supervisor.Runnable  = (*Runner)(nil)
	_ supervisor.Stateable = (*Runner)(nil)
)

// StatusSource is the payment status surface of the API client.
type StatusSource interface {
	PaymentStatus(ctx context.Context, checkoutIntentID string) (*api.PaymentStatus, error)
}

// Runner drives the bounded confirmation loop for one checkout intent. It
// runs once: after the loop reaches a verdict the Runner shuts down and the
// verdict is available via Result.
type Runner struct {
	source   StatusSource
	store    *kioskstore.Store
	intentID string

	interval    time.Duration
	maxAttempts int
	clock       Clock

	result atomic.Pointer[Result]

	logger       *slog.Logger
	logCollector *loglater.LogCollector
	fsm          finitestate.Machine

	runCtx    context.Context
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a confirmation Runner. The checkout intent to confirm is
// resolved at Run time: an id set via WithIntentID wins, otherwise the
// persisted intent reference from a previous handoff is used.
func NewRunner(
	source StatusSource,
	store *kioskstore.Store,
	interval time.Duration,
	maxAttempts int,
	opts ...Option,
) (*Runner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	if maxAttempts <= 0 {
		return nil, fmt.Errorf("poll attempt count must be positive, got %d", maxAttempts)
	}

	runner := &Runner{
		source:      source,
		store:       store,
		interval:    interval,
		maxAttempts: maxAttempts,
		clock:       realClock{},
		logger:      slog.Default().WithGroup("confirm.Runner"),
		parentCtx:   context.Background(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	// Every attempt is logged through the collector so the full poll history
	// can be rendered after the verdict.
	runner.logCollector = loglater.NewLogCollector(runner.logger.Handler())
	runner.logger = slog.New(runner.logCollector).WithGroup("confirm.Runner")

	fsm, err := finitestate.New(runner.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "confirm.Runner"
}

// Run implements the supervisor.Runnable interface. It polls until the
// payment settles, the budget runs out, or the context is canceled, then
// shuts down.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	r.runCtx, r.runCancel = context.WithCancel(ctx)
	defer r.runCancel()

	// The parent context set at construction also ends the run.
	stop := context.AfterFunc(r.parentCtx, r.runCancel)
	defer stop()

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	intentID, ok := r.resolveIntent()
	if !ok {
		r.logger.Info("No pending payment to confirm")
		r.result.Store(&Result{Outcome: OutcomeNoPending})
	} else if result, done := r.poll(r.runCtx, intentID); done {
		r.result.Store(&result)
	}

	r.logger.Debug("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
	}
	if r.runCancel != nil {
		r.runCancel()
	}
}

// Result returns the verdict of the confirmation loop, or nil if the loop
// has not reached one (still running, or canceled before a verdict).
func (r *Runner) Result() *Result {
	return r.result.Load()
}

// GetLogs returns the buffered log records of the confirmation run.
func (r *Runner) GetLogs() []storage.Record {
	return r.logCollector.GetLogs()
}

// resolveIntent picks the checkout intent id to confirm. An explicitly
// provided id takes precedence over the persisted reference.
func (r *Runner) resolveIntent() (string, bool) {
	if r.intentID != "" {
		return r.intentID, true
	}
	ref, ok := payment.LoadIntentRef(r.store)
	if !ok {
		return "", false
	}
	return ref.CheckoutIntentID, true
}

// poll runs the bounded status loop. The bool reports whether a verdict was
// reached; cancellation before a verdict returns false.
func (r *Runner) poll(ctx context.Context, intentID string) (Result, bool) {
	logger := r.logger.With("intentID", intentID)
	logger.Info("Confirming payment", "maxAttempts", r.maxAttempts, "interval", r.interval)

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				logger.Debug("Confirmation canceled", "attempt", attempt)
				return Result{}, false
			case <-r.clock.After(r.interval):
			}
		}

		status, err := r.source.PaymentStatus(ctx, intentID)
		if err != nil {
			if errors.Is(err, api.ErrIntentNotFound) {
				logger.Warn("Checkout intent no longer exists", "attempt", attempt)
				r.clearRef(intentID)
				return Result{Outcome: OutcomeFailed, IntentID: intentID, Attempts: attempt}, true
			}
			if ctx.Err() != nil {
				logger.Debug("Confirmation canceled", "attempt", attempt)
				return Result{}, false
			}
			// Transient failures burn an attempt but do not end the run.
			logger.Warn("Status request failed", "attempt", attempt, "error", err)
			continue
		}

		switch status.PaymentStatus {
		case api.PaymentCompleted:
			logger.Info("Payment completed", "attempt", attempt)
			r.clearRef(intentID)
			return Result{
				Outcome:     OutcomeCompleted,
				IntentID:    intentID,
				StatusToken: status.StatusToken,
				Attempts:    attempt,
			}, true
		case api.PaymentFailed:
			logger.Warn("Payment failed", "attempt", attempt)
			r.clearRef(intentID)
			return Result{Outcome: OutcomeFailed, IntentID: intentID, Attempts: attempt}, true
		default:
			logger.Debug("Payment still pending", "attempt", attempt)
		}
	}

	// The payment may still settle later, so the intent reference is kept
	// for a future run to reconcile.
	logger.Warn("Poll budget exhausted, payment still pending")
	return Result{Outcome: OutcomeTimeout, IntentID: intentID, Attempts: r.maxAttempts}, true
}

// clearRef removes the persisted intent reference, but only when it still
// points at the intent this run confirmed.
func (r *Runner) clearRef(intentID string) {
	if err := payment.ClearIntentRefIf(r.store, intentID); err != nil {
		r.logger.Error("Failed to clear payment intent reference", "error", err)
	}
}
