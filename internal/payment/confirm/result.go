package confirm

// Outcome classifies how a confirmation run ended.
type Outcome string

const (
	// OutcomeCompleted means the backend reported the payment as completed.
	OutcomeCompleted Outcome = "completed"

	// OutcomeFailed means the backend reported the payment as failed, or the
	// checkout intent no longer exists server-side.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimeout means the poll budget ran out with the payment still
	// pending. The payment may yet settle; the intent reference is kept so a
	// later run can pick it up.
	OutcomeTimeout Outcome = "timeout"

	// OutcomeNoPending means there was no intent to confirm: none was given
	// and none was found in storage.
	OutcomeNoPending Outcome = "no_pending"
)

// Result is the terminal verdict of a confirmation run.
type Result struct {
	Outcome  Outcome
	IntentID string

	// StatusToken is the server-issued proof of completion. Only set when
	// Outcome is OutcomeCompleted.
	StatusToken string

	// Attempts is the number of status requests made.
	Attempts int
}
