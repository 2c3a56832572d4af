package history

import (
	"log/slog"
)

// Synchronizer mirrors wizard step transitions into navigation history and
// replays restored entries back into the wizard. Entries without a wizard
// annotation are handed to the outer navigation owner untouched.
type Synchronizer struct {
	nav    Navigator
	logger *slog.Logger

	// validate maps a restored step to the step the wizard may actually
	// show, given its current state. Restoring an inconsistent step (for
	// example DETAIL with no menu selected) returns the corrected step.
	validate func(step string) string

	// onStep delivers the validated step to the wizard.
	onStep func(step string)

	// outer receives restored entries that carry no wizard annotation.
	outer func(Entry)
}

// NewSynchronizer wires a Synchronizer onto the navigator's pop events.
func NewSynchronizer(nav Navigator, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		nav:      nav,
		logger:   slog.Default().WithGroup("history.Synchronizer"),
		validate: func(step string) string { return step },
	}
	for _, opt := range opts {
		opt(s)
	}
	nav.OnPop(s.handlePop)
	return s
}

// Arm replaces the current history entry with an annotated wizard entry.
// Entering the wizard must not consume a back-step, so this is a replace,
// never a push.
func (s *Synchronizer) Arm(step string) {
	s.nav.Replace(NewWizardEntry(step))
}

// StepForward pushes a history entry for the destination step of a forward
// transition.
func (s *Synchronizer) StepForward(step string) {
	s.nav.Push(NewWizardEntry(step))
}

// Back invokes the navigator's native back mechanism. In-wizard "back"
// gestures route through here rather than rolling state back locally, so
// stack depth and wizard state cannot drift apart.
func (s *Synchronizer) Back() {
	s.nav.Back()
}

func (s *Synchronizer) handlePop(e Entry) {
	if !e.Wizard {
		if s.outer != nil {
			s.outer(e)
			return
		}
		s.logger.Debug("Ignoring restored entry without wizard annotation", "id", e.ID)
		return
	}

	step := s.validate(e.Step)
	if step != e.Step {
		s.logger.Warn("Restored step inconsistent with wizard state, correcting",
			"restored", e.Step, "corrected", step)
		s.nav.Replace(NewWizardEntry(step))
	}

	if s.onStep != nil {
		s.onStep(step)
	}
}
