// Package history keeps browser-style navigation history in step with the
// order wizard. The wizard's transition function stays pure; this package is
// the thin adapter that mirrors transitions into history entries and replays
// them on back/forward events.
package history

import (
	"sync"

	"github.com/gofrs/uuid/v5"
)

// Entry is one navigation history entry. Entries created by the wizard carry
// a step annotation; entries owned by the outer application do not.
type Entry struct {
	ID     uuid.UUID
	Wizard bool
	Step   string
}

// NewWizardEntry creates an entry annotated with a wizard step.
func NewWizardEntry(step string) Entry {
	return Entry{
		ID:     uuid.Must(uuid.NewV6()),
		Wizard: true,
		Step:   step,
	}
}

// Navigator is the navigation surface the Synchronizer drives. The in-process
// Stack below implements it; a web target would adapt the browser history API
// to the same shape.
type Navigator interface {
	// Replace swaps the current entry without growing the stack.
	Replace(e Entry)

	// Push appends a new entry and moves onto it, discarding any
	// forward entries.
	Push(e Entry)

	// Back moves one entry backward, delivering the restored entry to the
	// pop listener. No-op at the bottom of the stack.
	Back()

	// Forward moves one entry forward, delivering the restored entry to
	// the pop listener. No-op at the top of the stack.
	Forward()

	// Current returns the entry under the cursor.
	Current() Entry

	// OnPop registers the listener invoked with the restored entry after
	// every Back or Forward movement.
	OnPop(fn func(Entry))
}

// Stack is an in-process Navigator. Back and Forward emit the restored entry
// to the registered pop listener, mirroring popstate; Replace and Push do not
// emit, mirroring replaceState/pushState.
type Stack struct {
	mu       sync.Mutex
	entries  []Entry
	cursor   int
	listener func(Entry)
}

var _ Navigator = (*Stack)(nil)

// NewStack creates a stack holding one unannotated root entry, the screen
// the wizard was entered from.
func NewStack() *Stack {
	return &Stack{
		entries: []Entry{{ID: uuid.Must(uuid.NewV6())}},
	}
}

// OnPop registers the listener invoked with the restored entry after every
// Back or Forward movement. Only one listener is held; registering replaces
// the previous one.
func (s *Stack) OnPop(fn func(Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

func (s *Stack) Replace(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.cursor] = e
}

func (s *Stack) Push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.cursor+1], e)
	s.cursor++
}

func (s *Stack) Back() {
	s.mu.Lock()
	if s.cursor == 0 {
		s.mu.Unlock()
		return
	}
	s.cursor--
	restored := s.entries[s.cursor]
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(restored)
	}
}

func (s *Stack) Forward() {
	s.mu.Lock()
	if s.cursor >= len(s.entries)-1 {
		s.mu.Unlock()
		return
	}
	s.cursor++
	restored := s.entries[s.cursor]
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(restored)
	}
}

func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor]
}

// Depth returns the number of entries on the stack.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
