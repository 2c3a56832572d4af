// Package kioskstore provides the durable client-side key/value store that
// order wizard state is persisted into between kiosk sessions.
//
// Reads are corruption-safe: a stored value that no longer parses is
// discarded (the key is deleted) and the caller's default is returned, so a
// single bad value can never wedge the wizard permanently.
package kioskstore

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Namespace prefixes every key written by this client so unrelated tenants
// of the same backend survive a Clear.
const Namespace = "orderflow."

// Keys for the persisted wizard state. All of them are cleared together on
// successful payment or explicit reset.
const (
	KeySnapshot   = Namespace + "wizard.snapshot"
	KeyPaymentRef = Namespace + "payment.intent"
)

// Store layers namespacing and tolerant decoding over a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a Store over the given backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default().WithGroup("kioskstore.Store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadString returns the stored string for key, or def when absent.
func (s *Store) ReadString(key, def string) string {
	v, ok := s.backend.Get(key)
	if !ok {
		return def
	}
	return v
}

// WriteString stores a raw string under key.
func (s *Store) WriteString(key, value string) error {
	return s.backend.Set(key, value)
}

// WriteJSON stores v as JSON under key.
func (s *Store) WriteJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.Set(key, string(data))
}

// Delete removes a single key.
func (s *Store) Delete(key string) error {
	return s.backend.Delete(key)
}

// Clear removes every key in this client's namespace.
func (s *Store) Clear() error {
	for _, key := range s.backend.Keys() {
		if !strings.HasPrefix(key, Namespace) {
			continue
		}
		if err := s.backend.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// ReadJSON decodes the JSON value stored under key into a fresh T. A missing
// key returns def. A malformed value returns def and deletes the key, so the
// next read starts clean.
func ReadJSON[T any](s *Store, key string, def T) T {
	raw, ok := s.backend.Get(key)
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn("Discarding corrupted stored value", "key", key, "error", err)
		if delErr := s.backend.Delete(key); delErr != nil {
			s.logger.Error("Failed to delete corrupted key", "key", key, "error", delErr)
		}
		return def
	}
	return v
}
