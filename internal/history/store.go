// Package history keeps the bounded, deduplicated list of past search
// terms. One store is created at startup and shared by every search bar in
// the process; it is not persisted.
package history

import (
	"sync"
	"unicode/utf8"
)

const (
	// MinItemLen is the rune count an item must exceed to be recorded.
	// Completion consumers should not match prefixes of MinItemLen or less.
	MinItemLen = 3

	// Length is the maximum number of items retained
	Length = 10
)

// EnabledFunc reports whether history recording is currently enabled. It is
// consulted on every operation so a preference change takes effect
// immediately.
type EnabledFunc func() bool

// Store is the shared search history, most recent first
type Store struct {
	mu      sync.RWMutex
	enabled EnabledFunc
	items   []string
}

// NewStore creates a history store gated by the given preference.
// A nil preference means always enabled.
func NewStore(enabled EnabledFunc) *Store {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Store{enabled: enabled}
}

// Enabled reports whether history recording is enabled
func (s *Store) Enabled() bool {
	return s.enabled()
}

// Insert records a search term at the most-recent position and reports
// whether it was recorded. Terms at or below the minimum length are
// ignored. A term already present is moved to the front; otherwise the tail
// is truncated so the store never exceeds its capacity.
func (s *Store) Insert(text string) bool {
	if !s.enabled() || utf8.RuneCountInString(text) <= MinItemLen {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.remove(text) {
		s.clamp(Length - 1)
	}
	s.items = append([]string{text}, s.items...)
	return true
}

// Items returns a copy of the history, most recent first
func (s *Store) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]string, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of recorded items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) remove(text string) bool {
	for i, item := range s.items {
		if item == text {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) clamp(max int) {
	if len(s.items) > max {
		s.items = s.items[:max]
	}
}
