package anonymize

import (
	"fmt"
	"strings"
	"sync"
)

// Session owns the bijection between original entity values and placeholder
// tokens for a single analysis run. Exactly one session exists per run; it is
// held only in memory and must be cleared before the process handles another
// case or exits.
//
// The same literal value always maps to the same token within a session, and
// two distinct literals of the same type never share a token.
type Session struct {
	mu       sync.Mutex
	counters map[string]int    // entity type -> next index
	tokens   map[string]string // literal -> placeholder token
	types    map[string]string // placeholder token -> entity type
	cleared  bool
}

// NewSession creates an empty anonymization session.
func NewSession() *Session {
	return &Session{
		counters: make(map[string]int),
		tokens:   make(map[string]string),
		types:    make(map[string]string),
	}
}

// TokenFor returns the stable placeholder for a literal value, allocating a
// new per-type index on first sight: "<PERSON_1>", "<PERSON_2>", "<AMOUNT_1>".
func (s *Session) TokenFor(entityType, literal string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cleared {
		return ""
	}
	if token, ok := s.tokens[literal]; ok {
		return token
	}

	s.counters[entityType]++
	token := fmt.Sprintf("<%s_%d>", strings.ToUpper(entityType), s.counters[entityType])
	s.tokens[literal] = token
	s.types[token] = entityType
	return token
}

// Literals returns a copy of all original values currently mapped. Callers
// inside this package use it for leak verification; it is never exported in
// any result object.
func (s *Session) Literals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.tokens))
	for literal := range s.tokens {
		out = append(out, literal)
	}
	return out
}

// Count returns the number of distinct literals mapped so far.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// CountsByType returns aggregate placeholder counts per entity type. This is
// the only mapping-derived data that may appear in exported results.
func (s *Session) CountsByType() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.counters))
	for entityType, n := range s.counters {
		out[entityType] = n
	}
	return out
}

// Clear zeroes all maps synchronously. The session is unusable afterwards;
// TokenFor returns the empty string so accidental reuse is visible in output
// rather than leaking fresh mappings.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.tokens {
		s.tokens[k] = ""
		delete(s.tokens, k)
	}
	for k := range s.types {
		delete(s.types, k)
	}
	for k := range s.counters {
		delete(s.counters, k)
	}
	s.cleared = true
}

// Cleared reports whether the session has been zeroed.
func (s *Session) Cleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}
