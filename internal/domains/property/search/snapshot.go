package search

import (
	"sync"

	"nyumbani/internal/domains/property/model"
)

// Snapshot guards concurrent result refreshes with latest-wins semantics.
// Each refresh takes a monotonically increasing token before loading; a
// publish carrying a token older than the newest issued one is discarded,
// so a slow stale load can never overwrite a fresher result set.
type Snapshot struct {
	mu        sync.Mutex
	nextToken uint64
	published uint64
	results   []model.Property
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Begin issues a token for a refresh that is about to start.
func (s *Snapshot) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextToken++

	return s.nextToken
}

// Publish installs the results for the given token. It reports false when a
// newer refresh has already begun, in which case the results are dropped.
func (s *Snapshot) Publish(token uint64, results []model.Property) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.nextToken {
		return false
	}

	s.published = token
	s.results = results

	return true
}

// Results returns the most recently published result set.
func (s *Snapshot) Results() []model.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.results
}

// Token returns the token of the currently published result set.
func (s *Snapshot) Token() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.published
}
