package core

import "sync"

// OriginSet accumulates the distinct Origin header values observed on
// cross-origin requests made from outside a sandboxed context. It grows
// monotonically for the lifetime of the process and is never pruned.
//
// Insertion order is preserved so the CSP header stays stable across
// requests that add no new origin.
type OriginSet struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ordered []string
}

func NewOriginSet() *OriginSet {
	return &OriginSet{
		seen: make(map[string]struct{}),
	}
}

// Add records origin if it has not been seen before.
func (s *OriginSet) Add(origin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[origin]; ok {
		return
	}
	s.seen[origin] = struct{}{}
	s.ordered = append(s.ordered, origin)
}

// Has reports whether origin was observed before.
func (s *OriginSet) Has(origin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[origin]
	return ok
}

// Snapshot returns the observed origins in insertion order.
func (s *OriginSet) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of distinct origins observed.
func (s *OriginSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ordered)
}
