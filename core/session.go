package core

import (
	"sort"
	"sync"

	"github.com/fredline/fredline/core/series"
)

// Session is the in-memory series cache held for the lifetime of a command.
// Series are keyed by series ID, kept in ID order, and replaced wholesale on
// re-fetch: a fetch for an existing key swaps in the new instance rather than
// mutating the old one.
type Session struct {
	mu   sync.RWMutex
	byID map[string]*series.Series
	ids  []string
}

// NewSession creates an empty session cache.
func NewSession() *Session {
	return &Session{byID: make(map[string]*series.Series)}
}

// Put inserts or replaces a series under its ID.
func (s *Session) Put(sr *series.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[sr.ID()]; !exists {
		s.ids = append(s.ids, sr.ID())
		sort.Strings(s.ids)
	}
	s.byID[sr.ID()] = sr
}

// Get returns the series under id, or nil when the session has none.
func (s *Session) Get(id string) *series.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// All returns the cached series ordered by series ID.
func (s *Session) All() []*series.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*series.Series, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of cached series.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
