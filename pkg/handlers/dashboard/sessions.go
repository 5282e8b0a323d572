package dashboard

import (
	"fmt"
	"sync"

	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	lru "github.com/hashicorp/golang-lru/v2"
)

// StoreFactory builds the report store of a new session.
type StoreFactory func(sessionID string) *report.Store

// EvictFunc is called with a session's store once the cache drops it.
type EvictFunc func(sessionID string, store *report.Store)

type SessionsOption func(s *Sessions)

// OnEvict registers fn to release per-session state held outside the cache.
func OnEvict(fn EvictFunc) SessionsOption {
	return func(s *Sessions) {
		s.onEvict = fn
	}
}

// Sessions keeps one report store per browser session. The least recently
// used sessions are dropped once size is reached.
type Sessions struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *report.Store]
	factory StoreFactory
	onEvict EvictFunc
}

func NewSessions(size int, factory StoreFactory, opts ...SessionsOption) (*Sessions, error) {
	s := &Sessions{factory: factory}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.NewWithEvict[string, *report.Store](size, func(id string, store *report.Store) {
		if s.onEvict != nil {
			s.onEvict(id, store)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

func (s *Sessions) Store(id string) *report.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.cache.Get(id); ok {
		return store
	}
	store := s.factory(id)
	s.cache.Add(id, store)
	return store
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
