// Package session provides the best-effort key-value storage used to remember
// view state (such as the selected date range) between navigations.
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("session key not found")

// Backend is a fallible key-value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Storage wraps a Backend so that no storage failure ever reaches the caller.
// Failures are logged and reads degrade to "not found".
type Storage struct {
	backend   Backend
	namespace string
}

func NewStorage(backend Backend) *Storage {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Storage{backend: backend}
}

// WithNamespace returns a Storage whose keys are isolated under ns, e.g. one
// namespace per browser session.
func (s *Storage) WithNamespace(ns string) *Storage {
	return &Storage{backend: s.backend, namespace: s.key(ns)}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.backend.Get(ctx, s.key(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("session storage not available")
		}
		return "", false
	}
	return value, true
}

func (s *Storage) Set(ctx context.Context, key, value string) {
	if err := s.backend.Set(ctx, s.key(key), value); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to set session storage")
	}
}

func (s *Storage) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil && !errors.Is(err, ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to remove from session storage")
	}
}

func (s *Storage) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
