// Package fake provides in-memory implementations of repository interfaces.
package fake

import (
	"context"
	"sync"

	"github.com/roguepikachu/namesmith/internal/repository"
)

// QuotaStore is an in-memory repository.QuotaStore. It also backs the
// single-process deployment, so it is safe for concurrent use.
type QuotaStore struct {
	mu      sync.Mutex
	byKey   map[string][]int64
	loadErr error
	saveErr error
	saves   int
}

// Option configures the fake store.
type Option func(*QuotaStore)

// WithTimestamps seeds key with the given log.
func WithTimestamps(key string, ts ...int64) Option {
	return func(s *QuotaStore) { s.byKey[key] = append([]int64(nil), ts...) }
}

// WithLoadError makes every Load fail with err.
func WithLoadError(err error) Option { return func(s *QuotaStore) { s.loadErr = err } }

// WithSaveError makes every Save fail with err.
func WithSaveError(err error) Option { return func(s *QuotaStore) { s.saveErr = err } }

// NewQuotaStore creates an empty in-memory store.
func NewQuotaStore(opts ...Option) *QuotaStore {
	s := &QuotaStore{byKey: make(map[string][]int64)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuotaStore) Load(_ context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]int64(nil), s.byKey[key]...), nil
}

func (s *QuotaStore) Save(_ context.Context, key string, ts []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(key, ts)
}

// Update applies fn under the store lock.
func (s *QuotaStore) Update(_ context.Context, key string, fn func([]int64) []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	next := fn(append([]int64(nil), s.byKey[key]...))
	return s.saveLocked(key, next)
}

func (s *QuotaStore) saveLocked(key string, ts []int64) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.byKey[key] = append([]int64(nil), ts...)
	return nil
}

// Saves returns how many successful writes the store has seen.
func (s *QuotaStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var (
	_ repository.QuotaStore   = (*QuotaStore)(nil)
	_ repository.QuotaUpdater = (*QuotaStore)(nil)
)
