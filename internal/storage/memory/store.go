package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/devHenao/ventasPro/internal/storage"
)

// Store is an in-process storage.Store with an optional byte quota counted
// over keys and values, like browser local storage.
type Store struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int64
	used  int64
}

// New creates a store. A quota of zero disables the limit.
func New(quota int64) *Store {
	return &Store{data: make(map[string]string), quota: quota}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key, failing with storage.ErrQuotaExceeded when the
// write would grow the store past its quota.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + entrySize(key, value)
	if old, ok := s.data[key]; ok {
		used -= entrySize(key, old)
	}
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("set %q (%d of %d bytes): %w", key, used, s.quota, storage.ErrQuotaExceeded)
	}

	s.data[key] = value
	s.used = used
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[key]; ok {
		s.used -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Used returns the number of bytes currently stored.
func (s *Store) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
