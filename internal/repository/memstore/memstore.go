// Package memstore keeps the list of uploaded images in process memory
package memstore

import (
	"context"
	"sync"
)

// Store - потокобезопасный список имен в порядке добавления. После рестарта пустой.
type Store struct {
	mu    sync.RWMutex
	names []string
}

func New() *Store {
	return &Store{names: make([]string, 0)}
}

// Seed - предзаполнение списка при старте (например из содержимого каталога)
func (s *Store) Seed(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, names...)
}

func (s *Store) Append(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	return nil
}

// Snapshot returns a copy; callers may keep it while uploads continue.
func (s *Store) Snapshot(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]string, len(s.names))
	copy(res, s.names)
	return res, nil
}
