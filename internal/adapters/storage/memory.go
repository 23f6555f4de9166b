package storage

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

var _ domain.KVStore = (*InMemoryStore)(nil)

// InMemoryStore keeps values for the lifetime of the process. Used for tests
// and for running the widget without any persistence backend.
type InMemoryStore struct {
	data map[string]string

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]string),
	}
}

func (s *InMemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
