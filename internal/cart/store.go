package cart

import (
	"context"
	"sync"
)

// Store persists carts by session id. Get on an unknown key returns an
// empty cart, never an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Put(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is a mutex-guarded in-process Store, used in tests and
// single-node deployments.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return &Cart{}, nil
	}
	cp := Cart{Entries: append([]Entry(nil), c.Entries...)}
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = &Cart{Entries: append([]Entry(nil), c.Entries...)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
