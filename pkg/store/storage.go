package store

import (
	"context"
	"sync"
)

// Storage is the single named slot holding the JSON-serialized DomainState.
// It is read once at startup and overwritten on every committed mutation.
type Storage interface {
	// Load returns the stored payload, or ok=false when the slot is empty.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	// Save overwrites the slot.
	Save(ctx context.Context, data []byte) error
	// Clear empties the slot.
	Clear(ctx context.Context) error
}

// MemoryStorage is an in-memory Storage used by tests and as the default
// when no durable slot is configured.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
	ok   bool
}

// NewMemoryStorage constructs an empty in-memory slot.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load implements Storage.
func (s *MemoryStorage) Load(context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

// Save implements Storage.
func (s *MemoryStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.ok = true
	return nil
}

// Clear implements Storage.
func (s *MemoryStorage) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.ok = false
	return nil
}
