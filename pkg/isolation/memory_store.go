package isolation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and by code paths that
// need the context API without a database connection. It honors the same
// contract as PgStore, including error wrapping, and supports failure
// injection for exercising teardown paths.
type MemoryStore struct {
	mu      sync.Mutex
	tenant  uuid.NullUUID
	bypass  bool
	failErr error
}

// NewMemoryStore returns a store in the initial state: no tenant, bypass off.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FailWith makes every subsequent operation fail with err wrapped in
// ErrStoreUnavailable. Passing nil restores normal operation.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *MemoryStore) SetCurrentTenant(ctx context.Context, id uuid.NullUUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return errors.Join(ErrStoreUnavailable, s.failErr)
	}
	s.tenant = id
	return nil
}

func (s *MemoryStore) CurrentTenant(ctx context.Context) (uuid.NullUUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return uuid.NullUUID{}, errors.Join(ErrStoreUnavailable, s.failErr)
	}
	return s.tenant, nil
}

func (s *MemoryStore) SetBypass(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return errors.Join(ErrStoreUnavailable, s.failErr)
	}
	s.bypass = on
	return nil
}

func (s *MemoryStore) Bypassed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return false, errors.Join(ErrStoreUnavailable, s.failErr)
	}
	return s.bypass, nil
}
