package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Good for tests and
// single-instance deployments; use RedisStore when sessions must survive
// restarts or be shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Session
	janitor *time.Ticker
	stop    chan struct{}
}

// NewMemoryStore builds an in-memory store. A positive sweepEvery starts a
// janitor goroutine that evicts expired sessions; stop it with Close.
func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*Session),
		stop:    make(chan struct{}),
	}

	if sweepEvery > 0 {
		s.janitor = time.NewTicker(sweepEvery)
		go s.sweep()
	}

	return s
}

// Create stores a new session under its token.
func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sess.Token] = sess.clone()
	return nil
}

// Get returns a copy of the session stored under token. Expired entries are
// evicted on read.
func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, ErrSessionNotFound
	case entry.IsExpired():
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return entry.clone(), nil
}

// Update replaces an existing session. Unknown tokens are rejected rather
// than upserted.
func (s *MemoryStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[sess.Token]; !ok {
		return ErrSessionNotFound
	}
	s.entries[sess.Token] = sess.clone()
	return nil
}

// Delete drops the session stored under token.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// DeleteExpired evicts every expired session.
func (s *MemoryStore) DeleteExpired(ctx context.Context) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, token)
		}
	}
	return nil
}

// Close stops the janitor goroutine, if one is running.
func (s *MemoryStore) Close() error {
	if s.janitor != nil {
		s.janitor.Stop()
		close(s.stop)
	}
	return nil
}

func (s *MemoryStore) sweep() {
	for {
		select {
		case <-s.janitor.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.stop:
			return
		}
	}
}
