package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis, for deployments where sessions must
// be shared across instances. Entries carry a Redis TTL matching the
// session expiry, so DeleteExpired is a no-op.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisOption is a functional option for RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the key prefix (default: "session:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.keyPrefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}

	s := &RedisStore{
		client:    client,
		keyPrefix: "session:",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create stores a new session.
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := s.client.Set(ctx, s.key(session.Token), payload, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Get retrieves a session by token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if session.IsExpired() {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Update updates an existing session. Missing entries are not created, so
// an expired-and-evicted session cannot be resurrected by a late write.
func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	set, err := s.client.SetXX(ctx, s.key(session.Token), payload, ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if !set {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts entries via their TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func (s *RedisStore) key(token string) string {
	return s.keyPrefix + token
}
