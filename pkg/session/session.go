package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is server-side session state addressed by an opaque token. Data
// carries small request-scoped values, such as the caller's active tenant
// selection; anything bigger belongs in real storage.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"token"`
	UserID    uuid.NullUUID  `json:"user_id"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewSession builds a session that expires ttl from now. An invalid userID
// makes the session anonymous.
func NewSession(token string, userID uuid.NullUUID, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Data:      map[string]any{},
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsAuthenticated reports whether a signed-in user owns the session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID.Valid
}

// IsExpired reports whether the session's lifetime has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (s *Session) GetString(key string) (string, bool) {
	if v, ok := s.Get(key); ok {
		str, isString := v.(string)
		return str, isString
	}
	return "", false
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = map[string]any{}
	}
	s.Data[key] = value
}

// Delete drops the value stored under key.
func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	delete(s.Data, key)
}

// clone returns a deep copy, so stores can hand out sessions without
// exposing their own state to caller mutation.
func (s *Session) clone() *Session {
	dup := *s
	if s.Data != nil {
		dup.Data = maps.Clone(s.Data)
	}
	return &dup
}
