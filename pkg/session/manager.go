package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager issues, resolves and revokes sessions. A Store keeps session
// state server-side; a Transport moves the opaque token between server
// and client.
type Manager struct {
	store     Store
	transport Transport
	cfg       Config
}

// New assembles a manager. Unless options say otherwise, sessions live in
// memory and tokens travel in a cookie.
func New(opts ...Option) *Manager {
	m := &Manager{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.cfg.CleanupInterval)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.cfg.CookieName, m.cfg.SecureCookies)
	}

	return m
}

// Ensure returns the request's session, minting an anonymous one when the
// request carries no usable token.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if sess, err := m.Get(ctx, r); err == nil {
		return sess, nil
	}
	return m.issue(ctx, w, uuid.NullUUID{})
}

// Get resolves the request's token to a live session.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, token)
	switch {
	case err != nil:
		return nil, err
	case sess.IsExpired():
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Authenticate binds the request's session to userID. The token is rotated
// so a pre-login token can never address the authenticated session, and the
// lifetime restarts from now. Session data survives the upgrade.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	id := uuid.NullUUID{UUID: userID, Valid: true}

	sess, err := m.Get(ctx, r)
	if err != nil {
		_, err = m.issue(ctx, w, id)
		return err
	}

	rotated, err := mintToken()
	if err != nil {
		return err
	}

	_ = m.store.Delete(ctx, sess.Token)

	sess.Token = rotated
	sess.UserID = id
	sess.ExpiresAt = time.Now().Add(m.cfg.TTL)
	if err := m.store.Create(ctx, sess); err != nil {
		return err
	}

	return m.transport.SetToken(w, rotated, m.cfg.TTL)
}

// Destroy removes the session and tells the client to drop its token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// SetValue stores a value in the request's session, minting one if needed.
func (m *Manager) SetValue(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	sess, err := m.Ensure(ctx, w, r)
	if err != nil {
		return err
	}

	sess.Set(key, value)
	return m.store.Update(ctx, sess)
}

// GetValue reads a value from the request's session.
func (m *Manager) GetValue(ctx context.Context, r *http.Request, key string) (any, bool) {
	sess, err := m.Get(ctx, r)
	if err != nil {
		return nil, false
	}
	return sess.Get(key)
}

// DeleteValue drops a value from the request's session, if one exists.
func (m *Manager) DeleteValue(ctx context.Context, r *http.Request, key string) error {
	sess, err := m.Get(ctx, r)
	if err != nil {
		return err
	}

	sess.Delete(key)
	return m.store.Update(ctx, sess)
}

// issue mints a session, persists it and hands the token to the client. The
// stored entry is removed again when the transport write fails, so the
// store never accumulates unreachable sessions.
func (m *Manager) issue(ctx context.Context, w http.ResponseWriter, userID uuid.NullUUID) (*Session, error) {
	token, err := mintToken()
	if err != nil {
		return nil, err
	}

	sess := NewSession(token, userID, m.cfg.TTL)
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, token, m.cfg.TTL); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}

	return sess, nil
}

// mintToken returns a 256-bit random token in URL-safe form.
func mintToken() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
