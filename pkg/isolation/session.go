package isolation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Session is the context API over a Store: the sole public surface for
// manipulating isolation state. It performs no tenant validation: binding
// an unknown tenant id is legal and simply yields empty query results.
// Lifecycle checks belong to the request middleware.
type Session struct {
	store Store
	q     Querier
	log   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger used for the bypass audit trail.
// Nil loggers are ignored.
func WithSessionLogger(log *slog.Logger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithQuerier attaches the pinned connection the store writes through, so
// repositories can retrieve it via QuerierFromContext and run their queries
// on the connection that carries the isolation state.
func WithQuerier(q Querier) SessionOption {
	return func(s *Session) { s.q = q }
}

// NewSession wraps a store with the context API.
func NewSession(store Store, opts ...SessionOption) *Session {
	if store == nil {
		panic("isolation: store cannot be nil")
	}
	s := &Session{store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Querier returns the pinned connection this session is bound to, if any.
// Sessions created for tests over a MemoryStore carry none unless injected.
func (s *Session) Querier() (Querier, bool) {
	return s.q, s.q != nil
}

// SetTenant binds the connection to the given tenant. uuid.Nil clears the
// binding. Idempotent.
func (s *Session) SetTenant(ctx context.Context, id uuid.UUID) error {
	return s.store.SetCurrentTenant(ctx, uuid.NullUUID{UUID: id, Valid: id != uuid.Nil})
}

// CurrentTenant reports the bound tenant. ok is false when none is bound.
func (s *Session) CurrentTenant(ctx context.Context) (id uuid.UUID, ok bool, err error) {
	t, err := s.store.CurrentTenant(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}
	return t.UUID, t.Valid, nil
}

// EnableBypass disables tenant filtering for this connection. It defeats
// all isolation, so every call is logged at warning level; callers are
// expected to gate it behind a platform-administrator check and record an
// audit event.
func (s *Session) EnableBypass(ctx context.Context) error {
	s.log.WarnContext(ctx, "row-level security bypass enabled for connection")
	return s.store.SetBypass(ctx, true)
}

// DisableBypass re-enables tenant filtering.
func (s *Session) DisableBypass(ctx context.Context) error {
	return s.store.SetBypass(ctx, false)
}

// Bypassed reports whether tenant filtering is currently disabled.
func (s *Session) Bypassed(ctx context.Context) (bool, error) {
	return s.store.Bypassed(ctx)
}

// Clear resets the connection to the initial state: no tenant, bypass off.
// Both writes are attempted even if the first fails, and their errors are
// joined, so teardown gets as close to clean as the store allows.
func (s *Session) Clear(ctx context.Context) error {
	terr := s.store.SetCurrentTenant(ctx, uuid.NullUUID{})
	berr := s.store.SetBypass(ctx, false)
	return errors.Join(terr, berr)
}

// WithTenant runs fn with the connection bound to id, then restores the
// (tenant, bypass) pair captured on entry: on normal return, on error and
// on panic. Save/restore rather than push/pop: nested calls compose as long
// as they unwind in reverse entry order, which the deferred restore
// guarantees structurally.
func (s *Session) WithTenant(ctx context.Context, id uuid.UUID, fn func(ctx context.Context) error) (err error) {
	saved, err := s.capture(ctx)
	if err != nil {
		return err
	}
	if err := s.store.SetCurrentTenant(ctx, uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}); err != nil {
		return err
	}
	defer func() {
		if rerr := s.restore(ctx, saved); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(ctx)
}

// WithBypass runs fn with tenant filtering disabled, restoring the bypass
// flag captured on entry on every exit path. The tenant binding is left
// untouched.
func (s *Session) WithBypass(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	prev, err := s.store.Bypassed(ctx)
	if err != nil {
		return err
	}
	if err := s.EnableBypass(ctx); err != nil {
		return err
	}
	defer func() {
		if rerr := s.store.SetBypass(ctx, prev); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(ctx)
}

type sessionState struct {
	tenant uuid.NullUUID
	bypass bool
}

func (s *Session) capture(ctx context.Context) (sessionState, error) {
	tenant, err := s.store.CurrentTenant(ctx)
	if err != nil {
		return sessionState{}, err
	}
	bypass, err := s.store.Bypassed(ctx)
	if err != nil {
		return sessionState{}, err
	}
	return sessionState{tenant: tenant, bypass: bypass}, nil
}

// restore re-applies a captured state, tenant first, then bypass. Both
// writes are attempted regardless of individual failures.
func (s *Session) restore(ctx context.Context, st sessionState) error {
	terr := s.store.SetCurrentTenant(ctx, st.tenant)
	berr := s.store.SetBypass(ctx, st.bypass)
	return errors.Join(terr, berr)
}
