package isolation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultReleaseTimeout bounds the connection reset performed at release
// time, which runs on a context detached from the (possibly cancelled)
// request context.
const defaultReleaseTimeout = 5 * time.Second

// ReleaseFunc returns a bound connection to the pool after resetting its
// isolation state. It is safe to call multiple times; only the first call
// has effect. Every successful Bind must be paired with a ReleaseFunc call
// or the connection leaks for the life of the process.
type ReleaseFunc func()

// Binder pins a database connection for the duration of a request and
// exposes it as an isolation session. Session state in PostgreSQL is
// per-connection, so everything between Bind and release must run on the
// one connection the binder pinned.
type Binder interface {
	Bind(ctx context.Context) (*Session, ReleaseFunc, error)
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc func(ctx context.Context) (*Session, ReleaseFunc, error)

// Bind implements the Binder interface.
func (f BinderFunc) Bind(ctx context.Context) (*Session, ReleaseFunc, error) {
	return f(ctx)
}

// PoolBinder binds sessions to connections acquired from a pgx pool.
type PoolBinder struct {
	pool           *pgxpool.Pool
	log            *slog.Logger
	releaseTimeout time.Duration
}

// BinderOption configures a PoolBinder.
type BinderOption func(*PoolBinder)

// WithBinderLogger sets the logger for release failures and the bypass
// audit trail of sessions the binder creates. Nil loggers are ignored.
func WithBinderLogger(log *slog.Logger) BinderOption {
	return func(b *PoolBinder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithReleaseTimeout overrides the deadline for the state reset performed
// when a connection is returned to the pool.
func WithReleaseTimeout(d time.Duration) BinderOption {
	return func(b *PoolBinder) {
		if d > 0 {
			b.releaseTimeout = d
		}
	}
}

// NewPoolBinder creates a binder over the given pool.
func NewPoolBinder(pool *pgxpool.Pool, opts ...BinderOption) *PoolBinder {
	if pool == nil {
		panic("isolation: pool cannot be nil")
	}
	b := &PoolBinder{
		pool:           pool,
		log:            slog.Default(),
		releaseTimeout: defaultReleaseTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind acquires a connection, clears any isolation state a previous holder
// may have left on it, and wraps it in a session. The returned ReleaseFunc
// resets the state again and hands the connection back to the pool; if the
// reset fails the connection is destroyed instead of being reused, so a
// tenant binding can never leak across requests.
func (b *PoolBinder) Bind(ctx context.Context) (*Session, ReleaseFunc, error) {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, errors.Join(ErrStoreUnavailable, err)
	}

	sess := NewSession(NewPgStore(conn), WithSessionLogger(b.log), WithQuerier(conn))

	// Pooled connections retain session state across checkouts. Clearing on
	// acquire keeps a crashed or misbehaving previous holder from handing
	// this request someone else's tenant.
	if err := sess.Clear(ctx); err != nil {
		_ = conn.Hijack().Close(context.WithoutCancel(ctx))
		return nil, nil, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			// Detached from the request context: cancellation must not be
			// able to skip the reset, or the pool would recycle a
			// connection that still carries tenant state.
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.releaseTimeout)
			defer cancel()

			if err := sess.Clear(rctx); err != nil {
				b.log.ErrorContext(rctx, "failed to reset isolation state, discarding connection",
					slog.Any("error", err))
				_ = conn.Hijack().Close(rctx)
				return
			}
			conn.Release()
		})
	}

	return sess, release, nil
}
