package isolation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PostgreSQL session settings carrying the isolation state. The RLS helper
// functions app_current_tenant() and app_rls_bypassed() created by the
// migrations read the same keys.
const (
	SettingCurrentTenant = "app.current_tenant"
	SettingBypassRLS     = "app.bypass_rls"
)

// PgStore keeps isolation state in PostgreSQL session settings on a single
// pinned connection. set_config is called with is_local=false so values
// survive across transactions for the lifetime of the connection, matching
// the one-request-one-connection discipline enforced by PoolBinder.
type PgStore struct {
	q Querier
}

// NewPgStore wraps a pinned connection. The Querier must not be a pool:
// session settings written through one pooled connection are invisible on
// every other.
func NewPgStore(q Querier) *PgStore {
	if q == nil {
		panic("isolation: querier cannot be nil")
	}
	return &PgStore{q: q}
}

func (s *PgStore) SetCurrentTenant(ctx context.Context, id uuid.NullUUID) error {
	value := ""
	if id.Valid {
		value = id.UUID.String()
	}
	if _, err := s.q.Exec(ctx, "SELECT set_config($1, $2, false)", SettingCurrentTenant, value); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PgStore) CurrentTenant(ctx context.Context) (uuid.NullUUID, error) {
	// The missing_ok form returns NULL when the setting was never written
	// on this connection; clearing writes an empty string. Both mean unset.
	var raw *string
	row := s.q.QueryRow(ctx, "SELECT current_setting($1, true)", SettingCurrentTenant)
	if err := row.Scan(&raw); err != nil {
		return uuid.NullUUID{}, errors.Join(ErrStoreUnavailable, err)
	}
	if raw == nil || *raw == "" {
		return uuid.NullUUID{}, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		// Only this package writes the setting, so a non-UUID value means
		// the connection state cannot be trusted.
		return uuid.NullUUID{}, errors.Join(ErrStoreUnavailable, fmt.Errorf("malformed %s value %q: %w", SettingCurrentTenant, *raw, err))
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func (s *PgStore) SetBypass(ctx context.Context, on bool) error {
	value := "off"
	if on {
		value = "on"
	}
	if _, err := s.q.Exec(ctx, "SELECT set_config($1, $2, false)", SettingBypassRLS, value); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PgStore) Bypassed(ctx context.Context) (bool, error) {
	var raw *string
	row := s.q.QueryRow(ctx, "SELECT current_setting($1, true)", SettingBypassRLS)
	if err := row.Scan(&raw); err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return raw != nil && *raw == "on", nil
}
