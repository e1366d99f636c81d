package isolation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/isolation"
)

func TestNewPoolBinder(t *testing.T) {
	t.Parallel()

	t.Run("panics on nil pool", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { isolation.NewPoolBinder(nil) })
	})
}

func TestBinderFunc(t *testing.T) {
	t.Parallel()

	t.Run("adapts a function", func(t *testing.T) {
		t.Parallel()

		sess := isolation.NewSession(isolation.NewMemoryStore())
		released := false
		binder := isolation.BinderFunc(func(ctx context.Context) (*isolation.Session, isolation.ReleaseFunc, error) {
			return sess, func() { released = true }, nil
		})

		got, release, err := binder.Bind(context.Background())
		require.NoError(t, err)
		assert.Same(t, sess, got)

		release()
		assert.True(t, released)
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("pool exhausted")
		binder := isolation.BinderFunc(func(ctx context.Context) (*isolation.Session, isolation.ReleaseFunc, error) {
			return nil, nil, cause
		})

		_, _, err := binder.Bind(context.Background())
		assert.ErrorIs(t, err, cause)
	})
}
