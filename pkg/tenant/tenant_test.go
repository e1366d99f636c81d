package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelierhq/atelier/pkg/tenant"
)

func TestStatus_Usable(t *testing.T) {
	t.Parallel()

	assert.True(t, tenant.StatusProvisioning.Usable())
	assert.True(t, tenant.StatusActive.Usable())
	assert.False(t, tenant.StatusSuspended.Usable())
	assert.False(t, tenant.StatusPendingDeletion.Usable())
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []tenant.Status{
		tenant.StatusProvisioning,
		tenant.StatusActive,
		tenant.StatusSuspended,
		tenant.StatusPendingDeletion,
	} {
		assert.True(t, s.Valid(), "status %q", s)
	}

	assert.False(t, tenant.Status("").Valid())
	assert.False(t, tenant.Status("deleted").Valid())
}
