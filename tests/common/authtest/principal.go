//go:build unit || e2e

package authtest

import (
	"testing"

	"room-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewPrincipal returns a principal with a fresh id and the capabilities of role.
func NewPrincipal(t *testing.T, role user.Role) user.Principal {
	t.Helper()
	p, err := user.NewPrincipal(uuid.New(), role)
	require.NoError(t, err)
	return p
}
