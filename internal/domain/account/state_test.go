package account

import (
	"strings"
	"testing"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateBuyer, StateOf(&entity.User{Role: entity.RoleBuyer}))
	assert.Equal(t, StatePendingSellerApproval, StateOf(&entity.User{Role: entity.RoleBuyer, HasSellerRequest: true}))
	assert.Equal(t, StateSeller, StateOf(&entity.User{Role: entity.RoleSeller}))
	assert.Equal(t, StateAdmin, StateOf(&entity.User{Role: entity.RoleAdmin, HasSellerRequest: true}))
}

func TestSellerWorkflow(t *testing.T) {
	u := &entity.User{Role: entity.RoleBuyer}

	// Caso 1: comprador solicita
	require.NoError(t, Submit(u))
	assert.Equal(t, StatePendingSellerApproval, StateOf(u))

	// Caso 2: segunda solicitud mientras está pendiente
	require.ErrorIs(t, Submit(u), domain.ErrInvalidState)

	// Caso 3: aprobación
	require.NoError(t, Approve(u))
	assert.Equal(t, entity.RoleSeller, u.Role)
	assert.False(t, u.HasSellerRequest)

	// Caso 4: un vendedor no puede volver a solicitar ni ser aprobado
	require.ErrorIs(t, Submit(u), domain.ErrInvalidState)
	require.ErrorIs(t, Approve(u), domain.ErrInvalidState)
}

func TestReject(t *testing.T) {
	u := &entity.User{Role: entity.RoleBuyer}
	require.ErrorIs(t, Reject(u), domain.ErrInvalidState)

	require.NoError(t, Submit(u))
	require.NoError(t, Reject(u))
	assert.Equal(t, StateBuyer, StateOf(u))
	assert.Equal(t, entity.RoleBuyer, u.Role)
}

func TestAdminCannotSubmit(t *testing.T) {
	require.ErrorIs(t, Submit(&entity.User{Role: entity.RoleAdmin}), domain.ErrInvalidState)
}

func TestNormalizeSellerMessage(t *testing.T) {
	msg, err := NormalizeSellerMessage("  vendo artesanías  ")
	require.NoError(t, err)
	assert.Equal(t, "vendo artesanías", msg)

	_, err = NormalizeSellerMessage("   ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = NormalizeSellerMessage(strings.Repeat("a", MaxSellerMessageLength+1))
	require.ErrorIs(t, err, domain.ErrValidation)
}
