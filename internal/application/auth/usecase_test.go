package auth

import (
	"context"
	"testing"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/infrastructure/memory"
	"github.com/mrvekratl/BE124/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth() (*AuthUseCase, *memory.UserRepo) {
	users := memory.NewUserRepository(memory.New())
	return NewAuthUseCase(users, JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"}), users
}

func register(t *testing.T, uc *AuthUseCase, email, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: "Ana", LastName: "Gómez", Email: email, Password: "supersecreto", Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestRegister_DefaultBuyer(t *testing.T) {
	uc, _ := newAuth()
	u := register(t, uc, "Ana@Example.com", "")

	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "buyer", u.Role)
	assert.Equal(t, "buyer", u.AccountState)
	assert.True(t, u.Enabled)
}

func TestRegister_SellerStartsDisabled(t *testing.T) {
	uc, _ := newAuth()
	u := register(t, uc, "vendedor@example.com", "seller")
	assert.Equal(t, "seller", u.Role)
	assert.False(t, u.Enabled)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "vendedor@example.com", Password: "supersecreto"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_Rejections(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	register(t, uc, "ana@example.com", "")

	tests := []struct {
		name string
		in   dto.RegisterRequest
		want error
	}{
		{"email duplicado", dto.RegisterRequest{FirstName: "A", LastName: "B", Email: "ANA@example.com", Password: "12345678"}, domain.ErrEmailAlreadyExists},
		{"rol admin", dto.RegisterRequest{FirstName: "A", LastName: "B", Email: "x@example.com", Password: "12345678", Role: "admin"}, domain.ErrValidation},
		{"rol desconocido", dto.RegisterRequest{FirstName: "A", LastName: "B", Email: "y@example.com", Password: "12345678", Role: "root"}, domain.ErrValidation},
		{"password corto", dto.RegisterRequest{FirstName: "A", LastName: "B", Email: "z@example.com", Password: "1234"}, domain.ErrValidation},
		{"nombre vacío", dto.RegisterRequest{FirstName: " ", LastName: "B", Email: "w@example.com", Password: "12345678"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	created := register(t, uc, "ana@example.com", "")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "buyer", role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreto"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
