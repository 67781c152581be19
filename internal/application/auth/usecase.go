package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	domainaccount "github.com/mrvekratl/BE124/internal/domain/account"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando el email no existe para que la respuesta tarde lo mismo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario con password hasheado (bcrypt).
// Rol vacío = buyer. "seller" crea la cuenta deshabilitada hasta que un administrador la habilite.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email, err := domainaccount.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	first, err := domainaccount.NormalizeName("nombre", in.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := domainaccount.NormalizeName("apellido", in.LastName)
	if err != nil {
		return nil, err
	}
	if err := domainaccount.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	role := entity.RoleBuyer
	if in.Role != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok || r == entity.RoleAdmin {
			return nil, fmt.Errorf("%w: rol no permitido", domain.ErrValidation)
		}
		role = r
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      role == entity.RoleBuyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return account.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email, err := domainaccount.NormalizeEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Enabled {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role.Claim(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *account.ToUserResponse(user),
	}, nil
}
