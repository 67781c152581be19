// Package account casos de uso de autogestión de la cuenta y del flujo de promoción a vendedor.
package account

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	domainaccount "github.com/mrvekratl/BE124/internal/domain/account"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// ProfileUseCase lectura y edición del perfil propio.
type ProfileUseCase struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(userRepo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo, now: time.Now}
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(u), nil
}

// ActiveRole informa si la cuenta existe y está habilitada y devuelve su rol vigente
// en formato de claim (usado por el middleware HTTP en lugar del rol del token).
func (uc *ProfileUseCase) ActiveRole(ctx context.Context, userID string) (string, bool, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if u == nil || !u.Enabled {
		return "", false, nil
	}
	return u.Role.Claim(), true, nil
}

// EditProfile sobrescribe nombre y apellido; la contraseña solo cambia si in.ChangePassword es true.
func (uc *ProfileUseCase) EditProfile(ctx context.Context, userID string, in dto.EditProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	first, err := domainaccount.NormalizeName("nombre", in.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := domainaccount.NormalizeName("apellido", in.LastName)
	if err != nil {
		return nil, err
	}

	hash := ""
	if in.ChangePassword {
		if err := domainaccount.ValidatePassword(in.NewPassword); err != nil {
			return nil, err
		}
		raw, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(raw)
	}

	// Solo campos de perfil; rol y solicitud pendiente no se tocan.
	if err := uc.userRepo.UpdateProfile(ctx, userID, first, last, hash, uc.now()); err != nil {
		return nil, err
	}
	return uc.GetProfile(ctx, userID)
}
