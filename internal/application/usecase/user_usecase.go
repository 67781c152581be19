package usecase

import (
	"context"
	"time"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// UserUseCase administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// ListUsers usuarios que no son administradores.
func (uc *UserUseCase) ListUsers(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListNonAdmins(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *account.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: page.Response(0)}, nil
}

// EnableUser habilita la cuenta (ej. vendedor recién registrado).
func (uc *UserUseCase) EnableUser(ctx context.Context, id string) error {
	return uc.setEnabled(ctx, id, true)
}

// DisableUser deshabilita la cuenta; no puede volver a iniciar sesión.
func (uc *UserUseCase) DisableUser(ctx context.Context, id string) error {
	return uc.setEnabled(ctx, id, false)
}

func (uc *UserUseCase) setEnabled(ctx context.Context, id string, enabled bool) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.Role == entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.SetEnabled(ctx, id, enabled, time.Now())
}
