package repository

import (
	"context"
	"time"

	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	// Create falla con domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile escribe solo nombre, apellido y, si passwordHash no está vacío, el hash.
	UpdateProfile(ctx context.Context, id, firstName, lastName, passwordHash string, at time.Time) error
	// SetEnabled escribe solo el indicador enabled.
	SetEnabled(ctx context.Context, id string, enabled bool, at time.Time) error
	// TransitionSellerState escribe rol e indicador pendiente solo si siguen valiendo from;
	// si otro escritor los cambió devuelve domain.ErrConflict.
	TransitionSellerState(ctx context.Context, id string, from, to entity.SellerState, at time.Time) error
	// ListNonAdmins lista usuarios que no son administradores, más recientes primero.
	ListNonAdmins(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

// RoleRepository acceso de solo lectura a la tabla de referencia roles.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.RoleRecord, error)
}
