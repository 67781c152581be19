package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s    *Store
	inTx bool
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.guard(r.inTx)()
	for _, u := range r.s.data.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *user
	r.s.data.users[user.ID] = &c
	r.s.track(user.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.guard(r.inTx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.guard(r.inTx)()
	for _, u := range r.s.data.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id, firstName, lastName, passwordHash string, at time.Time) error {
	defer r.s.guard(r.inTx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	u.UpdatedAt = at
	return nil
}

func (r *UserRepo) SetEnabled(_ context.Context, id string, enabled bool, at time.Time) error {
	defer r.s.guard(r.inTx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Enabled = enabled
	u.UpdatedAt = at
	return nil
}

func (r *UserRepo) TransitionSellerState(_ context.Context, id string, from, to entity.SellerState, at time.Time) error {
	defer r.s.guard(r.inTx)()
	u, ok := r.s.data.users[id]
	if !ok || u.SellerState() != from {
		return fmt.Errorf("%w: el estado de vendedor cambió durante la operación", domain.ErrConflict)
	}
	u.Role, u.HasSellerRequest = to.Role, to.Pending
	u.UpdatedAt = at
	return nil
}

func (r *UserRepo) ListNonAdmins(_ context.Context, limit, offset int) ([]*entity.User, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, u := range r.s.data.users {
		if u.Role != entity.RoleAdmin {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, true)
	var out []*entity.User
	for _, id := range page(ids, limit, offset) {
		c := *r.s.data.users[id]
		out = append(out, &c)
	}
	return out, nil
}

// RoleRepo tabla roles en memoria.
type RoleRepo struct {
	s    *Store
	inTx bool
}

// NewRoleRepository construye el repositorio de roles.
func NewRoleRepository(s *Store) *RoleRepo { return &RoleRepo{s: s} }

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.RoleRecord, error) {
	defer r.s.guard(r.inTx)()
	for _, rr := range r.s.data.roles {
		if rr.Name == name {
			c := rr
			return &c, nil
		}
	}
	return nil, nil
}
