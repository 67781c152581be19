package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

const userColumns = `id, first_name, last_name, email, password_hash, role_id, enabled, has_seller_request, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, int16(u.Role), u.Enabled, u.HasSellerRequest,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (ya normalizado en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// UpdateProfile actualiza nombres y, si se indica, el hash; no toca rol ni estado.
func (r *UserRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, passwordHash string, at time.Time) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3,
		    password_hash = COALESCE(NULLIF($4, ''), password_hash), updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, firstName, lastName, passwordHash, at)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetEnabled habilita o deshabilita la cuenta.
func (r *UserRepo) SetEnabled(ctx context.Context, id string, enabled bool, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET enabled = $2, updated_at = $3 WHERE id = $1`, id, enabled, at)
	if err != nil {
		return fmt.Errorf("set user enabled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransitionSellerState compare-and-set sobre (role_id, has_seller_request).
// Una escritura concurrente que ya cambió la fila deja 0 filas afectadas -> ErrConflict.
func (r *UserRepo) TransitionSellerState(ctx context.Context, id string, from, to entity.SellerState, at time.Time) error {
	query := `
		UPDATE users
		SET role_id = $4, has_seller_request = $5, updated_at = $6
		WHERE id = $1 AND role_id = $2 AND has_seller_request = $3`
	tag, err := r.q.Exec(ctx, query, id, int16(from.Role), from.Pending, int16(to.Role), to.Pending, at)
	if err != nil {
		return fmt.Errorf("transition seller state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: el estado de vendedor cambió durante la operación", domain.ErrConflict)
	}
	return nil
}

// ListNonAdmins usuarios que no son administradores, más recientes primero.
func (r *UserRepo) ListNonAdmins(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE role_id <> $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, int16(entity.RoleAdmin), limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role int16
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &role, &u.Enabled, &u.HasSellerRequest,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// RoleRepo lectura de la tabla de referencia roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName busca un rol por su nombre canónico.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.RoleRecord, error) {
	var rec entity.RoleRecord
	var id int16
	err := r.q.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&id, &rec.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	rec.ID = entity.Role(id)
	return &rec, nil
}
