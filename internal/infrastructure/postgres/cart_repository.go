package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `ci.id, ci.user_id, ci.product_id, ci.quantity, ci.version, ci.created_at, ci.updated_at`

const cartLineQuery = `
	SELECT ` + cartColumns + `, p.name, p.price, p.stock_amount, ` + firstImageSQL + `
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

// CartRepo líneas de carrito sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// AddOrIncrement upsert atómico sobre UNIQUE (user_id, product_id).
// Si la línea ya está en maxQty el WHERE del DO UPDATE no deja filas -> ErrValidation.
func (r *CartRepo) AddOrIncrement(ctx context.Context, userID, productID string, maxQty int) (*entity.CartItem, error) {
	query := `
		INSERT INTO cart_items AS ci (id, user_id, product_id, quantity, version, created_at, updated_at)
		VALUES ($1, $2, $3, 1, 1, $4, $4)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = ci.quantity + 1, version = ci.version + 1, updated_at = EXCLUDED.updated_at
		WHERE ci.quantity < $5
		RETURNING ` + cartColumns
	now := time.Now().UTC()
	it, err := scanCartItem(r.q.QueryRow(ctx, query, uuid.New().String(), userID, productID, now, maxQty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: la línea ya tiene la cantidad máxima", domain.ErrValidation)
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return it, nil
}

// GetByID obtiene una línea sin datos de producto.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	it, err := scanCartItem(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM cart_items ci WHERE ci.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return it, nil
}

// GetLine obtiene una línea con nombre, precio, stock e imagen actuales.
func (r *CartRepo) GetLine(ctx context.Context, id string) (*entity.CartLine, error) {
	l, err := scanCartLine(r.q.QueryRow(ctx, cartLineQuery+` WHERE ci.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return l, nil
}

// ListLinesByUser líneas del usuario por orden de creación.
func (r *CartRepo) ListLinesByUser(ctx context.Context, userID string) ([]*entity.CartLine, error) {
	return r.listLines(ctx, cartLineQuery+` WHERE ci.user_id = $1 ORDER BY ci.created_at, ci.id`, userID)
}

// ListLinesByUserForUpdate bloquea las líneas del usuario hasta el fin de la transacción.
func (r *CartRepo) ListLinesByUserForUpdate(ctx context.Context, userID string) ([]*entity.CartLine, error) {
	return r.listLines(ctx, cartLineQuery+` WHERE ci.user_id = $1 ORDER BY ci.created_at, ci.id FOR UPDATE OF ci`, userID)
}

// UpdateQuantity escritura con control optimista por versión.
func (r *CartRepo) UpdateQuantity(ctx context.Context, id string, quantity, expectedVersion int) error {
	query := `
		UPDATE cart_items SET quantity = $2, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $3`
	tag, err := r.q.Exec(ctx, query, id, quantity, expectedVersion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina una línea.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByUser vacía el carrito del usuario.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *CartRepo) listLines(ctx context.Context, query, userID string) ([]*entity.CartLine, error) {
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.CartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := row.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.Version, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(
		&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.Version, &l.CreatedAt, &l.UpdatedAt,
		&l.ProductName, &l.UnitPrice, &l.StockAmount, &l.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
