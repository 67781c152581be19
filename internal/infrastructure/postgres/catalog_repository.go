package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.DiscountRepository = (*DiscountRepo)(nil)
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría; nombre repetido -> ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, color, icon_css_class, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Color, c.IconCSSClass, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, name, color, icon_css_class, created_at, updated_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Color, &c.IconCSSClass, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre, color e icono.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `UPDATE categories SET name = $2, color = $3, icon_css_class = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Color, c.IconCSSClass, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la categoría; con productos asociados -> ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las categorías por orden de creación.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT id, name, color, icon_css_class, created_at, updated_at FROM categories ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.IconCSSClass, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DiscountRepo lectura de descuentos.
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador de descuentos.
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

// GetByID obtiene un descuento por ID.
func (r *DiscountRepo) GetByID(ctx context.Context, id string) (*entity.Discount, error) {
	var d entity.Discount
	err := r.q.QueryRow(ctx, `SELECT id, rate, enabled, created_at FROM discounts WHERE id = $1`, id).
		Scan(&d.ID, &d.Rate, &d.Enabled, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return &d, nil
}

// List todos los descuentos.
func (r *DiscountRepo) List(ctx context.Context) ([]*entity.Discount, error) {
	rows, err := r.q.Query(ctx, `SELECT id, rate, enabled, created_at FROM discounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Discount
	for rows.Next() {
		var d entity.Discount
		if err := rows.Scan(&d.ID, &d.Rate, &d.Enabled, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// discountRateSQL tasa vigente o NULL si el descuento está deshabilitado.
const discountRateSQL = `CASE WHEN d.enabled THEN d.rate END`

// firstImageSQL URL de la primera imagen del producto p o cadena vacía.
const firstImageSQL = `COALESCE((SELECT i.url FROM product_images i WHERE i.product_id = p.id ORDER BY i.created_at, i.id LIMIT 1), '')`
