package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ProductImageRepository = (*ProductImageRepo)(nil)
)

const productColumns = `p.id, p.seller_id, p.category_id, p.discount_id, p.name, p.description, p.price, p.stock_amount, p.enabled, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, seller_id, category_id, discount_id, name, description, price, stock_amount, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SellerID, p.CategoryID, nullString(p.DiscountID), p.Name, p.Description,
		p.Price, p.StockAmount, p.Enabled, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría, vendedor o descuento inexistente", domain.ErrValidation)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, discount_id = $3, name = $4, description = $5, price = $6,
		    stock_amount = $7, enabled = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, nullString(p.DiscountID), p.Name, p.Description, p.Price, p.StockAmount, p.Enabled, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría o descuento inexistente", domain.ErrValidation)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; imágenes, reseñas y líneas de carrito caen por cascada.
// Si el producto figura en pedidos la FK lo impide -> ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListEnabled listado público paginado, más recientes primero, con el total de habilitados.
func (r *ProductRepo) ListEnabled(ctx context.Context, limit, offset int) ([]*entity.ProductListing, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE enabled`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `
		SELECT p.id, p.name, p.price, COALESCE(c.name, ''), ` + discountRateSQL + `, ` + firstImageSQL + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN discounts d ON d.id = p.discount_id
		WHERE p.enabled
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductListing
	for rows.Next() {
		var l entity.ProductListing
		var rate *decimal.Decimal
		if err := rows.Scan(&l.ID, &l.Name, &l.Price, &l.CategoryName, &rate, &l.ImageURL); err != nil {
			return nil, 0, fmt.Errorf("scan product listing: %w", err)
		}
		l.DiscountRate = rate
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetDetail ficha del producto con categoría, vendedor, descuento e imágenes.
func (r *ProductRepo) GetDetail(ctx context.Context, id string) (*entity.ProductDetail, error) {
	query := `
		SELECT ` + productColumns + `, COALESCE(c.name, ''), COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''), ` + discountRateSQL + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN users u ON u.id = p.seller_id
		LEFT JOIN discounts d ON d.id = p.discount_id
		WHERE p.id = $1`
	var d entity.ProductDetail
	var discountID *string
	var rate *decimal.Decimal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.SellerID, &d.CategoryID, &discountID, &d.Name, &d.Description, &d.Price, &d.StockAmount,
		&d.Enabled, &d.CreatedAt, &d.UpdatedAt, &d.CategoryName, &d.SellerName, &rate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product detail: %w", err)
	}
	if discountID != nil {
		d.DiscountID = *discountID
	}
	d.DiscountRate = rate

	images, err := NewProductImageRepository(r.q).ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		d.ImageURLs = append(d.ImageURLs, img.URL)
	}
	return &d, nil
}

// ListBySeller productos de un vendedor, más recientes primero.
func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.seller_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	return r.list(ctx, query, sellerID)
}

// ListAll todos los productos (administración), paginado.
func (r *ProductRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limitArg(limit), offset)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var discountID *string
	err := row.Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &discountID, &p.Name, &p.Description, &p.Price, &p.StockAmount,
		&p.Enabled, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if discountID != nil {
		p.DiscountID = *discountID
	}
	return &p, nil
}

// ProductImageRepo imágenes de producto sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador de imágenes.
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

// Create registra una imagen; producto inexistente -> ErrNotFound.
func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_images (id, product_id, url, created_at) VALUES ($1, $2, $3, $4)`,
		img.ID, img.ProductID, img.URL, img.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// ListByProduct imágenes por orden de subida.
func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, product_id, url, created_at FROM product_images WHERE product_id = $1 ORDER BY created_at, id`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todas las imágenes del producto.
func (r *ProductImageRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}
