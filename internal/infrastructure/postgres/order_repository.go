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
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.SellerRequestRepository = (*SellerRequestRepo)(nil)
)

// OrderRepo pedidos sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera; código repetido -> ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO orders (id, user_id, address, order_code, created_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.UserID, o.Address, o.OrderCode, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea con el precio capturado.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByCode obtiene un pedido por su código.
func (r *OrderRepo) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, address, order_code, created_at FROM orders WHERE order_code = $1`, code,
	).Scan(&o.ID, &o.UserID, &o.Address, &o.OrderCode, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListItems líneas del pedido con el nombre del producto.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItemView, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.created_at, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at, oi.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderItemView
	for rows.Next() {
		var v entity.OrderItemView
		if err := rows.Scan(&v.ID, &v.OrderID, &v.ProductID, &v.Quantity, &v.UnitPrice, &v.CreatedAt, &v.ProductName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListSummariesByUser pedidos del usuario con totales, más recientes primero.
func (r *OrderRepo) ListSummariesByUser(ctx context.Context, userID string) ([]*entity.OrderSummary, error) {
	query := `
		SELECT o.order_code, o.address, o.created_at,
		       COALESCE(SUM(oi.unit_price * oi.quantity), 0),
		       COUNT(DISTINCT oi.product_id),
		       COALESCE(SUM(oi.quantity), 0)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderSummary
	for rows.Next() {
		var s entity.OrderSummary
		if err := rows.Scan(&s.OrderCode, &s.Address, &s.CreatedAt, &s.TotalPrice, &s.TotalProducts, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SellerRequestRepo solicitudes de vendedor sobre PostgreSQL.
type SellerRequestRepo struct {
	q Querier
}

// NewSellerRequestRepository construye el adaptador de solicitudes.
func NewSellerRequestRepository(q Querier) *SellerRequestRepo {
	return &SellerRequestRepo{q: q}
}

// Create persiste la solicitud; el índice parcial impide dos pendientes -> ErrDuplicate.
func (r *SellerRequestRepo) Create(ctx context.Context, req *entity.SellerRequest) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO seller_requests (id, user_id, message, is_approved, resolved_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.UserID, req.Message, req.IsApproved, req.ResolvedAt, req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert seller request: %w", err)
	}
	return nil
}

// GetPendingByUser solicitud sin resolver del usuario, si existe.
func (r *SellerRequestRepo) GetPendingByUser(ctx context.Context, userID string) (*entity.SellerRequest, error) {
	var req entity.SellerRequest
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, message, is_approved, resolved_at, created_at
		FROM seller_requests WHERE user_id = $1 AND resolved_at IS NULL`, userID,
	).Scan(&req.ID, &req.UserID, &req.Message, &req.IsApproved, &req.ResolvedAt, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller request: %w", err)
	}
	return &req, nil
}

// Resolve cierra una solicitud pendiente; si ya estaba resuelta -> ErrNotFound.
func (r *SellerRequestRepo) Resolve(ctx context.Context, req *entity.SellerRequest) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE seller_requests SET is_approved = $2, resolved_at = $3 WHERE id = $1 AND resolved_at IS NULL`,
		req.ID, req.IsApproved, req.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve seller request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPending solicitudes pendientes con datos del solicitante, más antiguas primero.
func (r *SellerRequestRepo) ListPending(ctx context.Context) ([]*entity.SellerRequestView, error) {
	query := `
		SELECT s.id, s.user_id, s.message, s.is_approved, s.resolved_at, s.created_at,
		       COALESCE(u.email, ''), COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')
		FROM seller_requests s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.resolved_at IS NULL
		ORDER BY s.created_at, s.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list seller requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.SellerRequestView
	for rows.Next() {
		var v entity.SellerRequestView
		if err := rows.Scan(&v.ID, &v.UserID, &v.Message, &v.IsApproved, &v.ResolvedAt, &v.CreatedAt, &v.UserEmail, &v.UserName); err != nil {
			return nil, fmt.Errorf("scan seller request: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
