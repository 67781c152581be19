package repository

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// CartRepository líneas de carrito.
type CartRepository interface {
	// AddOrIncrement inserta la línea con cantidad 1 o incrementa en 1 la existente, en una sola operación.
	// Si la línea ya tiene maxQty unidades devuelve domain.ErrValidation y no modifica nada.
	AddOrIncrement(ctx context.Context, userID, productID string, maxQty int) (*entity.CartItem, error)
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	GetLine(ctx context.Context, id string) (*entity.CartLine, error)
	// ListLinesByUser líneas del usuario por orden de creación, con precio e imagen actuales.
	ListLinesByUser(ctx context.Context, userID string) ([]*entity.CartLine, error)
	// ListLinesByUserForUpdate igual que ListLinesByUser pero bloquea las filas (usar dentro de una tx).
	ListLinesByUserForUpdate(ctx context.Context, userID string) ([]*entity.CartLine, error)
	// UpdateQuantity escribe la cantidad si la versión coincide; si no, domain.ErrConflict.
	UpdateQuantity(ctx context.Context, id string, quantity, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// OrderRepository pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByCode(ctx context.Context, code string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItemView, error)
	// ListSummariesByUser pedidos del usuario, más recientes primero, con totales.
	ListSummariesByUser(ctx context.Context, userID string) ([]*entity.OrderSummary, error)
}

// SellerRequestRepository solicitudes de vendedor.
type SellerRequestRepository interface {
	// Create falla con domain.ErrDuplicate si el usuario ya tiene una solicitud sin resolver.
	Create(ctx context.Context, req *entity.SellerRequest) error
	GetPendingByUser(ctx context.Context, userID string) (*entity.SellerRequest, error)
	Resolve(ctx context.Context, req *entity.SellerRequest) error
	ListPending(ctx context.Context) ([]*entity.SellerRequestView, error)
}
