package checkout

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos de carrito y pedidos atados a ella.
// Si fn devuelve error la transacción se revierte.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
