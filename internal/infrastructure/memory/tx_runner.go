package memory

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// TxRunner ejecuta callbacks con el lock del store tomado; si fn falla restaura el estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.data = saved
		return err
	}
	return nil
}

// RunCheckout transacción de checkout: carrito + pedidos.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&CartRepo{s: r.s, inTx: true}, &OrderRepo{s: r.s, inTx: true})
	})
}

// RunAccount transacción de cuenta: usuario + solicitud de vendedor.
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	requestRepo repository.SellerRequestRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&UserRepo{s: r.s, inTx: true}, &SellerRequestRepo{s: r.s, inTx: true})
	})
}

// RunCatalog transacción de catálogo: producto + imágenes.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&ProductRepo{s: r.s, inTx: true}, &ProductImageRepo{s: r.s, inTx: true})
	})
}
