package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/checkout"
	"github.com/mrvekratl/BE124/internal/application/usecase"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ checkout.TxRunner       = (*TxRunner)(nil)
	_ account.TxRunner        = (*TxRunner)(nil)
	_ usecase.CatalogTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error deja la tx en Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout transacción de checkout: carrito + pedidos.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCartRepository(tx), NewOrderRepository(tx))
	})
}

// RunAccount transacción de cuenta: usuario + solicitud de vendedor.
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	requestRepo repository.SellerRequestRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewSellerRequestRepository(tx))
	})
}

// RunCatalog transacción de catálogo: producto + imágenes.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewProductImageRepository(tx))
	})
}
