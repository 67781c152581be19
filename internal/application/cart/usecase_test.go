package cart

import (
	"context"
	"testing"

	"github.com/mrvekratl/BE124/internal/domain"
	domaincart "github.com/mrvekratl/BE124/internal/domain/cart"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Fixtures ──────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	cartRepo *memory.CartRepo
	uc       *UseCase
}

func newFixture(t *testing.T, policy domaincart.QuantityPolicy) *fixture {
	t.Helper()
	s := memory.New()
	products := memory.NewProductRepository(s)
	ctx := context.Background()
	for _, p := range []*entity.Product{
		{ID: "p7", SellerID: "s1", Name: "Lámpara", Price: decimal.RequireFromString("12.50"), StockAmount: 20, Enabled: true},
		{ID: "p8", SellerID: "s1", Name: "Mesa", Price: decimal.RequireFromString("100"), StockAmount: 3, Enabled: true},
		{ID: "off", SellerID: "s1", Name: "Oculto", Price: decimal.RequireFromString("1"), StockAmount: 3, Enabled: false},
		{ID: "empty", SellerID: "s1", Name: "Agotado", Price: decimal.RequireFromString("1"), StockAmount: 0, Enabled: true},
	} {
		require.NoError(t, products.Create(ctx, p))
	}
	cartRepo := memory.NewCartRepository(s)
	return &fixture{store: s, cartRepo: cartRepo, uc: NewUseCase(cartRepo, products, policy)}
}

// ─── AddToCart ─────────────────────────────────────────────────────────────────

func TestAddToCart_TwiceConsolidates(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()

	_, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)
	line, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	cart, err := f.uc.ListCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("25").Equal(cart.Total))
}

func TestAddToCart_UnknownOrDisabledProduct(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()

	_, err := f.uc.AddToCart(ctx, "u1", "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.AddToCart(ctx, "u1", "off")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddToCart_MaxQuantity(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()

	line, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)
	item, err := f.cartRepo.GetByID(ctx, line.ID)
	require.NoError(t, err)
	require.NoError(t, f.cartRepo.UpdateQuantity(ctx, line.ID, domaincart.MaxQuantity, item.Version))

	_, err = f.uc.AddToCart(ctx, "u1", "p7")
	require.ErrorIs(t, err, domain.ErrValidation)
}

// ─── UpdateQuantity ────────────────────────────────────────────────────────────

func TestUpdateQuantity_Reject(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()
	line, err := f.uc.AddToCart(ctx, "u1", "p8")
	require.NoError(t, err)

	// Caso 1: dentro del stock
	res, err := f.uc.UpdateQuantity(ctx, "u1", line.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, res.Line)
	assert.Equal(t, 3, res.Line.Quantity)
	assert.True(t, decimal.RequireFromString("300").Equal(res.Line.Subtotal))

	// Caso 2: supera el stock
	_, err = f.uc.UpdateQuantity(ctx, "u1", line.ID, 4)
	require.ErrorIs(t, err, domain.ErrValidation)

	// Caso 3: negativa
	_, err = f.uc.UpdateQuantity(ctx, "u1", line.ID, -1)
	require.ErrorIs(t, err, domain.ErrValidation)

	// Caso 4: cero elimina
	res, err = f.uc.UpdateQuantity(ctx, "u1", line.ID, 0)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	cart, err := f.uc.ListCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity_Clamp(t *testing.T) {
	f := newFixture(t, domaincart.PolicyClamp)
	ctx := context.Background()

	line, err := f.uc.AddToCart(ctx, "u1", "p8")
	require.NoError(t, err)
	res, err := f.uc.UpdateQuantity(ctx, "u1", line.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Line.Quantity)

	empty, err := f.uc.AddToCart(ctx, "u1", "empty")
	require.NoError(t, err)
	_, err = f.uc.UpdateQuantity(ctx, "u1", empty.ID, 2)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateQuantity_Ownership(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()
	line, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)

	_, err = f.uc.UpdateQuantity(ctx, "u2", line.ID, 2)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.UpdateQuantity(ctx, "u1", "missing", 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// racingCartRepo simula una escritura concurrente entre la lectura y la actualización.
type racingCartRepo struct {
	repository.CartRepository
	userID, productID string
}

func (r *racingCartRepo) GetLine(ctx context.Context, id string) (*entity.CartLine, error) {
	line, err := r.CartRepository.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.CartRepository.AddOrIncrement(ctx, r.userID, r.productID, domaincart.MaxQuantity); err != nil {
		return nil, err
	}
	return line, nil
}

func TestUpdateQuantity_ConcurrentWriteConflict(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()
	line, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)

	racing := NewUseCase(&racingCartRepo{CartRepository: f.cartRepo, userID: "u1", productID: "p7"},
		memory.NewProductRepository(f.store), domaincart.PolicyReject)
	_, err = racing.UpdateQuantity(ctx, "u1", line.ID, 5)
	require.ErrorIs(t, err, domain.ErrConflict)

	// la escritura concurrente se conserva
	item, err := f.cartRepo.GetByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

// ─── RemoveItem / ListCart ─────────────────────────────────────────────────────

func TestRemoveItem(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()
	line, err := f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)

	require.ErrorIs(t, f.uc.RemoveItem(ctx, "u2", line.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.RemoveItem(ctx, "u1", line.ID))
	require.ErrorIs(t, f.uc.RemoveItem(ctx, "u1", line.ID), domain.ErrNotFound)
}

func TestListCart_OrderAndTotal(t *testing.T) {
	f := newFixture(t, domaincart.PolicyReject)
	ctx := context.Background()
	_, err := f.uc.AddToCart(ctx, "u1", "p8")
	require.NoError(t, err)
	_, err = f.uc.AddToCart(ctx, "u1", "p7")
	require.NoError(t, err)
	_, err = f.uc.AddToCart(ctx, "u2", "p7")
	require.NoError(t, err)

	cart, err := f.uc.ListCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "p8", cart.Items[0].ProductID)
	assert.Equal(t, "p7", cart.Items[1].ProductID)
	assert.True(t, decimal.RequireFromString("112.50").Equal(cart.Total))
}
