package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *Store, id string, price string) {
	t.Helper()
	require.NoError(t, NewProductRepository(s).Create(context.Background(), &entity.Product{
		ID: id, SellerID: "seller", Name: "P " + id, Price: decimal.RequireFromString(price), StockAmount: 10, Enabled: true,
	}))
}

func TestCartRepo_AddOrIncrement(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedProduct(t, s, "p1", "10.00")
	repo := NewCartRepository(s)

	first, err := repo.AddOrIncrement(ctx, "u1", "p1", 255)
	require.NoError(t, err)
	second, err := repo.AddOrIncrement(ctx, "u1", "p1", 255)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)

	lines, err := repo.ListLinesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "P p1", lines[0].ProductName)
	assert.True(t, decimal.RequireFromString("20").Equal(lines[0].Subtotal()))
}

func TestCartRepo_AddOrIncrement_Max(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedProduct(t, s, "p1", "1")
	repo := NewCartRepository(s)

	_, err := repo.AddOrIncrement(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "u1", "p1", 2)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCartRepo_UpdateQuantity_Version(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedProduct(t, s, "p1", "1")
	repo := NewCartRepository(s)

	item, err := repo.AddOrIncrement(ctx, "u1", "p1", 255)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateQuantity(ctx, item.ID, 5, item.Version))
	// la versión leída ya no es la vigente
	require.ErrorIs(t, repo.UpdateQuantity(ctx, item.ID, 6, item.Version), domain.ErrConflict)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedProduct(t, s, "p1", "1")
	_, err := NewCartRepository(s).AddOrIncrement(ctx, "u1", "p1", 255)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = NewTxRunner(s).RunCheckout(ctx, func(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) error {
		require.NoError(t, orderRepo.Create(ctx, &entity.Order{ID: "o1", UserID: "u1", OrderCode: "0123456789ABCDEF", CreatedAt: time.Now()}))
		require.NoError(t, cartRepo.DeleteByUser(ctx, "u1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	lines, err := NewCartRepository(s).ListLinesByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	o, err := NewOrderRepository(s).GetByCode(ctx, "0123456789ABCDEF")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestSellerRequestRepo_OnePending(t *testing.T) {
	ctx := context.Background()
	repo := NewSellerRequestRepository(New())

	require.NoError(t, repo.Create(ctx, &entity.SellerRequest{ID: "r1", UserID: "u1", Message: "hola"}))
	require.ErrorIs(t, repo.Create(ctx, &entity.SellerRequest{ID: "r2", UserID: "u1", Message: "otra"}), domain.ErrDuplicate)

	now := time.Now()
	require.NoError(t, repo.Resolve(ctx, &entity.SellerRequest{ID: "r1", ResolvedAt: &now}))
	require.NoError(t, repo.Create(ctx, &entity.SellerRequest{ID: "r3", UserID: "u1", Message: "de nuevo"}))
}

func TestRoleRepo_WithoutRole(t *testing.T) {
	ctx := context.Background()
	r, err := NewRoleRepository(New()).GetByName(ctx, entity.RoleNameSeller)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, entity.RoleSeller, r.ID)

	r, err = NewRoleRepository(New(WithoutRole(entity.RoleNameSeller))).GetByName(ctx, entity.RoleNameSeller)
	require.NoError(t, err)
	assert.Nil(t, r)
}
