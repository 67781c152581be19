package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/pkg/config"
)

func TestPgErrorHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(fmt.Errorf("otro")))

	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", nullString("x"))
	assert.Nil(t, limitArg(0))
	assert.Equal(t, 10, limitArg(10))
}

// ── Integración (requiere TEST_DATABASE_URL) ─────────────────────────────────

func getPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, price string) (*entity.User, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	user := &entity.User{
		ID: uuid.NewString(), FirstName: "Ana", LastName: "Gómez", Email: uuid.NewString() + "@test.com",
		PasswordHash: "x", Role: entity.RoleSeller, Enabled: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewUserRepository(pool).Create(ctx, user))
	cat := &entity.Category{ID: uuid.NewString(), Name: "cat-" + uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewCategoryRepository(pool).Create(ctx, cat))
	p := &entity.Product{
		ID: uuid.NewString(), SellerID: user.ID, CategoryID: cat.ID, Name: "Taza",
		Price: decimal.RequireFromString(price), StockAmount: 10, Enabled: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewProductRepository(pool).Create(ctx, p))
	return user, p
}

func TestCartRepo_AddOrIncrement_Integration(t *testing.T) {
	pool := getPool(t)
	ctx := context.Background()
	user, p := seedProduct(t, pool, "12.50")
	repo := NewCartRepository(pool)

	first, err := repo.AddOrIncrement(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := repo.AddOrIncrement(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)

	_, err = repo.AddOrIncrement(ctx, user.ID, p.ID, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Caso: versión vieja -> conflicto
	err = repo.UpdateQuantity(ctx, first.ID, 1, first.Version)
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, repo.UpdateQuantity(ctx, first.ID, 1, second.Version))

	lines, err := repo.ListLinesByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(lines[0].UnitPrice))
}

func TestTxRunner_CheckoutRollback_Integration(t *testing.T) {
	pool := getPool(t)
	ctx := context.Background()
	user, p := seedProduct(t, pool, "3.00")
	_, err := NewCartRepository(pool).AddOrIncrement(ctx, user.ID, p.ID, 255)
	require.NoError(t, err)

	code := fmt.Sprintf("%016X", time.Now().UnixNano())
	err = NewTxRunner(pool).RunCheckout(ctx, func(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) error {
		o := &entity.Order{ID: uuid.NewString(), UserID: user.ID, Address: "Calle 1", OrderCode: code, CreatedAt: time.Now().UTC()}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		if err := cartRepo.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return domain.ErrTransactionAborted
	})
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)

	o, err := NewOrderRepository(pool).GetByCode(ctx, code)
	require.NoError(t, err)
	assert.Nil(t, o)
	lines, err := NewCartRepository(pool).ListLinesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestSellerRequestRepo_OnePending_Integration(t *testing.T) {
	pool := getPool(t)
	ctx := context.Background()
	user, _ := seedProduct(t, pool, "1.00")
	repo := NewSellerRequestRepository(pool)

	req := &entity.SellerRequest{ID: uuid.NewString(), UserID: user.ID, Message: "hola", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, req))
	err := repo.Create(ctx, &entity.SellerRequest{ID: uuid.NewString(), UserID: user.ID, CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	now := time.Now().UTC()
	req.ResolvedAt = &now
	require.NoError(t, repo.Resolve(ctx, req))
	assert.ErrorIs(t, repo.Resolve(ctx, req), domain.ErrNotFound)
}

func TestUserRepo_FieldScopedWrites_Integration(t *testing.T) {
	pool := getPool(t)
	ctx := context.Background()
	user, _ := seedProduct(t, pool, "1.00")
	repo := NewUserRepository(pool)
	now := time.Now().UTC()

	seller := entity.SellerState{Role: entity.RoleSeller}
	pending := entity.SellerState{Role: entity.RoleSeller, Pending: true}

	// Caso 1: compare-and-set con el estado vigente
	require.NoError(t, repo.TransitionSellerState(ctx, user.ID, seller, pending, now))

	// Caso 2: estado de partida obsoleto -> conflicto, la fila no cambia
	err := repo.TransitionSellerState(ctx, user.ID, seller, entity.SellerState{Role: entity.RoleBuyer}, now)
	require.ErrorIs(t, err, domain.ErrConflict)

	// Caso 3: perfil y enabled no tocan rol ni indicador pendiente
	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Ana María", "Gómez", "", now))
	require.NoError(t, repo.SetEnabled(ctx, user.ID, false, now))
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, pending, got.SellerState())
	assert.Equal(t, "Ana María", got.FirstName)
	assert.Equal(t, "x", got.PasswordHash)
	assert.False(t, got.Enabled)

	require.ErrorIs(t, repo.SetEnabled(ctx, uuid.NewString(), true, now), domain.ErrNotFound)
}
