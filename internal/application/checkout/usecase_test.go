package checkout

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/ports"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/internal/infrastructure/memory"
	"github.com/mrvekratl/BE124/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Fixtures ──────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	cartRepo *memory.CartRepo
	orders   *memory.OrderRepo
	tx       *memory.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	products := memory.NewProductRepository(s)
	for _, p := range []*entity.Product{
		{ID: "P7", SellerID: "S1", Name: "Lámpara", Price: decimal.RequireFromString("12.50"), StockAmount: 20, Enabled: true},
		{ID: "P8", SellerID: "S1", Name: "Mesa", Price: decimal.RequireFromString("100"), StockAmount: 5, Enabled: true},
	} {
		require.NoError(t, products.Create(ctx, p))
	}
	return &fixture{store: s, cartRepo: memory.NewCartRepository(s), orders: memory.NewOrderRepository(s), tx: memory.NewTxRunner(s)}
}

func (f *fixture) add(t *testing.T, userID, productID string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		_, err := f.cartRepo.AddOrIncrement(context.Background(), userID, productID, 255)
		require.NoError(t, err)
	}
}

func (f *fixture) useCase(opts ...Option) *UseCase {
	return NewUseCase(f.tx, f.orders, logger.Nop(), opts...)
}

// fakeIdempotency reserva claves en un mapa.
type fakeIdempotency struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
}

func newFakeIdempotency() *fakeIdempotency { return &fakeIdempotency{keys: map[string]bool{}} }

func (f *fakeIdempotency) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdempotency) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	f.released = append(f.released, key)
	return nil
}

// recordingPublisher guarda los eventos publicados; err simula un broker caído.
type recordingPublisher struct {
	events []ports.OrderPlacedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, evt ports.OrderPlacedEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

// failingTxRunner pasa a fn un repo de pedidos que falla al crear la línea número failAt.
type failingTxRunner struct {
	inner  TxRunner
	failAt int
}

type failingOrderRepo struct {
	repository.OrderRepository
	calls  int
	failAt int
}

func (r *failingOrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	r.calls++
	if r.calls == r.failAt {
		return errors.New("conexión perdida")
	}
	return r.OrderRepository.CreateItem(ctx, it)
}

func (r *failingTxRunner) RunCheckout(ctx context.Context, fn func(repository.CartRepository, repository.OrderRepository) error) error {
	return r.inner.RunCheckout(ctx, func(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) error {
		return fn(cartRepo, &failingOrderRepo{OrderRepository: orderRepo, failAt: r.failAt})
	})
}

var codePattern = regexp.MustCompile(`^[0-9A-F]{16}$`)

// ─── PlaceOrder ────────────────────────────────────────────────────────────────

func TestPlaceOrder_WorkedExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// U1 agrega P7 dos veces: una sola línea con cantidad 2
	f.add(t, "U1", "P7", 2)

	code, err := f.useCase().PlaceOrder(ctx, "U1", "123 Main St", "")
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)

	detail, err := f.useCase().GetOrderDetails(ctx, "U1", code)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", detail.Address)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "P7", detail.Items[0].ProductID)
	assert.Equal(t, 2, detail.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(detail.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("25").Equal(detail.Total))

	lines, err := f.cartRepo.ListLinesByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPlaceOrder_CopiesEveryLineAtCurrentPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 1)
	f.add(t, "U1", "P8", 3)

	// el precio cambia después de agregar al carrito: el pedido toma el precio vigente
	products := memory.NewProductRepository(f.store)
	p8, err := products.GetByID(ctx, "P8")
	require.NoError(t, err)
	p8.Price = decimal.RequireFromString("90")
	require.NoError(t, products.Update(ctx, p8))

	code, err := f.useCase().PlaceOrder(ctx, "U1", "Calle 1", "")
	require.NoError(t, err)

	detail, err := f.useCase().GetOrderDetails(ctx, "U1", code)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.True(t, decimal.RequireFromString("282.50").Equal(detail.Total))

	orders, err := f.useCase().ListMyOrders(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].TotalProducts)
	assert.Equal(t, 4, orders[0].TotalQuantity)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.useCase().PlaceOrder(context.Background(), "U1", "123 Main St", "")
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlaceOrder_InvalidAddress(t *testing.T) {
	f := newFixture(t)
	f.add(t, "U1", "P7", 1)
	uc := f.useCase()

	_, err := uc.PlaceOrder(context.Background(), "U1", "   ", "")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.PlaceOrder(context.Background(), "U1", strings.Repeat("a", MaxAddressLength+1), "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceOrder_AtomicOnMidTransactionFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 2)
	f.add(t, "U1", "P8", 1)

	idem := newFakeIdempotency()
	uc := NewUseCase(&failingTxRunner{inner: f.tx, failAt: 2}, f.orders, logger.Nop(), WithIdempotency(idem))

	_, err := uc.PlaceOrder(ctx, "U1", "123 Main St", "k1")
	require.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.NotContains(t, err.Error(), "conexión perdida")

	// el carrito sigue intacto y no quedó ningún pedido
	lines, err := f.cartRepo.ListLinesByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	orders, err := f.orders.ListSummariesByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	// la clave se liberó: el reintento funciona
	assert.Equal(t, []string{"checkout:U1:k1"}, idem.released)
	code, err := f.useCase(WithIdempotency(idem)).PlaceOrder(ctx, "U1", "123 Main St", "k1")
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)
}

func TestPlaceOrder_DuplicateIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 1)
	uc := f.useCase(WithIdempotency(newFakeIdempotency()))

	_, err := uc.PlaceOrder(ctx, "U1", "123 Main St", "k1")
	require.NoError(t, err)

	f.add(t, "U1", "P7", 1)
	_, err = uc.PlaceOrder(ctx, "U1", "123 Main St", "k1")
	require.ErrorIs(t, err, domain.ErrConflict)

	lines, err := f.cartRepo.ListLinesByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestPlaceOrder_ConcurrentDoubleSubmit(t *testing.T) {
	f := newFixture(t)
	f.add(t, "U1", "P7", 1)
	uc := f.useCase()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.PlaceOrder(context.Background(), "U1", "123 Main St", "")
		}(i)
	}
	wg.Wait()

	var ok, empty int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrEmptyCart):
			empty++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, empty)
}

func TestPlaceOrder_PublishesEventBestEffort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 2)
	pub := &recordingPublisher{err: errors.New("broker caído")}

	code, err := f.useCase(WithPublisher(pub)).PlaceOrder(ctx, "U1", "123 Main St", "")
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, code, pub.events[0].OrderCode)
	assert.Equal(t, 1, pub.events[0].ItemCount)
	assert.True(t, decimal.RequireFromString("25").Equal(pub.events[0].TotalPrice))
}

// blockingPublisher no responde hasta que vence el contexto (broker inalcanzable).
type blockingPublisher struct {
	ctxErr error
}

func (p *blockingPublisher) PublishOrderPlaced(ctx context.Context, _ ports.OrderPlacedEvent) error {
	<-ctx.Done()
	p.ctxErr = ctx.Err()
	return p.ctxErr
}

func TestPlaceOrder_SlowPublisherDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.add(t, "U1", "P7", 1)
	pub := &blockingPublisher{}
	uc := f.useCase(WithPublisher(pub), WithPublishTimeout(20*time.Millisecond))

	// el contexto de la petición no tiene plazo: el tope lo pone el caso de uso
	start := time.Now()
	code, err := uc.PlaceOrder(context.Background(), "U1", "123 Main St", "")
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, pub.ctxErr, context.DeadlineExceeded)
}

// ─── Consultas ─────────────────────────────────────────────────────────────────

func TestGetOrderDetails_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 1)
	uc := f.useCase()
	code, err := uc.PlaceOrder(ctx, "U1", "123 Main St", "")
	require.NoError(t, err)

	_, err = uc.GetOrderDetails(ctx, "U2", code)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetOrderDetails(ctx, "U1", "FFFFFFFFFFFFFFFF")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetOrderDetails(ctx, "U1", strings.ToLower(code))
	require.NoError(t, err)
}

func TestListMyOrders_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.useCase()

	f.add(t, "U1", "P7", 1)
	first, err := uc.PlaceOrder(ctx, "U1", "A", "")
	require.NoError(t, err)
	f.add(t, "U1", "P8", 2)
	second, err := uc.PlaceOrder(ctx, "U1", "B", "")
	require.NoError(t, err)

	orders, err := uc.ListMyOrders(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].OrderCode)
	assert.Equal(t, first, orders[1].OrderCode)
	assert.True(t, decimal.RequireFromString("200").Equal(orders[0].TotalPrice))
}

// ─── Receipt ───────────────────────────────────────────────────────────────────

type stubReceipt struct{ orderCode string }

func (s *stubReceipt) Generate(order *dto.OrderDetailResponse) ([]byte, error) {
	s.orderCode = order.OrderCode
	return []byte("%PDF-stub"), nil
}

func TestDownloadReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "U1", "P7", 1)
	orders := f.useCase()
	code, err := orders.PlaceOrder(ctx, "U1", "123 Main St", "")
	require.NoError(t, err)

	gen := &stubReceipt{}
	uc := NewReceiptUseCase(orders, gen)
	pdfBytes, filename, err := uc.DownloadReceipt(ctx, "U1", code)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(pdfBytes))
	assert.Equal(t, "pedido_"+code+".pdf", filename)
	assert.Equal(t, code, gen.orderCode)

	_, _, err = uc.DownloadReceipt(ctx, "U2", code)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
