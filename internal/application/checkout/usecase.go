// Package checkout casos de uso de creación y consulta de pedidos.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/ports"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/order"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	// MaxAddressLength longitud máxima de la dirección de envío.
	MaxAddressLength = 250
	// IdempotencyTTL vigencia de una clave de idempotencia de checkout.
	IdempotencyTTL = 24 * time.Hour
	// PublishTimeout tope de espera por el publicador de eventos tras confirmar un pedido.
	PublishTimeout = 2 * time.Second
)

// UseCase creación de pedidos a partir del carrito y consultas del comprador.
type UseCase struct {
	tx          TxRunner
	orderRepo   repository.OrderRepository
	idempotency ports.IdempotencyStore    // opcional
	publisher   ports.OrderEventPublisher // opcional
	publishWait time.Duration
	log         *logger.Logger
	now         func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*UseCase)

// WithIdempotency activa la deduplicación de checkout por clave.
func WithIdempotency(store ports.IdempotencyStore) Option {
	return func(uc *UseCase) { uc.idempotency = store }
}

// WithPublisher publica order.placed tras cada pedido confirmado.
func WithPublisher(p ports.OrderEventPublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithPublishTimeout cambia PublishTimeout.
func WithPublishTimeout(d time.Duration) Option {
	return func(uc *UseCase) { uc.publishWait = d }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, orderRepo repository.OrderRepository, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{tx: tx, orderRepo: orderRepo, log: log, now: time.Now, publishWait: PublishTimeout}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// PlaceOrder convierte el carrito del usuario en un pedido y devuelve su código.
// La lectura del carrito, la creación del pedido y el vaciado del carrito ocurren en una sola transacción.
func (uc *UseCase) PlaceOrder(ctx context.Context, userID, address, idempotencyKey string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("%w: la dirección es obligatoria", domain.ErrValidation)
	}
	if utf8.RuneCountInString(address) > MaxAddressLength {
		return "", fmt.Errorf("%w: la dirección supera %d caracteres", domain.ErrValidation, MaxAddressLength)
	}

	key := ""
	if uc.idempotency != nil && idempotencyKey != "" {
		key = "checkout:" + userID + ":" + idempotencyKey
		ok, err := uc.idempotency.Reserve(ctx, key, IdempotencyTTL)
		if err != nil {
			// Sin Redis el checkout sigue protegido por el bloqueo de filas.
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("checkout: no se pudo reservar la clave de idempotencia")
			key = ""
		} else if !ok {
			return "", fmt.Errorf("%w: pedido ya enviado", domain.ErrConflict)
		}
	}

	var placed *entity.Order
	var items []*entity.OrderItem
	err := uc.tx.RunCheckout(ctx, func(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) error {
		lines, err := cartRepo.ListLinesByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		now := uc.now()
		o := &entity.Order{
			ID:        uuid.New().String(),
			UserID:    userID,
			Address:   address,
			OrderCode: order.NewCode(),
			CreatedAt: now,
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		created := make([]*entity.OrderItem, 0, len(lines))
		for _, l := range lines {
			it := &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				CreatedAt: now,
			}
			if err := orderRepo.CreateItem(ctx, it); err != nil {
				return err
			}
			created = append(created, it)
		}
		if err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		placed, items = o, created
		return nil
	})
	if err != nil {
		if key != "" {
			if relErr := uc.idempotency.Release(ctx, key); relErr != nil {
				uc.log.Warn().Err(relErr).Str("key", key).Msg("checkout: no se pudo liberar la clave de idempotencia")
			}
		}
		if errors.Is(err, domain.ErrEmptyCart) || errors.Is(err, domain.ErrValidation) {
			return "", err
		}
		uc.log.Error().Err(err).Str("user_id", userID).Msg("checkout: transacción revertida")
		return "", domain.ErrTransactionAborted
	}

	uc.log.Info().Str("user_id", userID).Str("order_code", placed.OrderCode).Int("items", len(items)).Msg("pedido creado")
	uc.publishPlaced(ctx, placed, items)
	return placed.OrderCode, nil
}

func (uc *UseCase) publishPlaced(ctx context.Context, o *entity.Order, items []*entity.OrderItem) {
	if uc.publisher == nil {
		return
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	evt := ports.OrderPlacedEvent{
		OrderCode:  o.OrderCode,
		UserID:     o.UserID,
		Address:    o.Address,
		ItemCount:  len(items),
		TotalPrice: total,
		PlacedAt:   o.CreatedAt,
	}
	// El pedido ya está confirmado: ni la cancelación de la petición ni un broker lento lo afectan.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishWait)
	defer cancel()
	if err := uc.publisher.PublishOrderPlaced(pubCtx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_code", o.OrderCode).Msg("no se pudo publicar order.placed")
	}
}

// GetOrderDetails pedido del usuario con sus líneas. Un pedido ajeno se reporta como inexistente.
func (uc *UseCase) GetOrderDetails(ctx context.Context, userID, orderCode string) (*dto.OrderDetailResponse, error) {
	o, err := uc.orderRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(orderCode)))
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderDetailResponse{
		OrderCode: o.OrderCode,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		Items:     make([]dto.OrderItemResponse, 0, len(items)),
		Total:     decimal.Zero,
	}
	for _, it := range items {
		sub := it.Subtotal()
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    sub,
		})
		out.Total = out.Total.Add(sub)
	}
	return out, nil
}

// ListMyOrders pedidos del usuario, más recientes primero.
func (uc *UseCase) ListMyOrders(ctx context.Context, userID string) ([]dto.OrderSummaryResponse, error) {
	sums, err := uc.orderRepo.ListSummariesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderSummaryResponse, 0, len(sums))
	for _, s := range sums {
		out = append(out, dto.OrderSummaryResponse{
			OrderCode:     s.OrderCode,
			Address:       s.Address,
			CreatedAt:     s.CreatedAt,
			TotalPrice:    s.TotalPrice,
			TotalProducts: s.TotalProducts,
			TotalQuantity: s.TotalQuantity,
		})
	}
	return out, nil
}
