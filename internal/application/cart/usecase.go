// Package cart casos de uso del carrito de compras.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	domaincart "github.com/mrvekratl/BE124/internal/domain/cart"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase consolidación del carrito: agregar, cambiar cantidad, quitar y listar.
type UseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	policy      domaincart.QuantityPolicy
}

// NewUseCase construye el caso de uso con la política de cantidades configurada.
func NewUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, policy domaincart.QuantityPolicy) *UseCase {
	return &UseCase{cartRepo: cartRepo, productRepo: productRepo, policy: policy}
}

// AddToCart agrega una unidad del producto; si ya estaba en el carrito incrementa la línea existente.
func (uc *UseCase) AddToCart(ctx context.Context, userID, productID string) (*dto.CartLineResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Enabled {
		return nil, domain.ErrNotFound
	}
	item, err := uc.cartRepo.AddOrIncrement(ctx, userID, productID, domaincart.MaxQuantity)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: máximo %d unidades por producto", domain.ErrValidation, domaincart.MaxQuantity)
		}
		return nil, err
	}
	line, err := uc.cartRepo.GetLine(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	return toLineResponse(line), nil
}

// UpdateQuantity fija la cantidad de una línea propia. Cantidad 0 elimina la línea.
func (uc *UseCase) UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (*dto.UpdateCartQuantityResponse, error) {
	line, err := uc.ownedLine(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}
	qty, remove, err := uc.policy.Resolve(quantity, line.StockAmount)
	if err != nil {
		return nil, err
	}
	if remove {
		if err := uc.cartRepo.Delete(ctx, line.ID); err != nil {
			return nil, err
		}
		return &dto.UpdateCartQuantityResponse{Removed: true}, nil
	}
	if err := uc.cartRepo.UpdateQuantity(ctx, line.ID, qty, line.Version); err != nil {
		return nil, err
	}
	line.Quantity = qty
	return &dto.UpdateCartQuantityResponse{Line: toLineResponse(line)}, nil
}

// RemoveItem elimina una línea propia.
func (uc *UseCase) RemoveItem(ctx context.Context, userID, cartItemID string) error {
	line, err := uc.ownedLine(ctx, userID, cartItemID)
	if err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, line.ID)
}

// ListCart líneas del usuario con precios actuales y total.
func (uc *UseCase) ListCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	lines, err := uc.cartRepo.ListLinesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		out.Items = append(out.Items, *toLineResponse(l))
		out.Total = out.Total.Add(l.Subtotal())
	}
	return out, nil
}

func (uc *UseCase) ownedLine(ctx context.Context, userID, cartItemID string) (*entity.CartLine, error) {
	line, err := uc.cartRepo.GetLine(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if line.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return line, nil
}

func toLineResponse(l *entity.CartLine) *dto.CartLineResponse {
	return &dto.CartLineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		ImageURL:    l.ImageURL,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal(),
	}
}
