package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest producto a agregar (o incrementar en 1).
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartLineResponse línea del carrito con precio actual.
type CartLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo; Total a precios actuales.
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// UpdateCartQuantityRequest nueva cantidad de una línea (0 la elimina).
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartQuantityResponse resultado: la línea actualizada o Removed=true.
type UpdateCartQuantityResponse struct {
	Removed bool              `json:"removed"`
	Line    *CartLineResponse `json:"line,omitempty"`
}

// PlaceOrderRequest datos de checkout.
type PlaceOrderRequest struct {
	Address string `json:"address" validate:"required,max=250"`
}

// PlaceOrderResponse código del pedido creado.
type PlaceOrderResponse struct {
	OrderCode string `json:"order_code"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderDetailResponse pedido con sus líneas.
type OrderDetailResponse struct {
	OrderCode string              `json:"order_code"`
	Address   string              `json:"address"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
}

// OrderSummaryResponse fila del listado "mis pedidos".
type OrderSummaryResponse struct {
	OrderCode     string          `json:"order_code"`
	Address       string          `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalProducts int             `json:"total_products"`
	TotalQuantity int             `json:"total_quantity"`
}
