package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea de pedido. UnitPrice es el precio del producto al momento de crear el pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// OrderItemView línea de pedido con el nombre del producto (lectura).
type OrderItemView struct {
	OrderItem
	ProductName string
}

// Subtotal cantidad * precio capturado.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
