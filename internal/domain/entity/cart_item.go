package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea de carrito (usuario, producto, cantidad). Única por (UserID, ProductID).
// Version se incrementa en cada escritura y se usa para control optimista.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine línea de carrito unida con los datos actuales del producto.
type CartLine struct {
	CartItem
	ProductName  string
	UnitPrice    decimal.Decimal // precio actual del producto, no bloqueado
	ImageURL     string          // primera imagen; vacío si no tiene
	StockAmount  int
}

// Subtotal cantidad * precio actual.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
