package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount descuento porcentual asignable a productos (dato de referencia).
type Discount struct {
	ID        string
	Rate      decimal.Decimal // porcentaje, ej. 15 = 15%
	Enabled   bool
	CreatedAt time.Time
}
