package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order cabecera de pedido. Inmutable una vez creada.
type Order struct {
	ID        string
	UserID    string
	Address   string
	OrderCode string // 16 caracteres hexadecimales en mayúscula
	CreatedAt time.Time
}

// OrderSummary resumen de pedido para el listado "mis pedidos".
type OrderSummary struct {
	OrderCode     string
	Address       string
	CreatedAt     time.Time
	TotalPrice    decimal.Decimal
	TotalProducts int
	TotalQuantity int
}
