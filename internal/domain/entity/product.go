package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado por un vendedor.
// StockAmount no se descuenta al crear pedidos.
type Product struct {
	ID          string
	SellerID    string
	CategoryID  string
	DiscountID  string // vacío si no tiene descuento
	Name        string
	Description string
	Price       decimal.Decimal
	StockAmount int
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductListing proyección de lectura para el listado público.
type ProductListing struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	CategoryName string
	DiscountRate *decimal.Decimal
	ImageURL     string
}

// ProductDetail proyección de lectura para la ficha de producto.
type ProductDetail struct {
	Product
	CategoryName string
	SellerName   string
	DiscountRate *decimal.Decimal
	ImageURLs    []string
}
