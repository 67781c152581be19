package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ImageUpload archivo recibido por multipart; el adaptador HTTP lo abre y lo cierra.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" form:"category_id" validate:"required,uuid"`
	DiscountID  string          `json:"discount_id" form:"discount_id" validate:"omitempty,uuid"`
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	StockAmount int             `json:"stock_amount" form:"stock_amount"`
	Enabled     bool            `json:"enabled" form:"enabled"`
	Images      []ImageUpload   `json:"-" form:"-"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se tocan.
// Si Images no está vacío reemplaza las imágenes actuales.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	DiscountID  *string          `json:"discount_id"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	StockAmount *int             `json:"stock_amount"`
	Enabled     *bool            `json:"enabled"`
	Images      []ImageUpload    `json:"-"`
}

// ProductResponse salida de un producto (vista del vendedor / administración).
type ProductResponse struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	CategoryID  string          `json:"category_id"`
	DiscountID  string          `json:"discount_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockAmount int             `json:"stock_amount"`
	Enabled     bool            `json:"enabled"`
	ImageURLs   []string        `json:"image_urls,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductCardResponse tarjeta de producto del listado público.
type ProductCardResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	CategoryName string           `json:"category_name"`
	DiscountRate *decimal.Decimal `json:"discount_rate,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
}

// ProductCatalogResponse listado público paginado.
type ProductCatalogResponse struct {
	Items []ProductCardResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReviewResponse reseña confirmada.
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	StarCount int       `json:"star_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailResponse ficha pública de producto.
type ProductDetailResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	StockAmount  int              `json:"stock_amount"`
	CategoryName string           `json:"category_name"`
	SellerName   string           `json:"seller_name"`
	DiscountRate *decimal.Decimal `json:"discount_rate,omitempty"`
	ImageURLs    []string         `json:"image_urls"`
	Reviews      []ReviewResponse `json:"reviews"`
}
