package repository

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Category, error)
}

// DiscountRepository datos de referencia de descuentos.
type DiscountRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Discount, error)
	List(ctx context.Context) ([]*entity.Discount, error)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// ListEnabled listado público (solo habilitados) con categoría, descuento y primera imagen.
	ListEnabled(ctx context.Context, limit, offset int) ([]*entity.ProductListing, int, error)
	// GetDetail ficha completa de un producto; (nil, nil) si no existe.
	GetDetail(ctx context.Context, id string) (*entity.ProductDetail, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}

// ProductImageRepository imágenes de producto.
type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
	DeleteByProduct(ctx context.Context, productID string) error
}

// CommentRepository reseñas de productos.
type CommentRepository interface {
	// Create falla con domain.ErrDuplicate si el usuario ya comentó el producto.
	Create(ctx context.Context, comment *entity.ProductComment) error
	GetByID(ctx context.Context, id string) (*entity.ProductComment, error)
	ListConfirmedByProduct(ctx context.Context, productID string) ([]*entity.ProductReview, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ProductComment, error)
	Confirm(ctx context.Context, id string) error
}

// ContactRepository mensajes del formulario de contacto.
type ContactRepository interface {
	Create(ctx context.Context, form *entity.ContactForm) error
	List(ctx context.Context, limit, offset int) ([]*entity.ContactForm, error)
}
