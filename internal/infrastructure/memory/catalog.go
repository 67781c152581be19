package memory

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CategoryRepository     = (*CategoryRepo)(nil)
	_ repository.DiscountRepository     = (*DiscountRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ProductImageRepository = (*ProductImageRepo)(nil)
	_ repository.CommentRepository      = (*CommentRepo)(nil)
	_ repository.ContactRepository      = (*ContactRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.s.guard(r.inTx)()
	for _, existing := range r.s.data.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.data.categories[c.ID] = &cp
	r.s.track(c.ID)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.s.guard(r.inTx)()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.data.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.data.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	defer r.s.guard(r.inTx)()
	ids := make([]string, 0, len(r.s.data.categories))
	for id := range r.s.data.categories {
		ids = append(ids, id)
	}
	r.s.sortByInsertion(ids, false)
	out := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.data.categories[id]
		out = append(out, &cp)
	}
	return out, nil
}

// DiscountRepo descuentos en memoria (solo lectura; se siembran con Store.SeedDiscount).
type DiscountRepo struct {
	s    *Store
	inTx bool
}

// NewDiscountRepository construye el repositorio de descuentos.
func NewDiscountRepository(s *Store) *DiscountRepo { return &DiscountRepo{s: s} }

func (r *DiscountRepo) GetByID(_ context.Context, id string) (*entity.Discount, error) {
	defer r.s.guard(r.inTx)()
	d, ok := r.s.data.discounts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *DiscountRepo) List(_ context.Context) ([]*entity.Discount, error) {
	defer r.s.guard(r.inTx)()
	ids := make([]string, 0, len(r.s.data.discounts))
	for id := range r.s.data.discounts {
		ids = append(ids, id)
	}
	r.s.sortByInsertion(ids, false)
	out := make([]*entity.Discount, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.data.discounts[id]
		out = append(out, &cp)
	}
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// NewProductRepository construye el repositorio de productos.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	cp := *p
	r.s.data.products[p.ID] = &cp
	r.s.track(p.ID)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.data.products[p.ID] = &cp
	return nil
}

// Delete elimina el producto con sus imágenes, reseñas y líneas de carrito.
// Un producto con pedidos no puede eliminarse (ErrConflict), igual que la FK en PostgreSQL.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.data.orderItems {
		if it.ProductID == id {
			return domain.ErrConflict
		}
	}
	for k, img := range r.s.data.images {
		if img.ProductID == id {
			delete(r.s.data.images, k)
		}
	}
	for k, c := range r.s.data.comments {
		if c.ProductID == id {
			delete(r.s.data.comments, k)
		}
	}
	for k, ci := range r.s.data.cart {
		if ci.ProductID == id {
			delete(r.s.data.cart, k)
		}
	}
	delete(r.s.data.products, id)
	return nil
}

func (r *ProductRepo) ListEnabled(_ context.Context, limit, offset int) ([]*entity.ProductListing, int, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, p := range r.s.data.products {
		if p.Enabled {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, true)
	var out []*entity.ProductListing
	for _, id := range page(ids, limit, offset) {
		p := r.s.data.products[id]
		l := &entity.ProductListing{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			DiscountRate: r.s.discountRate(p.DiscountID),
			ImageURL:     r.s.firstImage(p.ID),
		}
		if c, ok := r.s.data.categories[p.CategoryID]; ok {
			l.CategoryName = c.Name
		}
		out = append(out, l)
	}
	return out, len(ids), nil
}

func (r *ProductRepo) GetDetail(_ context.Context, id string) (*entity.ProductDetail, error) {
	defer r.s.guard(r.inTx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	d := &entity.ProductDetail{Product: *p, DiscountRate: r.s.discountRate(p.DiscountID)}
	if c, ok := r.s.data.categories[p.CategoryID]; ok {
		d.CategoryName = c.Name
	}
	if u, ok := r.s.data.users[p.SellerID]; ok {
		d.SellerName = u.FullName()
	}
	for _, img := range r.s.imagesOf(p.ID) {
		d.ImageURLs = append(d.ImageURLs, img.URL)
	}
	return d, nil
}

func (r *ProductRepo) ListBySeller(_ context.Context, sellerID string) ([]*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, p := range r.s.data.products {
		if p.SellerID == sellerID {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, true)
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.data.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepo) ListAll(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	ids := make([]string, 0, len(r.s.data.products))
	for id := range r.s.data.products {
		ids = append(ids, id)
	}
	r.s.sortByInsertion(ids, true)
	var out []*entity.Product
	for _, id := range page(ids, limit, offset) {
		cp := *r.s.data.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) discountRate(id string) *decimal.Decimal {
	if id == "" {
		return nil
	}
	d, ok := s.data.discounts[id]
	if !ok || !d.Enabled {
		return nil
	}
	rate := d.Rate
	return &rate
}

func (s *Store) imagesOf(productID string) []*entity.ProductImage {
	var ids []string
	for id, img := range s.data.images {
		if img.ProductID == productID {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids, false)
	out := make([]*entity.ProductImage, 0, len(ids))
	for _, id := range ids {
		cp := *s.data.images[id]
		out = append(out, &cp)
	}
	return out
}

func (s *Store) firstImage(productID string) string {
	if imgs := s.imagesOf(productID); len(imgs) > 0 {
		return imgs[0].URL
	}
	return ""
}

// ProductImageRepo imágenes en memoria.
type ProductImageRepo struct {
	s    *Store
	inTx bool
}

// NewProductImageRepository construye el repositorio de imágenes.
func NewProductImageRepository(s *Store) *ProductImageRepo { return &ProductImageRepo{s: s} }

func (r *ProductImageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.products[img.ProductID]; !ok {
		return domain.ErrNotFound
	}
	cp := *img
	r.s.data.images[img.ID] = &cp
	r.s.track(img.ID)
	return nil
}

func (r *ProductImageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	defer r.s.guard(r.inTx)()
	return r.s.imagesOf(productID), nil
}

func (r *ProductImageRepo) DeleteByProduct(_ context.Context, productID string) error {
	defer r.s.guard(r.inTx)()
	for k, img := range r.s.data.images {
		if img.ProductID == productID {
			delete(r.s.data.images, k)
		}
	}
	return nil
}

// CommentRepo reseñas en memoria.
type CommentRepo struct {
	s    *Store
	inTx bool
}

// NewCommentRepository construye el repositorio de reseñas.
func NewCommentRepository(s *Store) *CommentRepo { return &CommentRepo{s: s} }

func (r *CommentRepo) Create(_ context.Context, c *entity.ProductComment) error {
	defer r.s.guard(r.inTx)()
	for _, existing := range r.s.data.comments {
		if existing.UserID == c.UserID && existing.ProductID == c.ProductID {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.data.comments[c.ID] = &cp
	r.s.track(c.ID)
	return nil
}

func (r *CommentRepo) GetByID(_ context.Context, id string) (*entity.ProductComment, error) {
	defer r.s.guard(r.inTx)()
	c, ok := r.s.data.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CommentRepo) ListConfirmedByProduct(_ context.Context, productID string) ([]*entity.ProductReview, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, c := range r.s.data.comments {
		if c.ProductID == productID && c.IsConfirmed {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, true)
	out := make([]*entity.ProductReview, 0, len(ids))
	for _, id := range ids {
		c := r.s.data.comments[id]
		rv := &entity.ProductReview{ID: c.ID, Text: c.Text, StarCount: c.StarCount, CreatedAt: c.CreatedAt}
		if u, ok := r.s.data.users[c.UserID]; ok {
			rv.UserName = u.FullName()
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *CommentRepo) List(_ context.Context, limit, offset int) ([]*entity.ProductComment, error) {
	defer r.s.guard(r.inTx)()
	ids := make([]string, 0, len(r.s.data.comments))
	for id := range r.s.data.comments {
		ids = append(ids, id)
	}
	r.s.sortByInsertion(ids, true)
	var out []*entity.ProductComment
	for _, id := range page(ids, limit, offset) {
		cp := *r.s.data.comments[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *CommentRepo) Confirm(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	c, ok := r.s.data.comments[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsConfirmed = true
	return nil
}

// ContactRepo formulario de contacto en memoria.
type ContactRepo struct {
	s    *Store
	inTx bool
}

// NewContactRepository construye el repositorio de contacto.
func NewContactRepository(s *Store) *ContactRepo { return &ContactRepo{s: s} }

func (r *ContactRepo) Create(_ context.Context, f *entity.ContactForm) error {
	defer r.s.guard(r.inTx)()
	cp := *f
	r.s.data.contacts[f.ID] = &cp
	r.s.track(f.ID)
	return nil
}

func (r *ContactRepo) List(_ context.Context, limit, offset int) ([]*entity.ContactForm, error) {
	defer r.s.guard(r.inTx)()
	ids := make([]string, 0, len(r.s.data.contacts))
	for id := range r.s.data.contacts {
		ids = append(ids, id)
	}
	r.s.sortByInsertion(ids, true)
	var out []*entity.ContactForm
	for _, id := range page(ids, limit, offset) {
		cp := *r.s.data.contacts[id]
		out = append(out, &cp)
	}
	return out, nil
}
