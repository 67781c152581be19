package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/ports"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/pkg/logger"
)

// allowedImageExt extensiones aceptadas para imágenes de producto.
var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// CatalogTxRunner ejecuta fn en una transacción con repos de productos e imágenes.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
	) error) error
}

// ProductUseCase catálogo público y gestión de productos por vendedores y administradores.
type ProductUseCase struct {
	tx           CatalogTxRunner
	repo         repository.ProductRepository
	imageRepo    repository.ProductImageRepository
	categoryRepo repository.CategoryRepository
	discountRepo repository.DiscountRepository
	commentRepo  repository.CommentRepository
	storage      ports.ImageStorage
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx CatalogTxRunner,
	repo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	categoryRepo repository.CategoryRepository,
	discountRepo repository.DiscountRepository,
	commentRepo repository.CommentRepository,
	storage ports.ImageStorage,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		tx:           tx,
		repo:         repo,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		discountRepo: discountRepo,
		commentRepo:  commentRepo,
		storage:      storage,
		log:          log,
	}
}

// ListProducts listado público: solo productos habilitados.
func (uc *ProductUseCase) ListProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductCatalogResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.ListEnabled(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductCardResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductCardResponse{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			CategoryName: p.CategoryName,
			DiscountRate: p.DiscountRate,
			ImageURL:     p.ImageURL,
		})
	}
	return &dto.ProductCatalogResponse{
		Items: items,
		Page:  page.Response(total),
	}, nil
}

// GetProductDetail ficha pública con imágenes, vendedor y reseñas confirmadas.
// Un producto deshabilitado se reporta como inexistente.
func (uc *ProductUseCase) GetProductDetail(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	d, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.Enabled {
		return nil, domain.ErrNotFound
	}
	reviews, err := uc.commentRepo.ListConfirmedByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		StockAmount:  d.StockAmount,
		CategoryName: d.CategoryName,
		SellerName:   d.SellerName,
		DiscountRate: d.DiscountRate,
		ImageURLs:    append([]string{}, d.ImageURLs...),
		Reviews:      make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, dto.ReviewResponse{
			ID: r.ID, UserName: r.UserName, Text: r.Text, StarCount: r.StarCount, CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// CreateProduct publica un producto del vendedor autenticado junto con sus imágenes.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, role entity.Role, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if role != entity.RoleSeller {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}
	if in.Price.IsNegative() || in.StockAmount < 0 {
		return nil, fmt.Errorf("%w: precio y stock no pueden ser negativos", domain.ErrValidation)
	}
	if err := uc.checkReferences(ctx, in.CategoryID, in.DiscountID); err != nil {
		return nil, err
	}

	urls, err := uc.saveImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		CategoryID:  in.CategoryID,
		DiscountID:  in.DiscountID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		StockAmount: in.StockAmount,
		Enabled:     in.Enabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, imageRepo repository.ProductImageRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return createImages(ctx, imageRepo, product.ID, urls, now)
	})
	if err != nil {
		uc.discardImages(ctx, urls)
		return nil, err
	}
	return toProductResponse(product, urls), nil
}

// UpdateProduct modifica un producto propio. Si llegan imágenes nuevas reemplazan a las actuales.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, sellerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrValidation)
		}
		product.Price = *in.Price
	}
	if in.StockAmount != nil {
		if *in.StockAmount < 0 {
			return nil, fmt.Errorf("%w: stock negativo", domain.ErrValidation)
		}
		product.StockAmount = *in.StockAmount
	}
	if in.Enabled != nil {
		product.Enabled = *in.Enabled
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.DiscountID != nil {
		product.DiscountID = *in.DiscountID
	}
	if err := uc.checkReferences(ctx, product.CategoryID, product.DiscountID); err != nil {
		return nil, err
	}

	oldImages, err := uc.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	urls, err := uc.saveImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product.UpdatedAt = now
	err = uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, imageRepo repository.ProductImageRepository) error {
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		if len(urls) == 0 {
			return nil
		}
		if err := imageRepo.DeleteByProduct(ctx, product.ID); err != nil {
			return err
		}
		return createImages(ctx, imageRepo, product.ID, urls, now)
	})
	if err != nil {
		uc.discardImages(ctx, urls)
		return nil, err
	}

	current := urls
	if len(urls) > 0 {
		uc.discardImages(ctx, imageURLs(oldImages))
	} else {
		current = imageURLs(oldImages)
	}
	return toProductResponse(product, current), nil
}

// DeleteProduct elimina un producto propio; un administrador puede eliminar cualquiera.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID string, role entity.Role, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if role != entity.RoleAdmin && product.SellerID != userID {
		return domain.ErrForbidden
	}
	images, err := uc.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.discardImages(ctx, imageURLs(images))
	return nil
}

// ListMyProducts productos del vendedor, más recientes primero.
func (uc *ProductUseCase) ListMyProducts(ctx context.Context, sellerID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return uc.withImages(ctx, list)
}

// ListAllProducts listado de administración (incluye deshabilitados).
func (uc *ProductUseCase) ListAllProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListAll(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items, err := uc.withImages(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: items, Page: page.Response(0)}, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, sellerID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, categoryID, discountID string) error {
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: categoría inexistente", domain.ErrValidation)
	}
	if discountID == "" {
		return nil
	}
	discount, err := uc.discountRepo.GetByID(ctx, discountID)
	if err != nil {
		return err
	}
	if discount == nil {
		return fmt.Errorf("%w: descuento inexistente", domain.ErrValidation)
	}
	return nil
}

// saveImages guarda los archivos como <uuid><ext> y devuelve sus URLs.
func (uc *ProductUseCase) saveImages(ctx context.Context, uploads []dto.ImageUpload) ([]string, error) {
	for _, up := range uploads {
		if !allowedImageExt[strings.ToLower(filepath.Ext(up.Filename))] {
			return nil, fmt.Errorf("%w: formato de imagen no soportado (%s)", domain.ErrValidation, up.Filename)
		}
	}
	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		name := uuid.New().String() + strings.ToLower(filepath.Ext(up.Filename))
		url, err := uc.storage.Save(ctx, name, up.Content)
		if err != nil {
			uc.discardImages(ctx, urls)
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *ProductUseCase) discardImages(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := uc.storage.Delete(ctx, u); err != nil {
			uc.log.Warn().Err(err).Str("url", u).Msg("no se pudo borrar la imagen")
		}
	}
}

func (uc *ProductUseCase) withImages(ctx context.Context, list []*entity.Product) ([]dto.ProductResponse, error) {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		images, err := uc.imageRepo.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toProductResponse(p, imageURLs(images)))
	}
	return items, nil
}

func createImages(ctx context.Context, repo repository.ProductImageRepository, productID string, urls []string, now time.Time) error {
	for _, u := range urls {
		img := &entity.ProductImage{ID: uuid.New().String(), ProductID: productID, URL: u, CreatedAt: now}
		if err := repo.Create(ctx, img); err != nil {
			return err
		}
	}
	return nil
}

func imageURLs(images []*entity.ProductImage) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.URL)
	}
	return out
}

func toProductResponse(p *entity.Product, urls []string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		CategoryID:  p.CategoryID,
		DiscountID:  p.DiscountID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		StockAmount: p.StockAmount,
		Enabled:     p.Enabled,
		ImageURLs:   urls,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
