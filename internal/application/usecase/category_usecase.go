package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryUseCase CRUD de categorías (administración) y listado público.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Nombre duplicado -> ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategory(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Color:        in.Color,
		IconCSSClass: in.IconCSSClass,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update reemplaza nombre, color e icono.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategory(&in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name, c.Color, c.IconCSSClass = in.Name, in.Color, in.IconCSSClass
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría sin productos (con productos -> ErrConflict).
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func validateCategory(in *dto.CategoryRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.IconCSSClass = strings.TrimSpace(in.IconCSSClass)
	if in.Name == "" || in.IconCSSClass == "" {
		return fmt.Errorf("%w: nombre e icono son obligatorios", domain.ErrValidation)
	}
	if !hexColor.MatchString(in.Color) {
		return fmt.Errorf("%w: color debe ser #RRGGBB", domain.ErrValidation)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Color:        c.Color,
		IconCSSClass: c.IconCSSClass,
		CreatedAt:    c.CreatedAt,
	}
}
