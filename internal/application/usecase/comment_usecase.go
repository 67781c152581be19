package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// CommentUseCase reseñas: alta por compradores, moderación por administradores.
type CommentUseCase struct {
	repo        repository.CommentRepository
	productRepo repository.ProductRepository
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(repo repository.CommentRepository, productRepo repository.ProductRepository) *CommentUseCase {
	return &CommentUseCase{repo: repo, productRepo: productRepo}
}

// AddComment registra una reseña sin confirmar. Una por usuario y producto (ErrDuplicate).
func (uc *CommentUseCase) AddComment(ctx context.Context, userID, productID string, in dto.CommentRequest) (*dto.CommentResponse, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: el comentario es obligatorio", domain.ErrValidation)
	}
	if in.StarCount < entity.MinStarCount || in.StarCount > entity.MaxStarCount {
		return nil, fmt.Errorf("%w: estrellas entre %d y %d", domain.ErrValidation, entity.MinStarCount, entity.MaxStarCount)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Enabled {
		return nil, domain.ErrNotFound
	}
	c := &entity.ProductComment{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Text:      text,
		StarCount: in.StarCount,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

// ListComments todas las reseñas, más recientes primero.
func (uc *CommentUseCase) ListComments(ctx context.Context, page dto.PageRequest) ([]dto.CommentResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCommentResponse(c))
	}
	return out, nil
}

// ApproveComment marca la reseña como confirmada (visible en la ficha del producto).
func (uc *CommentUseCase) ApproveComment(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Confirm(ctx, id)
}

func toCommentResponse(c *entity.ProductComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:          c.ID,
		ProductID:   c.ProductID,
		UserID:      c.UserID,
		Text:        c.Text,
		StarCount:   c.StarCount,
		IsConfirmed: c.IsConfirmed,
		CreatedAt:   c.CreatedAt,
	}
}
