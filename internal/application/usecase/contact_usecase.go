package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	domainaccount "github.com/mrvekratl/BE124/internal/domain/account"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// ContactUseCase formulario de contacto.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// SubmitContact guarda un mensaje; nombre, email y mensaje son obligatorios.
func (uc *ContactUseCase) SubmitContact(ctx context.Context, in dto.ContactRequest) error {
	name := strings.TrimSpace(in.Name)
	msg := strings.TrimSpace(in.Message)
	if name == "" || msg == "" {
		return fmt.Errorf("%w: nombre y mensaje son obligatorios", domain.ErrValidation)
	}
	email, err := domainaccount.NormalizeEmail(in.Email)
	if err != nil {
		return err
	}
	return uc.repo.Create(ctx, &entity.ContactForm{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Message:   msg,
		CreatedAt: time.Now(),
	})
}

// ListMessages mensajes recibidos, más recientes primero (administración).
func (uc *ContactUseCase) ListMessages(ctx context.Context, page dto.PageRequest) ([]dto.ContactResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.ContactResponse{ID: f.ID, Name: f.Name, Email: f.Email, Message: f.Message, CreatedAt: f.CreatedAt})
	}
	return out, nil
}
