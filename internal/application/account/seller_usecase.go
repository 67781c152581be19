package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/domain"
	domainaccount "github.com/mrvekratl/BE124/internal/domain/account"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/mrvekratl/BE124/pkg/logger"
)

// SellerUseCase flujo Buyer -> PendingSellerApproval -> Seller (o de vuelta a Buyer si se rechaza).
type SellerUseCase struct {
	tx          TxRunner
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	requestRepo repository.SellerRequestRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewSellerUseCase construye el caso de uso.
func NewSellerUseCase(
	tx TxRunner,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	requestRepo repository.SellerRequestRepository,
	log *logger.Logger,
) *SellerUseCase {
	return &SellerUseCase{tx: tx, userRepo: userRepo, roleRepo: roleRepo, requestRepo: requestRepo, log: log, now: time.Now}
}

// SubmitSellerRequest registra la solicitud y marca al usuario como pendiente, en una transacción.
func (uc *SellerUseCase) SubmitSellerRequest(ctx context.Context, userID, message string) error {
	msg, err := domainaccount.NormalizeSellerMessage(message)
	if err != nil {
		return err
	}
	err = uc.tx.RunAccount(ctx, func(userRepo repository.UserRepository, requestRepo repository.SellerRequestRepository) error {
		u, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		from := u.SellerState()
		if err := domainaccount.Submit(u); err != nil {
			return err
		}
		now := uc.now()
		if err := userRepo.TransitionSellerState(ctx, userID, from, u.SellerState(), now); err != nil {
			return err
		}
		req := &entity.SellerRequest{ID: uuid.New().String(), UserID: userID, Message: msg, CreatedAt: now}
		if err := requestRepo.Create(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("%w: ya existe una solicitud pendiente", domain.ErrInvalidState)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uc.txError("submit", userID, err)
	}
	uc.log.Info().Str("user_id", userID).Msg("solicitud de vendedor registrada")
	return nil
}

// ApproveSellerRequest promueve al usuario a Seller. Solo administradores.
func (uc *SellerUseCase) ApproveSellerRequest(ctx context.Context, adminID, targetUserID string) error {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	role, err := uc.roleRepo.GetByName(ctx, entity.RoleNameSeller)
	if err != nil {
		return err
	}
	return uc.resolve(ctx, adminID, targetUserID, true, func(u *entity.User) error {
		if err := domainaccount.Approve(u); err != nil {
			return err
		}
		if role == nil {
			uc.log.Error().Msg("rol Seller ausente en la tabla roles")
			return fmt.Errorf("%w: rol %s", domain.ErrNotFound, entity.RoleNameSeller)
		}
		u.Role = role.ID
		return nil
	})
}

// RejectSellerRequest devuelve al usuario a Buyer y cierra la solicitud sin aprobar. Solo administradores.
func (uc *SellerUseCase) RejectSellerRequest(ctx context.Context, adminID, targetUserID string) error {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return uc.resolve(ctx, adminID, targetUserID, false, domainaccount.Reject)
}

// ListPendingSellerRequests solicitudes sin resolver, más antiguas primero. Solo administradores.
func (uc *SellerUseCase) ListPendingSellerRequests(ctx context.Context, adminID string) ([]dto.SellerRequestResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	reqs, err := uc.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.SellerRequestResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			UserEmail: r.UserEmail,
			UserName:  r.UserName,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

func (uc *SellerUseCase) resolve(ctx context.Context, adminID, targetUserID string, approved bool, transition func(*entity.User) error) error {
	err := uc.tx.RunAccount(ctx, func(userRepo repository.UserRepository, requestRepo repository.SellerRequestRepository) error {
		u, err := userRepo.GetByID(ctx, targetUserID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		from := u.SellerState()
		if err := transition(u); err != nil {
			return err
		}
		now := uc.now()
		if err := userRepo.TransitionSellerState(ctx, targetUserID, from, u.SellerState(), now); err != nil {
			return err
		}
		req, err := requestRepo.GetPendingByUser(ctx, targetUserID)
		if err != nil {
			return err
		}
		if req != nil {
			req.IsApproved = approved
			req.ResolvedAt = &now
			if err := requestRepo.Resolve(ctx, req); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uc.txError("resolve", targetUserID, err)
	}
	uc.log.Info().Str("admin_id", adminID).Str("user_id", targetUserID).Bool("approved", approved).Msg("solicitud de vendedor resuelta")
	return nil
}

func (uc *SellerUseCase) requireAdmin(ctx context.Context, adminID string) error {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin == nil || admin.Role != entity.RoleAdmin || !admin.Enabled {
		return domain.ErrForbidden
	}
	return nil
}

// txError deja pasar los errores de dominio y oculta los de almacenamiento.
func (uc *SellerUseCase) txError(op, userID string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Str("user_id", userID).Msg("solicitud de vendedor: transacción revertida")
	return domain.ErrTransactionAborted
}
