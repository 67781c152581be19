package account

import (
	"github.com/mrvekratl/BE124/internal/application/dto"
	domainaccount "github.com/mrvekratl/BE124/internal/domain/account"
	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// ToUserResponse convierte la entidad en DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Role:             u.Role.Claim(),
		Enabled:          u.Enabled,
		HasSellerRequest: u.HasSellerRequest,
		AccountState:     domainaccount.StateOf(u).String(),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
