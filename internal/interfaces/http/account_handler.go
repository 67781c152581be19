package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/dto"
)

// AccountHandler perfil propio y solicitud de vendedor.
type AccountHandler struct {
	profile *account.ProfileUseCase
	seller  *account.SellerUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(profile *account.ProfileUseCase, seller *account.SellerUseCase) *AccountHandler {
	return &AccountHandler{profile: profile, seller: seller}
}

// GetProfile godoc
// @Summary  Perfil del usuario autenticado
// @Tags     profile
// @Produce  json
// @Success  200  {object}  dto.UserResponse
// @Router   /api/profile [get]
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.profile.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EditProfile godoc
// @Summary  Editar nombre y, si change_password es true, la contraseña
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    body  body  dto.EditProfileRequest  true  "datos del perfil"
// @Success  200   {object}  dto.UserResponse
// @Failure  400   {object}  dto.ErrorResponse
// @Router   /api/profile [put]
func (h *AccountHandler) EditProfile(c *fiber.Ctx) error {
	var in dto.EditProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.profile.EditProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitSellerRequest godoc
// @Summary  Solicitar ser vendedor
// @Tags     profile
// @Accept   json
// @Param    body  body  dto.SellerRequestInput  true  "mensaje"
// @Success  202
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/profile/seller-request [post]
func (h *AccountHandler) SubmitSellerRequest(c *fiber.Ctx) error {
	var in dto.SellerRequestInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.seller.SubmitSellerRequest(c.UserContext(), GetUserID(c), in.Message); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ListSellerRequests godoc
// @Summary  Solicitudes de vendedor pendientes
// @Tags     admin
// @Produce  json
// @Success  200  {array}  dto.SellerRequestResponse
// @Router   /api/admin/seller-requests [get]
func (h *AccountHandler) ListSellerRequests(c *fiber.Ctx) error {
	out, err := h.seller.ListPendingSellerRequests(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveSellerRequest godoc
// @Summary  Aprobar la solicitud pendiente de un usuario
// @Tags     admin
// @Param    userId  path  string  true  "ID del usuario"
// @Success  204
// @Router   /api/admin/seller-requests/{userId}/approve [post]
func (h *AccountHandler) ApproveSellerRequest(c *fiber.Ctx) error {
	if err := h.seller.ApproveSellerRequest(c.UserContext(), GetUserID(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectSellerRequest godoc
// @Summary  Rechazar la solicitud pendiente de un usuario
// @Tags     admin
// @Param    userId  path  string  true  "ID del usuario"
// @Success  204
// @Router   /api/admin/seller-requests/{userId}/reject [post]
func (h *AccountHandler) RejectSellerRequest(c *fiber.Ctx) error {
	if err := h.seller.RejectSellerRequest(c.UserContext(), GetUserID(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
