package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/usecase"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary  Usuarios (sin administradores)
// @Tags     admin
// @Produce  json
// @Success  200  {object}  dto.UserListResponse
// @Router   /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Enable godoc
// @Summary  Habilitar usuario
// @Tags     admin
// @Param    id  path  string  true  "ID del usuario"
// @Success  204
// @Router   /api/admin/users/{id}/enable [post]
func (h *UserHandler) Enable(c *fiber.Ctx) error {
	if err := h.uc.EnableUser(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Disable godoc
// @Summary  Deshabilitar usuario
// @Tags     admin
// @Param    id  path  string  true  "ID del usuario"
// @Success  204
// @Router   /api/admin/users/{id}/disable [post]
func (h *UserHandler) Disable(c *fiber.Ctx) error {
	if err := h.uc.DisableUser(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
