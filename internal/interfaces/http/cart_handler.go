package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/cart"
	"github.com/mrvekratl/BE124/internal/application/dto"
)

// CartHandler carrito del usuario autenticado.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// List godoc
// @Summary  Ver carrito
// @Tags     cart
// @Produce  json
// @Success  200  {object}  dto.CartResponse
// @Router   /api/cart [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListCart(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary  Agregar producto (o sumar 1 si ya está)
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    body  body  dto.AddToCartRequest  true  "producto"
// @Success  200   {object}  dto.CartLineResponse
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.AddToCart(c.UserContext(), GetUserID(c), in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary  Cambiar la cantidad de una línea (0 la elimina)
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    id    path  string                         true  "ID de la línea"
// @Param    body  body  dto.UpdateCartQuantityRequest  true  "cantidad"
// @Success  200   {object}  dto.UpdateCartQuantityResponse
// @Failure  409   {object}  dto.ErrorResponse
// @Router   /api/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateCartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetUserID(c), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary  Quitar una línea del carrito
// @Tags     cart
// @Param    id  path  string  true  "ID de la línea"
// @Success  204
// @Router   /api/cart/items/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
