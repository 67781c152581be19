package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/usecase"
)

// CatalogHandler categorías, reseñas y formulario de contacto.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	comments   *usecase.CommentUseCase
	contact    *usecase.ContactUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, comments *usecase.CommentUseCase, contact *usecase.ContactUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, comments: comments, contact: contact}
}

// ListCategories godoc
// @Summary  Categorías
// @Tags     categories
// @Produce  json
// @Success  200  {array}  dto.CategoryResponse
// @Router   /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary  Crear categoría
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CategoryRequest  true  "categoría"
// @Success  201  {object}  dto.CategoryResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary  Modificar categoría
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id    path  string               true  "ID de la categoría"
// @Param    body  body  dto.CategoryRequest  true  "categoría"
// @Success  200  {object}  dto.CategoryResponse
// @Router   /api/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary  Eliminar categoría sin productos
// @Tags     admin
// @Param    id  path  string  true  "ID de la categoría"
// @Success  204
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment godoc
// @Summary  Reseñar un producto (queda pendiente de aprobación)
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    id    path  string              true  "ID del producto"
// @Param    body  body  dto.CommentRequest  true  "reseña"
// @Success  201  {object}  dto.CommentResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/products/{id}/comments [post]
func (h *CatalogHandler) AddComment(c *fiber.Ctx) error {
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.comments.AddComment(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListComments godoc
// @Summary  Reseñas para moderar
// @Tags     admin
// @Produce  json
// @Success  200  {array}  dto.CommentResponse
// @Router   /api/admin/comments [get]
func (h *CatalogHandler) ListComments(c *fiber.Ctx) error {
	out, err := h.comments.ListComments(c.UserContext(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveComment godoc
// @Summary  Aprobar reseña
// @Tags     admin
// @Param    id  path  string  true  "ID de la reseña"
// @Success  204
// @Router   /api/admin/comments/{id}/approve [post]
func (h *CatalogHandler) ApproveComment(c *fiber.Ctx) error {
	if err := h.comments.ApproveComment(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitContact godoc
// @Summary  Enviar mensaje de contacto
// @Tags     contact
// @Accept   json
// @Param    body  body  dto.ContactRequest  true  "mensaje"
// @Success  202
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /api/contact [post]
func (h *CatalogHandler) SubmitContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.contact.SubmitContact(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ListContact godoc
// @Summary  Mensajes de contacto recibidos
// @Tags     admin
// @Produce  json
// @Success  200  {array}  dto.ContactResponse
// @Router   /api/admin/contact [get]
func (h *CatalogHandler) ListContact(c *fiber.Ctx) error {
	out, err := h.contact.ListMessages(c.UserContext(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
