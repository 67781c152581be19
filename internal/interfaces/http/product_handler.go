package http

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/usecase"
	"github.com/mrvekratl/BE124/internal/domain"
)

// formFieldImages campo multipart con las imágenes del producto.
const formFieldImages = "images"

// ProductHandler catálogo público y gestión de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary  Catálogo público (solo habilitados)
// @Tags     products
// @Produce  json
// @Param    limit   query  int  false  "límite"
// @Param    offset  query  int  false  "desplazamiento"
// @Success  200  {object}  dto.ProductCatalogResponse
// @Router   /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary  Ficha de producto con reseñas aprobadas
// @Tags     products
// @Produce  json
// @Param    id  path  string  true  "ID del producto"
// @Success  200  {object}  dto.ProductDetailResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/products/{id} [get]
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.GetProductDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary  Publicar producto (multipart con campo images)
// @Tags     seller
// @Accept   multipart/form-data
// @Produce  json
// @Success  201  {object}  dto.ProductResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /api/seller/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badBody(c)
	}
	in := dto.CreateProductRequest{
		CategoryID:  formValue(form, "category_id"),
		DiscountID:  formValue(form, "discount_id"),
		Name:        formValue(form, "name"),
		Description: formValue(form, "description"),
	}
	if in.Price, err = parseDecimal(formValue(form, "price")); err != nil {
		return respondError(c, err)
	}
	if in.StockAmount, err = parseInt("stock_amount", formValue(form, "stock_amount")); err != nil {
		return respondError(c, err)
	}
	if in.Enabled, err = parseBool(formValue(form, "enabled"), true); err != nil {
		return respondError(c, err)
	}

	images, closeAll, err := openImages(form)
	if err != nil {
		return respondError(c, err)
	}
	defer closeAll()
	in.Images = images

	out, err := h.uc.CreateProduct(c.UserContext(), GetUserID(c), currentRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary  Modificar producto propio (multipart; solo se aplican los campos presentes)
// @Tags     seller
// @Accept   multipart/form-data
// @Produce  json
// @Param    id  path  string  true  "ID del producto"
// @Success  200  {object}  dto.ProductResponse
// @Router   /api/seller/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badBody(c)
	}
	var in dto.UpdateProductRequest
	in.CategoryID = optionalValue(form, "category_id")
	in.DiscountID = optionalValue(form, "discount_id")
	in.Name = optionalValue(form, "name")
	in.Description = optionalValue(form, "description")
	if v := optionalValue(form, "price"); v != nil {
		price, err := parseDecimal(*v)
		if err != nil {
			return respondError(c, err)
		}
		in.Price = &price
	}
	if v := optionalValue(form, "stock_amount"); v != nil {
		stock, err := parseInt("stock_amount", *v)
		if err != nil {
			return respondError(c, err)
		}
		in.StockAmount = &stock
	}
	if v := optionalValue(form, "enabled"); v != nil {
		enabled, err := parseBool(*v, false)
		if err != nil {
			return respondError(c, err)
		}
		in.Enabled = &enabled
	}

	images, closeAll, err := openImages(form)
	if err != nil {
		return respondError(c, err)
	}
	defer closeAll()
	in.Images = images

	out, err := h.uc.UpdateProduct(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary  Eliminar producto (propio, o cualquiera si es admin)
// @Tags     seller
// @Param    id  path  string  true  "ID del producto"
// @Success  204
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/seller/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.UserContext(), GetUserID(c), currentRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Mine godoc
// @Summary  Mis productos
// @Tags     seller
// @Produce  json
// @Success  200  {array}  dto.ProductResponse
// @Router   /api/seller/products [get]
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ListMyProducts(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary  Todos los productos (incluye deshabilitados)
// @Tags     admin
// @Produce  json
// @Success  200  {object}  dto.ProductListResponse
// @Router   /api/admin/products [get]
func (h *ProductHandler) AdminList(c *fiber.Ctx) error {
	out, err := h.uc.ListAllProducts(c.UserContext(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func optionalValue(form *multipart.Form, key string) *string {
	if _, ok := form.Value[key]; !ok {
		return nil
	}
	v := formValue(form, key)
	return &v
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: precio inválido %q", domain.ErrValidation, s)
	}
	return d, nil
}

func parseInt(field, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s inválido %q", domain.ErrValidation, field, s)
	}
	return n, nil
}

func parseBool(s string, def bool) (bool, error) {
	if s == "" {
		return def, nil
	}
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: enabled inválido %q", domain.ErrValidation, s)
	}
	return b, nil
}

// openImages abre los archivos del campo images; closeAll debe llamarse al terminar.
func openImages(form *multipart.Form) ([]dto.ImageUpload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	var uploads []dto.ImageUpload
	for _, fh := range form.File[formFieldImages] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("abrir imagen %s: %w", fh.Filename, err)
		}
		files = append(files, f)
		uploads = append(uploads, dto.ImageUpload{Filename: fh.Filename, Content: f})
	}
	return uploads, closeAll, nil
}
