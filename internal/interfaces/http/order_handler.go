package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/checkout"
	"github.com/mrvekratl/BE124/internal/application/dto"
)

// HeaderIdempotencyKey cabecera opcional para evitar pedidos duplicados.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler checkout y consulta de pedidos.
type OrderHandler struct {
	uc      *checkout.UseCase
	receipt *checkout.ReceiptUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *checkout.UseCase, receipt *checkout.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receipt}
}

// Place godoc
// @Summary  Confirmar el carrito como pedido
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key  header  string                 false  "clave de idempotencia"
// @Param    body             body    dto.PlaceOrderRequest  true   "dirección de envío"
// @Success  201  {object}  dto.PlaceOrderResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	code, err := h.uc.PlaceOrder(c.UserContext(), GetUserID(c), in.Address, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{OrderCode: code})
}

// List godoc
// @Summary  Mis pedidos
// @Tags     orders
// @Produce  json
// @Success  200  {array}  dto.OrderSummaryResponse
// @Router   /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListMyOrders(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary  Detalle de un pedido propio
// @Tags     orders
// @Produce  json
// @Param    code  path  string  true  "código del pedido"
// @Success  200   {object}  dto.OrderDetailResponse
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/orders/{code} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetOrderDetails(c.UserContext(), GetUserID(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary  Comprobante PDF de un pedido propio
// @Tags     orders
// @Produce  application/pdf
// @Param    code  path  string  true  "código del pedido"
// @Success  200
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/orders/{code}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), GetUserID(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
