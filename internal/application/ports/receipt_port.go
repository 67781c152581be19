package ports

import "github.com/mrvekratl/BE124/internal/application/dto"

// ReceiptPDFGenerator genera el comprobante PDF de un pedido.
type ReceiptPDFGenerator interface {
	Generate(order *dto.OrderDetailResponse) ([]byte, error)
}
