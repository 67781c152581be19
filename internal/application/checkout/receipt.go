package checkout

import (
	"context"
	"fmt"

	"github.com/mrvekratl/BE124/internal/application/ports"
)

// ReceiptUseCase genera el comprobante PDF de un pedido propio.
type ReceiptUseCase struct {
	orders    *UseCase
	generator ports.ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders *UseCase, generator ports.ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename). Un pedido ajeno o inexistente -> domain.ErrNotFound.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, userID, orderCode string) ([]byte, string, error) {
	detail, err := uc.orders.GetOrderDetails(ctx, userID, orderCode)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.Generate(detail)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", detail.OrderCode), nil
}
