package pdf

import (
	"testing"
	"time"

	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "1.000,00", formatMoney(decimal.NewFromInt(1000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-25.000,00", formatMoney(decimal.NewFromInt(-25000)))
}

func TestReceiptGenerator_Generate(t *testing.T) {
	order := &dto.OrderDetailResponse{
		OrderCode: "0123456789ABCDEF",
		Address:   "123 Main St",
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Items: []dto.OrderItemResponse{
			{ProductID: "p7", ProductName: "Lámpara", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50"), Subtotal: decimal.RequireFromString("25")},
		},
		Total: decimal.RequireFromString("25"),
	}

	pdfBytes, err := NewReceiptGenerator("BE124 Store").Generate(order)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
