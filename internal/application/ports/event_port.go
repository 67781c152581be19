package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent evento publicado tras confirmar un pedido.
type OrderPlacedEvent struct {
	OrderCode  string          `json:"order_code"`
	UserID     string          `json:"user_id"`
	Address    string          `json:"address"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
	PlacedAt   time.Time       `json:"placed_at"`
}

// OrderEventPublisher puerto de salida para eventos de pedidos (Kafka u otro broker).
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlacedEvent) error
}
