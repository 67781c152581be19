// Package kafka publica eventos de pedidos en Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/mrvekratl/BE124/internal/application/ports"
	"github.com/mrvekratl/BE124/pkg/config"
)

// EventOrderPlaced tipo de evento en la cabecera "event".
const EventOrderPlaced = "order.placed"

var _ ports.OrderEventPublisher = (*OrderPublisher)(nil)

// messageWriter subconjunto de *kafka.Writer usado por el publicador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NewWriter crea el writer asíncrono del tópico de pedidos: WriteMessages encola y vuelve,
// los fallos de entrega llegan a Completion. Close vacía la cola pendiente.
func NewWriter(cfg config.KafkaConfig) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.OrderTopic,
		Balancer:               &kafkago.Hash{}, // mismo pedido -> misma partición
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logDeliveryFailure,
	}
}

func logDeliveryFailure(msgs []kafkago.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range msgs {
		log.Warn().Err(err).Str("key", string(m.Key)).Msg("kafka: evento no entregado")
	}
}

// OrderPublisher implementa ports.OrderEventPublisher.
type OrderPublisher struct {
	w messageWriter
}

// NewOrderPublisher construye el publicador sobre un writer (normalmente *kafka.Writer).
func NewOrderPublisher(w messageWriter) *OrderPublisher {
	return &OrderPublisher{w: w}
}

// PublishOrderPlaced serializa el evento a JSON con clave order-placed-<código>.
func (p *OrderPublisher) PublishOrderPlaced(ctx context.Context, evt ports.OrderPlacedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	msg := kafkago.Message{
		Key:     []byte("order-placed-" + evt.OrderCode),
		Value:   payload,
		Headers: []kafkago.Header{{Key: "event", Value: []byte(EventOrderPlaced)}},
		Time:    evt.PlacedAt,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}
