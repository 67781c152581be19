package ports

import (
	"context"
	"time"
)

// IdempotencyStore reserva claves de idempotencia para operaciones que no deben repetirse.
type IdempotencyStore interface {
	// Reserve devuelve false si la clave ya estaba reservada.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera la clave (la operación falló y puede reintentarse).
	Release(ctx context.Context, key string) error
}
