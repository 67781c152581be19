// Package order contiene las reglas puras de pedidos.
package order

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// CodeLength longitud del código de pedido visible al cliente.
const CodeLength = 16

// NewCode genera un código de pedido: los primeros 8 bytes de un UUIDv4 aleatorio en hexadecimal mayúscula.
// No se verifica contra códigos existentes; el índice único de la tabla orders es el respaldo.
func NewCode() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:CodeLength/2]))
}

// ValidCode informa si s tiene el formato de un código de pedido.
func ValidCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}
