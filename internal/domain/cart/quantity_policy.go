// Package cart contiene las reglas puras de cantidades del carrito.
package cart

import (
	"fmt"
	"strings"

	"github.com/mrvekratl/BE124/internal/domain"
)

// MaxQuantity tope de unidades por línea de carrito.
const MaxQuantity = 255

// QuantityPolicy decide qué hacer con una cantidad fuera de rango.
type QuantityPolicy int

const (
	// PolicyReject rechaza cantidades negativas, mayores a MaxQuantity o al stock.
	PolicyReject QuantityPolicy = iota
	// PolicyClamp ajusta la cantidad a min(MaxQuantity, stock).
	PolicyClamp
)

// ParsePolicy convierte el valor de configuración ("reject" | "clamp").
func ParsePolicy(s string) (QuantityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "clamp":
		return PolicyClamp, nil
	}
	return PolicyReject, fmt.Errorf("política de cantidad desconocida: %q", s)
}

func (p QuantityPolicy) String() string {
	if p == PolicyClamp {
		return "clamp"
	}
	return "reject"
}

// Resolve calcula la cantidad final de una línea.
// remove=true indica que la línea debe eliminarse (cantidad solicitada 0).
func (p QuantityPolicy) Resolve(requested, stock int) (qty int, remove bool, err error) {
	if requested == 0 {
		return 0, true, nil
	}
	if requested < 0 {
		return 0, false, fmt.Errorf("%w: cantidad negativa", domain.ErrValidation)
	}

	ceiling := MaxQuantity
	if stock < ceiling {
		ceiling = stock
	}

	switch p {
	case PolicyClamp:
		if ceiling < 1 {
			return 0, false, fmt.Errorf("%w: producto sin stock", domain.ErrValidation)
		}
		if requested > ceiling {
			return ceiling, false, nil
		}
		return requested, false, nil
	default:
		if requested > MaxQuantity {
			return 0, false, fmt.Errorf("%w: máximo %d unidades por producto", domain.ErrValidation, MaxQuantity)
		}
		if requested > stock {
			return 0, false, fmt.Errorf("%w: stock insuficiente (disponible %d)", domain.ErrValidation, stock)
		}
		return requested, false, nil
	}
}
