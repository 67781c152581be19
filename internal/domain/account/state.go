// Package account contiene la máquina de estados de promoción a vendedor y las reglas de perfil.
package account

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// MaxSellerMessageLength longitud máxima del mensaje de solicitud de vendedor.
const MaxSellerMessageLength = 1000

// State estado de la cuenta respecto al flujo de vendedor.
type State int

const (
	StateBuyer State = iota
	StatePendingSellerApproval
	StateSeller
	StateAdmin
)

func (s State) String() string {
	switch s {
	case StateBuyer:
		return "buyer"
	case StatePendingSellerApproval:
		return "pending_seller_approval"
	case StateSeller:
		return "seller"
	case StateAdmin:
		return "admin"
	}
	return "unknown"
}

// StateOf deriva el estado a partir del rol y del indicador de solicitud pendiente.
func StateOf(u *entity.User) State {
	switch u.Role {
	case entity.RoleAdmin:
		return StateAdmin
	case entity.RoleSeller:
		return StateSeller
	}
	if u.HasSellerRequest {
		return StatePendingSellerApproval
	}
	return StateBuyer
}

// NormalizeSellerMessage valida el mensaje de la solicitud (obligatorio, acotado).
func NormalizeSellerMessage(msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", fmt.Errorf("%w: el mensaje es obligatorio", domain.ErrValidation)
	}
	if utf8.RuneCountInString(msg) > MaxSellerMessageLength {
		return "", fmt.Errorf("%w: el mensaje supera %d caracteres", domain.ErrValidation, MaxSellerMessageLength)
	}
	return msg, nil
}

// Submit Buyer -> PendingSellerApproval. Modifica u.
func Submit(u *entity.User) error {
	if StateOf(u) != StateBuyer {
		return fmt.Errorf("%w: solo un comprador puede solicitar ser vendedor (estado %s)", domain.ErrInvalidState, StateOf(u))
	}
	u.HasSellerRequest = true
	return nil
}

// Approve PendingSellerApproval -> Seller. Modifica u.
func Approve(u *entity.User) error {
	if StateOf(u) != StatePendingSellerApproval {
		return fmt.Errorf("%w: el usuario no tiene una solicitud pendiente (estado %s)", domain.ErrInvalidState, StateOf(u))
	}
	u.Role = entity.RoleSeller
	u.HasSellerRequest = false
	return nil
}

// Reject PendingSellerApproval -> Buyer. Modifica u.
func Reject(u *entity.User) error {
	if StateOf(u) != StatePendingSellerApproval {
		return fmt.Errorf("%w: el usuario no tiene una solicitud pendiente (estado %s)", domain.ErrInvalidState, StateOf(u))
	}
	u.HasSellerRequest = false
	return nil
}
