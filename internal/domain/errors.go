package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Solo estos valores cruzan la frontera de los casos de uso; los detalles de almacenamiento se registran en el log.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrTransactionAborted = errors.New("la operación no pudo completarse, intente nuevamente")
)

// IsDomainError informa si err es (o envuelve) uno de los errores de dominio anteriores.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrEmailAlreadyExists, ErrValidation, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrInvalidState, ErrEmptyCart, ErrTransactionAborted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
