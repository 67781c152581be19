package account

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mrvekratl/BE124/internal/domain"
)

const (
	// MaxNameLength longitud máxima de nombre y apellido.
	MaxNameLength = 100
	// MinPasswordLength longitud mínima de contraseña.
	MinPasswordLength = 8
	// MaxPasswordLength bcrypt ignora lo que supere 72 bytes.
	MaxPasswordLength = 72
)

// NormalizeName recorta espacios y normaliza a NFC. Vacío o demasiado largo -> ErrValidation.
func NormalizeName(field, s string) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: %s es obligatorio", domain.ErrValidation, field)
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", fmt.Errorf("%w: %s supera %d caracteres", domain.ErrValidation, field, MaxNameLength)
	}
	return s, nil
}

// ValidatePassword comprueba la longitud de una contraseña nueva.
func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrValidation, MinPasswordLength)
	}
	if len(pw) > MaxPasswordLength {
		return fmt.Errorf("%w: la contraseña supera %d bytes", domain.ErrValidation, MaxPasswordLength)
	}
	return nil
}

// NormalizeEmail recorta y pasa a minúsculas; exige un '@' con texto a ambos lados.
func NormalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 || strings.ContainsAny(s, " \t") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	return s, nil
}
