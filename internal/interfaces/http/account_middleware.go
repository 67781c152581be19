package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mrvekratl/BE124/internal/application/dto"
)

// accountChecker contrato mínimo para verificar que la cuenta sigue habilitada.
// Lo implementa *account.ProfileUseCase.
type accountChecker interface {
	ActiveRole(ctx context.Context, userID string) (role string, active bool, err error)
}

// RequireActiveAccount rechaza tokens de cuentas deshabilitadas después de emitidos
// y reemplaza LocalRole por el rol almacenado: una promoción o un cambio de rol rige
// desde la petición siguiente, sin volver a iniciar sesión.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID) y ANTES de RequireRole.
//
//   - 403 Forbidden → cuenta deshabilitada o eliminada.
//   - 503 Service Unavailable → fallo al consultar el almacenamiento.
func RequireActiveAccount(checker accountChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		role, active, err := checker.ActiveRole(c.UserContext(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("verificar cuenta")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_CHECK_FAILED",
				Message: "no se pudo verificar la cuenta, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_DISABLED",
				Message: "cuenta inactiva o suspendida",
			})
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}
