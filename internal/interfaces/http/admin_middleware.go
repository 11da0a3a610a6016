package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// adminChecker es el contrato mínimo que necesita el middleware para autorizar al administrador.
// Lo implementa *auth.AdminGate.
type adminChecker interface {
	Authorize(identity *entity.Identity) error
}

// RequireAdmin protege el panel de administración. Debe ir DESPUÉS de OptionalAuth.
// Sin sesión o con una sesión que no es la del administrador responde el mismo 403
// con redirect "/", sin revelar cuál de los dos casos ocurrió.
func RequireAdmin(gate adminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.Authorize(GetIdentity(c)); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(forbidden)
		}
		return c.Next()
	}
}
