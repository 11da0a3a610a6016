package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/application/dto"
)

// HeaderClientID identifica el almacenamiento local del navegador (carrito, ruta de retorno).
const HeaderClientID = "X-Client-ID"

// LocalClientID key de Locals para el ID de cliente.
const LocalClientID = "client_id"

const maxClientIDLen = 128

// RequireClientID exige la cabecera X-Client-ID. Debe usarse en rutas que leen o escriben
// el carrito o la ruta de retorno.
func RequireClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderClientID))
		if id == "" || len(id) > maxClientIDLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "MISSING_CLIENT_ID",
				Message: "cabecera " + HeaderClientID + " requerida",
			})
		}
		c.Locals(LocalClientID, id)
		return c.Next()
	}
}

// GetClientID devuelve el ID de cliente. Fuera de RequireClientID lee la cabecera y puede ser "".
func GetClientID(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalClientID).(string); ok {
		return s
	}
	id := strings.TrimSpace(c.Get(HeaderClientID))
	if len(id) > maxClientIDLen {
		return ""
	}
	return id
}
