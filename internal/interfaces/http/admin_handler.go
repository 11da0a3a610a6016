package http

import (
	"github.com/gofiber/fiber/v2"
)

// AdminHandler comprobación de acceso al panel. Las escrituras del catálogo están en ProductHandler.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// Access godoc
// @Summary      Acceso al panel
// @Description  200 solo para el administrador; cualquier otro caso recibe 403 con redirect "/".
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IdentityResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/access [get]
func (h *AdminHandler) Access(c *fiber.Ctx) error {
	return c.JSON(toIdentityResponse(GetIdentity(c), true))
}
