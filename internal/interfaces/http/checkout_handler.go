package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/application/checkout"
	"github.com/jhoicas/vgc-store/internal/application/dto"
)

// CheckoutHandler pantalla de checkout y envío del pedido.
// Todas las rutas exigen sesión verificada (sin ella 401 con redirect /auth); todas salvo confirm exigen carrito no vacío.
type CheckoutHandler struct {
	composer *checkout.Composer
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(composer *checkout.Composer) *CheckoutHandler {
	return &CheckoutHandler{composer: composer}
}

// Profile godoc
// @Summary      Datos de checkout
// @Description  Perfil de entrega guardado (o el teléfono verificado) y el carrito actual.
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        X-Client-ID  header  string  true  "ID de cliente"
// @Success      200  {object}  dto.CheckoutViewResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/profile [get]
func (h *CheckoutHandler) Profile(c *fiber.Ctx) error {
	out, err := h.composer.Prepare(c.UserContext(), GetClientID(c), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar pedido
// @Description  Guarda el perfil y arma el mensaje y el enlace de WhatsApp. Con envío directo vacía el carrito;
// @Description  en modo enlace responde pending_confirmation=true y el carrito se vacía en /api/checkout/confirm.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string                  true  "ID de cliente"
// @Param        body         body    dto.DeliveryProfileDTO  true  "Datos de entrega"
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var in dto.DeliveryProfileDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.composer.Submit(c.UserContext(), GetClientID(c), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar apertura del enlace
// @Description  El cliente la llama cuando la ventana de WhatsApp se abrió; vacía el carrito.
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        X-Client-ID  header  string  true  "ID de cliente"
// @Success      200  {object}  dto.CheckoutConfirmResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.composer.Confirm(c.UserContext(), GetClientID(c), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen del pedido en PDF
// @Tags         checkout
// @Security     Bearer
// @Produce      application/pdf
// @Param        X-Client-ID  header  string  true  "ID de cliente"
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/summary.pdf [get]
func (h *CheckoutHandler) SummaryPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.composer.SummaryPDF(c.UserContext(), GetClientID(c), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido.pdf"`)
	return c.Send(pdfBytes)
}
