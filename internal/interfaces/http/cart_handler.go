package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/application/cart"
	"github.com/jhoicas/vgc-store/internal/application/catalog"
	"github.com/jhoicas/vgc-store/internal/application/dto"
)

// CartHandler carrito del cliente identificado por X-Client-ID.
type CartHandler struct {
	carts   *cart.Manager
	catalog *catalog.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.Manager, catalog *catalog.UseCase) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Produce      json
// @Param        X-Client-ID  header  string  true  "ID de cliente"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(cart.ToResponse(h.carts.Load(c.UserContext(), GetClientID(c))))
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma una unidad.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string                  true  "ID de cliente"
// @Param        body         body    dto.AddCartItemRequest  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "product_id es requerido"})
	}
	p, err := h.catalog.Get(c.UserContext(), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.carts.Add(c.UserContext(), GetClientID(c), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cart.ToResponse(out))
}

// SetQuantity godoc
// @Summary      Cambiar cantidad
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string                  true  "ID de cliente"
// @Param        id           path    string                  true  "ID del producto"
// @Param        body         body    dto.SetQuantityRequest  true  "Cantidad (>= 1)"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.carts.SetQuantity(c.UserContext(), GetClientID(c), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cart.ToResponse(out))
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Client-ID  header  string  true  "ID de cliente"
// @Param        id           path    string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	out, err := h.carts.Remove(c.UserContext(), GetClientID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cart.ToResponse(out))
}
