package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vgc-store/internal/application/catalog"
	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/domain"
)

// MaxImageBytes tamaño máximo de la imagen de un producto.
const MaxImageBytes = 5 << 20

// ProductHandler catálogo público y escrituras del panel de administración.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo
// @Description  Productos más recientes primero. "All" o vacío devuelve el catálogo completo.
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Categoría"  default(All)
// @Success      200  {object}  dto.CatalogResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         admin
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      dto.ProductRequest  true   "Datos del producto"
// @Param        image  formData  file                false  "Imagen"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, image, err := parseProductForm(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage(image)
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in, image)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Sin imagen nueva se conserva la actual.
// @Tags         admin
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      string              true   "ID del producto"
// @Param        body   body      dto.ProductRequest  true   "Datos del producto"
// @Param        image  formData  file                false  "Imagen"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	in, image, err := parseProductForm(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage(image)
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), id, in, image)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductForm acepta JSON o multipart/form-data con el archivo en el campo "image".
func parseProductForm(c *fiber.Ctx) (dto.ProductRequest, *catalog.ImageUpload, error) {
	var in dto.ProductRequest
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, fmt.Errorf("%w: cuerpo inválido", domain.ErrValidation)
		}
		return in, nil, nil
	}

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	in.Category = c.FormValue("category")
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return in, nil, fmt.Errorf("%w: precio inválido", domain.ErrValidation)
		}
		in.Price = decimal.NewNullDecimal(price)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		// sin archivo: escritura sin imagen
		return in, nil, nil
	}
	if fh.Size > MaxImageBytes {
		return in, nil, fmt.Errorf("%w: la imagen supera %d MB", domain.ErrValidation, MaxImageBytes>>20)
	}
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return in, nil, fmt.Errorf("%w: el archivo debe ser una imagen", domain.ErrValidation)
	}
	f, err := fh.Open()
	if err != nil {
		return in, nil, fmt.Errorf("%w: leer imagen: %w", domain.ErrUpload, err)
	}
	return in, &catalog.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, nil
}

func closeImage(image *catalog.ImageUpload) {
	if image == nil {
		return
	}
	if cl, ok := image.Body.(io.Closer); ok {
		_ = cl.Close()
	}
}
