package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// Authorizer es el contrato mínimo del Admin Gate que necesita el catálogo.
// Lo implementa *auth.AdminGate.
type Authorizer interface {
	Authorize(identity *entity.Identity) error
}

// ImageUpload imagen opcional que acompaña a una escritura del catálogo.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UseCase adaptador del catálogo: lectura pública y escrituras detrás del Admin Gate.
type UseCase struct {
	repo  repository.ProductRepository
	blobs ports.BlobStore
	gate  Authorizer
	log   *logger.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository, blobs ports.BlobStore, gate Authorizer, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, blobs: blobs, gate: gate, log: log.Named("catalog"), now: time.Now}
}

// List devuelve el catálogo (más recientes primero) filtrado por categoría, junto con el
// conjunto de categorías derivado del catálogo completo.
func (uc *UseCase) List(ctx context.Context, category string) (*dto.CatalogResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listar productos: %w", domain.ErrStore, err)
	}
	if category == "" {
		category = entity.CategoryAll
	}
	filtered := entity.FilterByCategory(products, category)
	items := make([]dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, *toProductResponse(p))
	}
	return &dto.CatalogResponse{
		Items:      items,
		Categories: entity.Categories(products),
		Selected:   category,
	}, nil
}

// Get obtiene un producto por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener producto: %w", domain.ErrStore, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Create crea un producto. Si hay imagen se sube primero y su dirección queda en ImageURL.
func (uc *UseCase) Create(ctx context.Context, identity *entity.Identity, in dto.ProductRequest, image *ImageUpload) (*dto.ProductResponse, error) {
	if err := uc.gate.Authorize(identity); err != nil {
		return nil, err
	}
	fields, err := normalizeProduct(in)
	if err != nil {
		return nil, err
	}
	imageURL := ""
	if image != nil {
		if imageURL, err = uc.upload(ctx, image); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	product := &entity.Product{
		Name:        fields.Name,
		Price:       fields.Price,
		Description: fields.Description,
		Category:    fields.Category,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: crear producto: %w", domain.ErrStore, err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("category", product.Category).Msg("producto creado")
	return toProductResponse(product), nil
}

// Update reemplaza los campos editables. Sin imagen nueva se conserva la ImageURL anterior.
func (uc *UseCase) Update(ctx context.Context, identity *entity.Identity, id string, in dto.ProductRequest, image *ImageUpload) (*dto.ProductResponse, error) {
	if err := uc.gate.Authorize(identity); err != nil {
		return nil, err
	}
	fields, err := normalizeProduct(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	imageURL := existing.ImageURL
	if image != nil {
		if imageURL, err = uc.upload(ctx, image); err != nil {
			return nil, err
		}
	}
	updated := *existing
	updated.Name = fields.Name
	updated.Price = fields.Price
	updated.Description = fields.Description
	updated.Category = fields.Category
	updated.ImageURL = imageURL
	updated.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: actualizar producto: %w", domain.ErrStore, err)
	}
	uc.log.Info().Str("product_id", id).Msg("producto actualizado")
	return toProductResponse(&updated), nil
}

// Delete elimina un producto por ID.
func (uc *UseCase) Delete(ctx context.Context, identity *entity.Identity, id string) error {
	if err := uc.gate.Authorize(identity); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id es requerido", domain.ErrValidation)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: eliminar producto: %w", domain.ErrStore, err)
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// upload sube la imagen con clave products/<unixMillis>_<nombre>.
func (uc *UseCase) upload(ctx context.Context, image *ImageUpload) (string, error) {
	name := path.Base(strings.ReplaceAll(image.Filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	key := fmt.Sprintf("products/%d_%s", uc.now().UnixMilli(), name)
	url, err := uc.blobs.Upload(ctx, key, image.ContentType, image.Body, image.Size)
	if err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("subida de imagen fallida")
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}
	return url, nil
}

// maxPrice límite de NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// productFields campos editables ya validados.
type productFields struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
}

// normalizeProduct valida y normaliza (trim + NFC) los campos editables.
// El precio es obligatorio, >= 0 y con dos decimales como máximo.
func normalizeProduct(in dto.ProductRequest) (productFields, error) {
	out := productFields{
		Name:        clean(in.Name),
		Price:       in.Price.Decimal,
		Description: clean(in.Description),
		Category:    clean(in.Category),
	}
	if out.Name == "" {
		return out, fmt.Errorf("%w: name es requerido", domain.ErrValidation)
	}
	if !in.Price.Valid {
		return out, fmt.Errorf("%w: price es requerido", domain.ErrValidation)
	}
	if out.Category == "" {
		return out, fmt.Errorf("%w: category es requerida", domain.ErrValidation)
	}
	if out.Price.IsNegative() {
		return out, fmt.Errorf("%w: price no puede ser negativo", domain.ErrValidation)
	}
	if !out.Price.Equal(out.Price.Round(2)) {
		return out, fmt.Errorf("%w: price admite como máximo dos decimales", domain.ErrValidation)
	}
	if out.Price.GreaterThanOrEqual(maxPrice) {
		return out, fmt.Errorf("%w: price fuera de rango", domain.ErrValidation)
	}
	return out, nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
