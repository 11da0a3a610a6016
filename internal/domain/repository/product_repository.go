package repository

import (
	"context"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product sobre el almacén documental (DIP).
type ProductRepository interface {
	// Create asigna ID si viene vacío y persiste el producto.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update devuelve domain.ErrNotFound si el ID no existe.
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve el catálogo completo, más recientes primero.
	List(ctx context.Context) ([]*entity.Product, error)
	// Delete devuelve domain.ErrNotFound si el ID no existe.
	Delete(ctx context.Context, id string) error
}
