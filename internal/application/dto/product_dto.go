package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest campos editables de un producto (crear o actualizar).
// La imagen viaja aparte (multipart) y no forma parte del cuerpo JSON.
// Price es obligatorio: ausente o null no vale como 0; un "0" explícito sí.
type ProductRequest struct {
	Name        string              `json:"name" form:"name" validate:"required,min=1,max=200"`
	Price       decimal.NullDecimal `json:"price" form:"price" validate:"required"`
	Description string              `json:"description" form:"description"`
	Category    string              `json:"category" form:"category" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CatalogResponse listado del catálogo con las categorías derivadas ("All" primero).
type CatalogResponse struct {
	Items      []ProductResponse `json:"items"`
	Categories []string          `json:"categories"`
	Selected   string            `json:"selected"`
}
