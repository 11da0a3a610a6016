package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll selector sintético del filtro de categorías; no es una categoría almacenada.
const CategoryAll = "All"

// Product representa un artículo del catálogo. ID lo asigna el almacén y no cambia.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal // >= 0
	Description string
	Category    string // etiqueta libre usada como filtro
	ImageURL    string // opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Categories deriva el conjunto de categorías a partir de un listado: "All" primero y luego
// las categorías no vacías en orden de primera aparición.
func Categories(products []*Product) []string {
	out := []string{CategoryAll}
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p == nil || p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// FilterByCategory devuelve los productos de la categoría; "All" o vacío devuelve todos.
func FilterByCategory(products []*Product, category string) []*Product {
	if category == "" || category == CategoryAll {
		return products
	}
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if p != nil && p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
