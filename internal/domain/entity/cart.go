package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vgc-store/internal/domain"
)

// MaxQuantity tope de unidades por ítem.
const MaxQuantity = 999

// CartItem copia del producto al momento de agregarlo más la cantidad (1..MaxQuantity).
// Las etiquetas JSON son el formato persistido del carrito.
type CartItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
}

// LineTotal precio × cantidad.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart secuencia ordenada de ítems, sin IDs repetidos.
type Cart struct {
	Items []CartItem
}

// Add incrementa la cantidad si el producto ya está; si no, lo agrega al final con cantidad 1.
// En el tope devuelve ErrInvalidQuantity sin modificar el carrito.
func (c *Cart) Add(p *Product) error {
	if i := c.index(p.ID); i >= 0 {
		if c.Items[i].Quantity >= MaxQuantity {
			return domain.ErrInvalidQuantity
		}
		c.Items[i].Quantity++
		return nil
	}
	c.Items = append(c.Items, CartItem{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Quantity:    1,
	})
	return nil
}

// SetQuantity reemplaza la cantidad. Fuera de 1..MaxQuantity no modifica nada (quitar es una acción aparte).
func (c *Cart) SetQuantity(id string, n int) error {
	if n < 1 || n > MaxQuantity {
		return domain.ErrInvalidQuantity
	}
	i := c.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.Items[i].Quantity = n
	return nil
}

// Remove elimina el ítem sin importar su cantidad. Devuelve false si no estaba.
func (c *Cart) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Total Σ precio × cantidad. Se calcula en cada llamada.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Count Σ cantidades (contador del encabezado).
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// IsEmpty true si no hay ítems.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Normalize repara un carrito rehidratado: descarta ítems sin ID, fusiona IDs repetidos
// conservando la primera posición y lleva las cantidades al rango 1..MaxQuantity.
func (c *Cart) Normalize() {
	out := make([]CartItem, 0, len(c.Items))
	pos := make(map[string]int, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if it.Quantity > MaxQuantity {
			it.Quantity = MaxQuantity
		}
		if i, ok := pos[it.ID]; ok {
			out[i].Quantity = min(out[i].Quantity+it.Quantity, MaxQuantity)
			continue
		}
		pos[it.ID] = len(out)
		out = append(out, it)
	}
	c.Items = out
}

func (c Cart) index(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
