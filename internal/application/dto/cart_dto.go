package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest agrega un producto del catálogo al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetQuantityRequest reemplaza la cantidad de un ítem.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=999"`
}

// CartItemResponse ítem del carrito con su total de línea.
type CartItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse carrito completo.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total"`
}
