package entity

import "github.com/shopspring/decimal"

// OrderLine una línea del pedido: nombre × cantidad = total de línea.
type OrderLine struct {
	ProductName string
	Quantity    int
	LineTotal   decimal.Decimal
}

// Order pedido transitorio: existe solo para serializarse en el mensaje. No se persiste.
type Order struct {
	Lines   []OrderLine
	Total   decimal.Decimal
	Profile DeliveryProfile
}

// NewOrder arma el pedido a partir del carrito y una copia del perfil de entrega.
func NewOrder(cart Cart, profile DeliveryProfile) Order {
	lines := make([]OrderLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, OrderLine{
			ProductName: it.Name,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	return Order{
		Lines:   lines,
		Total:   cart.Total(),
		Profile: profile,
	}
}
