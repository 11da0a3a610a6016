package ports

import "context"

// OrderDispatch pedido listo para el canal de mensajería.
type OrderDispatch struct {
	Link      string // deep link https://<host>/<recipient>?text=<mensaje>
	Recipient string
	Message   string // texto sin codificar
}

// DispatchResult resultado de un despacho aceptado.
type DispatchResult struct {
	// Delivered el canal ya entregó el mensaje al vendedor. En modo enlace es false:
	// el mensaje sale cuando el navegador abre el enlace.
	Delivered bool
}

// OrderDispatcher entrega el pedido al canal externo. Un error significa que no se entregó.
type OrderDispatcher interface {
	Dispatch(ctx context.Context, order OrderDispatch) (DispatchResult, error)
}
