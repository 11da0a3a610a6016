package dto

import "github.com/shopspring/decimal"

// DeliveryProfileDTO datos de entrega; los cuatro campos son obligatorios al enviar.
type DeliveryProfileDTO struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// CheckoutViewResponse datos para la pantalla de checkout.
type CheckoutViewResponse struct {
	Profile DeliveryProfileDTO `json:"profile"`
	Cart    CartResponse       `json:"cart"`
}

// OrderLineResponse línea del pedido enviado.
type OrderLineResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CheckoutResponse resultado del envío del pedido.
// Con pending_confirmation el cliente abre whatsapp_url y luego llama a POST /api/checkout/confirm;
// si el navegador bloquea la ventana el carrito sigue intacto para reintentar.
type CheckoutResponse struct {
	WhatsAppURL         string              `json:"whatsapp_url"`
	Message             string              `json:"message"`
	Lines               []OrderLineResponse `json:"lines"`
	Total               decimal.Decimal     `json:"total"`
	CartCleared         bool                `json:"cart_cleared"`
	PendingConfirmation bool                `json:"pending_confirmation"`
}

// CheckoutConfirmResponse resultado de confirmar la apertura del enlace.
type CheckoutConfirmResponse struct {
	CartCleared bool `json:"cart_cleared"`
}
