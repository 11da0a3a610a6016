// Package message arma el texto del pedido y el deep link del canal de mensajería.
//
// El formato del mensaje es fijo; el vendedor lo lee tal cual en WhatsApp:
//
//	🧶 *New Order from Vels Grace Crochet*
//
//	*Customer Details:*
//	Name: …
//	Phone: …
//	Address: …
//	Location: …
//
//	*Order Details:*
//	- Scarf x 2 = ₹500
//
//	*Total Amount: ₹650*
package message

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// Template datos variables del mensaje.
type Template struct {
	Icon     string
	ShopName string
	Currency string
}

// Render produce el mensaje del pedido.
func Render(t Template, order entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *New Order from %s*\n\n", t.Icon, t.ShopName)

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", order.Profile.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Profile.Phone)
	fmt.Fprintf(&b, "Address: %s\n", order.Profile.Address)
	fmt.Fprintf(&b, "Location: %s\n\n", order.Profile.Location)

	b.WriteString("*Order Details:*\n")
	lines := make([]string, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, fmt.Sprintf("- %s x %d = %s", l.ProductName, l.Quantity, Amount(t.Currency, l.LineTotal)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "*Total Amount: %s*", Amount(t.Currency, order.Total))
	return b.String()
}

// Amount símbolo + importe sin decimales forzados (500, 249.5).
func Amount(currency string, d decimal.Decimal) string {
	return currency + d.String()
}

// uriComponentReplacer deja sin escapar los caracteres que encodeURIComponent no escapa.
var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent codifica como encodeURIComponent: espacios como %20, UTF-8 por byte.
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

// DeepLink https://<host>/<recipient>?text=<mensaje codificado>.
func DeepLink(host, recipient, text string) string {
	return "https://" + host + "/" + recipient + "?text=" + EncodeURIComponent(text)
}
