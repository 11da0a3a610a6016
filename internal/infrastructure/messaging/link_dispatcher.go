// Package messaging entrega el pedido al canal de mensajería del vendedor.
package messaging

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

var _ ports.OrderDispatcher = (*LinkDispatcher)(nil)

// LinkDispatcher modo deep link: el navegador abre el enlace y el comprador envía el mensaje.
// Acepta enlaces válidos sin marcarlos como entregados; el cliente confirma la apertura.
type LinkDispatcher struct {
	log *logger.Logger
}

func NewLinkDispatcher(log *logger.Logger) *LinkDispatcher {
	return &LinkDispatcher{log: log.Named("dispatch")}
}

func (d *LinkDispatcher) Dispatch(_ context.Context, order ports.OrderDispatch) (ports.DispatchResult, error) {
	u, err := url.Parse(order.Link)
	if err != nil {
		return ports.DispatchResult{}, fmt.Errorf("dispatch: enlace inválido: %w", err)
	}
	if u.Scheme != "https" || u.Host == "" || u.Query().Get("text") == "" {
		return ports.DispatchResult{}, fmt.Errorf("dispatch: enlace incompleto %q", u.Redacted())
	}
	d.log.Info().Str("host", u.Host).Str("recipient", order.Recipient).Msg("deep link listo, pendiente de apertura en el navegador")
	return ports.DispatchResult{Delivered: false}, nil
}
