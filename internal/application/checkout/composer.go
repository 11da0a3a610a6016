package checkout

import (
	"context"
	"fmt"
	"time"

	appcart "github.com/jhoicas/vgc-store/internal/application/cart"
	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/message"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// Route ruta del checkout; se guarda como destino de retorno cuando falta la verificación.
const Route = "/checkout"

// Config datos fijos del mensaje y del canal.
type Config struct {
	Template      message.Template
	MessagingHost string
	Recipient     string
	CurrencyCode  string
}

// Composer arma el pedido, lo entrega al canal de mensajería y vacía el carrito una vez entregado.
type Composer struct {
	carts      CartStore
	profiles   repository.ProfileRepository
	returns    ReturnRouteRecorder
	dispatcher ports.OrderDispatcher
	summaries  SummaryRenderer
	cfg        Config
	log        *logger.Logger
	now        func() time.Time
}

// NewComposer construye el composer. summaries puede ser nil si no se ofrece el PDF.
func NewComposer(
	carts CartStore,
	profiles repository.ProfileRepository,
	returns ReturnRouteRecorder,
	dispatcher ports.OrderDispatcher,
	summaries SummaryRenderer,
	cfg Config,
	log *logger.Logger,
) *Composer {
	if cfg.MessagingHost == "" {
		cfg.MessagingHost = "wa.me"
	}
	if cfg.Recipient == "" {
		cfg.Recipient = "919876543210"
	}
	return &Composer{
		carts:      carts,
		profiles:   profiles,
		returns:    returns,
		dispatcher: dispatcher,
		summaries:  summaries,
		cfg:        cfg,
		log:        log.Named("checkout"),
		now:        time.Now,
	}
}

// Prefill perfil guardado o, si no hay, uno con el teléfono de la identidad.
func (c *Composer) Prefill(ctx context.Context, identity *entity.Identity) (entity.DeliveryProfile, error) {
	stored, err := c.profiles.Get(ctx, identity.UID)
	if err != nil {
		return entity.DeliveryProfile{}, fmt.Errorf("%w: leer perfil: %w", domain.ErrStore, err)
	}
	if stored == nil {
		return entity.DeliveryProfile{Phone: identity.PhoneNumber}, nil
	}
	p := *stored
	if p.Phone == "" {
		p.Phone = identity.PhoneNumber
	}
	return p, nil
}

// Prepare datos de la pantalla de checkout con las mismas precondiciones que Submit.
func (c *Composer) Prepare(ctx context.Context, clientID string, identity *entity.Identity) (*dto.CheckoutViewResponse, error) {
	cart, err := c.preconditions(ctx, clientID, identity)
	if err != nil {
		return nil, err
	}
	profile, err := c.Prefill(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutViewResponse{
		Profile: toProfileDTO(profile),
		Cart:    appcart.ToResponse(cart),
	}, nil
}

// Submit envía el pedido. Orden de precondiciones: identidad, carrito, perfil.
// El carrito solo se vacía si el canal entregó el pedido. En modo enlace queda intacto
// hasta que el cliente llama a Confirm tras abrir el enlace.
func (c *Composer) Submit(ctx context.Context, clientID string, identity *entity.Identity, in dto.DeliveryProfileDTO) (*dto.CheckoutResponse, error) {
	cart, err := c.preconditions(ctx, clientID, identity)
	if err != nil {
		return nil, err
	}
	profile := entity.DeliveryProfile{Name: in.Name, Phone: in.Phone, Address: in.Address, Location: in.Location}.Normalized()
	if !profile.Complete() {
		return nil, domain.ErrIncompleteProfile
	}

	if err := c.profiles.Upsert(ctx, identity.UID, profile); err != nil {
		return nil, fmt.Errorf("%w: guardar perfil: %w", domain.ErrStore, err)
	}

	order := entity.NewOrder(cart, profile)
	text := message.Render(c.cfg.Template, order)
	link := message.DeepLink(c.cfg.MessagingHost, c.cfg.Recipient, text)

	res, err := c.dispatcher.Dispatch(ctx, ports.OrderDispatch{Link: link, Recipient: c.cfg.Recipient, Message: text})
	if err != nil {
		c.log.Error().Err(err).Str("uid", identity.UID).Msg("envío del pedido fallido, se conserva el carrito")
		return nil, fmt.Errorf("%w: %w", domain.ErrDispatch, err)
	}

	out := &dto.CheckoutResponse{
		WhatsAppURL:         link,
		Message:             text,
		Lines:               toLineResponses(order.Lines),
		Total:               order.Total,
		PendingConfirmation: !res.Delivered,
	}
	if !res.Delivered {
		c.log.Info().Str("uid", identity.UID).Int("lines", len(order.Lines)).Str("total", order.Total.String()).Msg("pedido listo, pendiente de apertura del enlace")
		return out, nil
	}

	out.CartCleared = c.clear(ctx, clientID)
	c.log.Info().Str("uid", identity.UID).Int("lines", len(order.Lines)).Str("total", order.Total.String()).Msg("pedido enviado")
	return out, nil
}

// Confirm el navegador abrió el enlace del pedido: se vacía el carrito. Repetirlo no es error.
func (c *Composer) Confirm(ctx context.Context, clientID string, identity *entity.Identity) (*dto.CheckoutConfirmResponse, error) {
	if identity == nil {
		return nil, domain.ErrAuthRequired
	}
	if err := c.carts.Clear(ctx, clientID); err != nil {
		return nil, err
	}
	c.log.Info().Str("uid", identity.UID).Str("client_id", clientID).Msg("pedido confirmado, carrito vaciado")
	return &dto.CheckoutConfirmResponse{CartCleared: true}, nil
}

// clear tras una entrega confirmada; un fallo se registra y se informa como cart_cleared=false.
func (c *Composer) clear(ctx context.Context, clientID string) bool {
	if err := c.carts.Clear(ctx, clientID); err != nil {
		c.log.Error().Err(err).Str("client_id", clientID).Msg("pedido enviado pero no se pudo vaciar el carrito")
		return false
	}
	return true
}

// SummaryPDF resumen del carrito actual con el perfil guardado. No modifica nada.
func (c *Composer) SummaryPDF(ctx context.Context, clientID string, identity *entity.Identity) ([]byte, error) {
	if c.summaries == nil {
		return nil, fmt.Errorf("%w: resumen en PDF no disponible", domain.ErrNotFound)
	}
	cart, err := c.preconditions(ctx, clientID, identity)
	if err != nil {
		return nil, err
	}
	profile, err := c.Prefill(ctx, identity)
	if err != nil {
		return nil, err
	}
	return c.summaries.RenderOrderSummary(ctx, entity.NewOrder(cart, profile), SummaryHeader{
		ShopName: c.cfg.Template.ShopName,
		Currency: c.cfg.CurrencyCode,
		IssuedAt: c.now(),
	})
}

// preconditions sin identidad guarda la ruta de retorno y exige verificación; luego exige carrito no vacío.
func (c *Composer) preconditions(ctx context.Context, clientID string, identity *entity.Identity) (entity.Cart, error) {
	if identity == nil {
		if err := c.returns.Remember(ctx, clientID, Route); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo guardar la ruta de retorno")
		}
		return entity.Cart{}, domain.ErrAuthRequired
	}
	cart, err := c.carts.Read(ctx, clientID)
	if err != nil {
		return entity.Cart{}, err
	}
	if cart.IsEmpty() {
		return entity.Cart{}, domain.ErrEmptyCart
	}
	return cart, nil
}

func toProfileDTO(p entity.DeliveryProfile) dto.DeliveryProfileDTO {
	return dto.DeliveryProfileDTO{Name: p.Name, Phone: p.Phone, Address: p.Address, Location: p.Location}
}

func toLineResponses(lines []entity.OrderLine) []dto.OrderLineResponse {
	out := make([]dto.OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.OrderLineResponse{ProductName: l.ProductName, Quantity: l.Quantity, LineTotal: l.LineTotal})
	}
	return out
}
