package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// KeyPrefix prefijo de la clave persistida: vgc_cart:<clientID>.
const KeyPrefix = "vgc_cart:"

// Manager carrito persistido por cliente. Cada mutación se escribe de inmediato.
// Escrituras concurrentes del mismo cliente: gana la última.
type Manager struct {
	kv  ports.KeyValueStore
	log *logger.Logger
}

// NewManager construye el manager sobre un almacén clave-valor.
func NewManager(kv ports.KeyValueStore, log *logger.Logger) *Manager {
	return &Manager{kv: kv, log: log.Named("cart")}
}

// Load rehidrata el carrito para mostrarlo. Clave ausente, datos corruptos o almacén caído dan un carrito vacío.
func (m *Manager) Load(ctx context.Context, clientID string) entity.Cart {
	c, err := m.Read(ctx, clientID)
	if err != nil {
		m.log.Warn().Err(err).Str("client_id", clientID).Msg("carrito no disponible, se usa vacío")
		return entity.Cart{}
	}
	return c
}

// Add agrega el producto o incrementa su cantidad.
func (m *Manager) Add(ctx context.Context, clientID string, p *entity.Product) (entity.Cart, error) {
	if p == nil || p.ID == "" {
		return entity.Cart{}, fmt.Errorf("%w: producto requerido", domain.ErrValidation)
	}
	c, err := m.Read(ctx, clientID)
	if err != nil {
		return entity.Cart{}, err
	}
	if err := c.Add(p); err != nil {
		return c, err
	}
	return c, m.write(ctx, clientID, c)
}

// SetQuantity reemplaza la cantidad. Fuera de 1..entity.MaxQuantity se rechaza sin tocar el almacén.
func (m *Manager) SetQuantity(ctx context.Context, clientID, id string, n int) (entity.Cart, error) {
	if n < 1 || n > entity.MaxQuantity {
		return entity.Cart{}, domain.ErrInvalidQuantity
	}
	c, err := m.Read(ctx, clientID)
	if err != nil {
		return entity.Cart{}, err
	}
	if err := c.SetQuantity(id, n); err != nil {
		return c, err
	}
	return c, m.write(ctx, clientID, c)
}

// Remove quita el ítem. Quitar un ID ausente no es error.
func (m *Manager) Remove(ctx context.Context, clientID, id string) (entity.Cart, error) {
	c, err := m.Read(ctx, clientID)
	if err != nil {
		return entity.Cart{}, err
	}
	if !c.Remove(id) {
		return c, nil
	}
	return c, m.write(ctx, clientID, c)
}

// Clear vacía el carrito (solo tras un pedido enviado).
func (m *Manager) Clear(ctx context.Context, clientID string) error {
	if err := validClient(clientID); err != nil {
		return err
	}
	if err := m.kv.Delete(ctx, KeyPrefix+clientID); err != nil {
		return fmt.Errorf("%w: vaciar carrito: %w", domain.ErrStore, err)
	}
	return nil
}

// Read como Load pero sin ocultar la caída del almacén: devuelve ErrStore.
// Clave ausente o datos ilegibles siguen dando un carrito vacío.
func (m *Manager) Read(ctx context.Context, clientID string) (entity.Cart, error) {
	if err := validClient(clientID); err != nil {
		return entity.Cart{}, err
	}
	raw, ok, err := m.kv.Read(ctx, KeyPrefix+clientID)
	if err != nil {
		return entity.Cart{}, fmt.Errorf("%w: leer carrito: %w", domain.ErrStore, err)
	}
	if !ok || len(raw) == 0 {
		return entity.Cart{}, nil
	}
	var items []entity.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		m.log.Warn().Err(err).Str("client_id", clientID).Msg("carrito persistido ilegible, se descarta")
		return entity.Cart{}, nil
	}
	c := entity.Cart{Items: items}
	c.Normalize()
	return c, nil
}

func (m *Manager) write(ctx context.Context, clientID string, c entity.Cart) error {
	items := c.Items
	if items == nil {
		items = []entity.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar carrito: %w", err)
	}
	if err := m.kv.Write(ctx, KeyPrefix+clientID, raw); err != nil {
		return fmt.Errorf("%w: guardar carrito: %w", domain.ErrStore, err)
	}
	return nil
}

func validClient(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("%w: client id requerido", domain.ErrValidation)
	}
	return nil
}

// ToResponse vista del carrito con totales recalculados.
func ToResponse(c entity.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return dto.CartResponse{Items: items, Count: c.Count(), Total: c.Total()}
}
