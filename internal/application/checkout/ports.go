package checkout

import (
	"context"
	"time"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// CartStore lo que el checkout necesita del Cart Manager.
type CartStore interface {
	Read(ctx context.Context, clientID string) (entity.Cart, error)
	Clear(ctx context.Context, clientID string) error
}

// ReturnRouteRecorder guarda la ruta a la que volver tras verificar el teléfono.
type ReturnRouteRecorder interface {
	Remember(ctx context.Context, clientID, route string) error
}

// SummaryHeader datos de cabecera del resumen en PDF.
type SummaryHeader struct {
	ShopName string
	Currency string // código ISO; las fuentes base del PDF no incluyen ₹
	IssuedAt time.Time
}

// SummaryRenderer genera el resumen del pedido en PDF (implementado en infrastructure/pdf).
type SummaryRenderer interface {
	RenderOrderSummary(ctx context.Context, order entity.Order, header SummaryHeader) ([]byte, error)
}
