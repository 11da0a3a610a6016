package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// ReturnKeyPrefix clave persistida: vgc_return_url:<clientID>.
const ReturnKeyPrefix = "vgc_return_url:"

// ReturnURLStore ruta a la que volver tras la verificación.
type ReturnURLStore struct {
	kv  ports.KeyValueStore
	log *logger.Logger
}

func NewReturnURLStore(kv ports.KeyValueStore, log *logger.Logger) *ReturnURLStore {
	return &ReturnURLStore{kv: kv, log: log.Named("return_url")}
}

// Remember guarda la ruta. Solo rutas locales.
func (s *ReturnURLStore) Remember(ctx context.Context, clientID, route string) error {
	if clientID == "" || !isLocalRoute(route) {
		return fmt.Errorf("%w: ruta de retorno inválida", domain.ErrValidation)
	}
	if err := s.kv.Write(ctx, ReturnKeyPrefix+clientID, []byte(route)); err != nil {
		return fmt.Errorf("%w: guardar ruta de retorno: %w", domain.ErrStore, err)
	}
	return nil
}

// Consume lee y borra la ruta guardada. Sin ruta (o con error) devuelve "/".
func (s *ReturnURLStore) Consume(ctx context.Context, clientID string) string {
	key := ReturnKeyPrefix + clientID
	raw, ok, err := s.kv.Read(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la ruta de retorno")
		return "/"
	}
	if !ok {
		return "/"
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo borrar la ruta de retorno")
	}
	route := string(raw)
	if !isLocalRoute(route) {
		return "/"
	}
	return route
}

func isLocalRoute(route string) bool {
	return strings.HasPrefix(route, "/") && !strings.HasPrefix(route, "//")
}
