package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de entrega en memoria.
type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]entity.DeliveryProfile
}

// NewProfileRepository construye el repositorio vacío.
func NewProfileRepository() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]entity.DeliveryProfile)}
}

func (r *ProfileRepo) Get(_ context.Context, uid string) (*entity.DeliveryProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Upsert el perfil solo tiene los cuatro campos, así que merge y reemplazo coinciden.
func (r *ProfileRepo) Upsert(_ context.Context, uid string, profile entity.DeliveryProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[uid] = profile
	return nil
}
