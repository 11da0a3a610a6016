package repository

import (
	"context"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// ProfileRepository colección hermana de perfiles de entrega, clave = UID de la identidad.
type ProfileRepository interface {
	// Get devuelve (nil, nil) si la identidad aún no tiene perfil.
	Get(ctx context.Context, uid string) (*entity.DeliveryProfile, error)
	// Upsert escribe los cuatro campos con semántica merge: otros atributos guardados se conservan.
	Upsert(ctx context.Context, uid string, profile entity.DeliveryProfile) error
}
