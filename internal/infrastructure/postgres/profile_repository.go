package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de entrega por UID. La columna extra (JSONB) guarda atributos ajenos a los
// cuatro campos y el upsert nunca la toca.
type ProfileRepo struct {
	q Querier
}

func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

func (r *ProfileRepo) Get(ctx context.Context, uid string) (*entity.DeliveryProfile, error) {
	var p entity.DeliveryProfile
	err := r.q.QueryRow(ctx,
		`SELECT name, phone, address, location FROM delivery_profiles WHERE uid = $1`, uid,
	).Scan(&p.Name, &p.Phone, &p.Address, &p.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Upsert escribe solo los cuatro campos del perfil.
func (r *ProfileRepo) Upsert(ctx context.Context, uid string, profile entity.DeliveryProfile) error {
	query := `
		INSERT INTO delivery_profiles (uid, name, phone, address, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (uid) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			location = EXCLUDED.location,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, uid, profile.Name, profile.Phone, profile.Address, profile.Location); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
