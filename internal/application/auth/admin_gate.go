package auth

import (
	"strings"

	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// AdminGate autoriza al único administrador por coincidencia exacta del teléfono E.164.
// Sin teléfono configurado nadie es administrador.
type AdminGate struct {
	adminPhone string
}

func NewAdminGate(adminPhone string) *AdminGate {
	return &AdminGate{adminPhone: strings.TrimSpace(adminPhone)}
}

// IsAdmin true si la identidad corresponde al administrador.
func (g *AdminGate) IsAdmin(identity *entity.Identity) bool {
	if g == nil || g.adminPhone == "" || identity == nil {
		return false
	}
	return identity.PhoneNumber == g.adminPhone
}

// Authorize devuelve domain.ErrAuthorization para cualquier identidad que no sea el administrador.
func (g *AdminGate) Authorize(identity *entity.Identity) error {
	if !g.IsAdmin(identity) {
		return domain.ErrAuthorization
	}
	return nil
}
