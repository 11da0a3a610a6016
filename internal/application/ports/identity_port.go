package ports

import (
	"context"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// IdentityProvider proveedor de identidad por teléfono (OTP).
// Siguiendo el principio de inversión de dependencias, el autenticador solo conoce este contrato.
type IdentityProvider interface {
	// IssueChallengeToken emite un token anti-bot de un solo uso.
	IssueChallengeToken(ctx context.Context) (string, error)
	// InvalidateChallengeToken quema un token para que no pueda reutilizarse.
	InvalidateChallengeToken(ctx context.Context, token string)
	// RequestCode envía el código al teléfono (E.164) y devuelve el handle de verificación.
	RequestCode(ctx context.Context, phoneE164, challengeToken string) (verificationID string, err error)
	// VerifyCode devuelve domain.ErrInvalidCode si el código no coincide o expiró.
	VerifyCode(ctx context.Context, verificationID, code string) (*entity.Identity, error)
}
