package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/pkg/jwt"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del autenticador.
type Config struct {
	CountryCode string // prefijo fijo, ej. +91
	JWT         JWTConfig
}

// ErrInvalidTransition la sesión no está en el estado que exige la operación.
var ErrInvalidTransition = fmt.Errorf("%w: operación no permitida en el estado actual de la sesión", domain.ErrValidation)

// OTPAuthenticator máquina de estados Unauthenticated → ChallengeSent → Verified.
// No guarda sesiones: cada transición recibe y devuelve un entity.AuthSession.
type OTPAuthenticator struct {
	provider ports.IdentityProvider
	returns  *ReturnURLStore
	cfg      Config
	log      *logger.Logger
}

// NewOTPAuthenticator construye el autenticador.
func NewOTPAuthenticator(provider ports.IdentityProvider, returns *ReturnURLStore, cfg Config, log *logger.Logger) *OTPAuthenticator {
	if cfg.CountryCode == "" {
		cfg.CountryCode = "+91"
	}
	return &OTPAuthenticator{provider: provider, returns: returns, cfg: cfg, log: log.Named("auth")}
}

// Start sesión nueva con un token anti-bot listo para el primer envío.
func (a *OTPAuthenticator) Start(ctx context.Context) (entity.AuthSession, error) {
	token, err := a.provider.IssueChallengeToken(ctx)
	if err != nil {
		return entity.AuthSession{State: entity.AuthStateUnauthenticated}, fmt.Errorf("%w: %w", domain.ErrAuthChallenge, err)
	}
	return entity.AuthSession{State: entity.AuthStateUnauthenticated, ChallengeToken: token}, nil
}

// RequestCode envía el código al número nacional de 10 dígitos prefijado con el código de país.
// Si el proveedor falla, el token anti-bot se quema y se emite uno nuevo para reintentar.
func (a *OTPAuthenticator) RequestCode(ctx context.Context, sess entity.AuthSession, nationalNumber string) (entity.AuthSession, error) {
	if sess.Current() != entity.AuthStateUnauthenticated {
		return sess, ErrInvalidTransition
	}
	if !isDigits(nationalNumber, 10) {
		return sess, domain.ErrInvalidPhoneNumber
	}
	phone := a.cfg.CountryCode + nationalNumber

	token := sess.ChallengeToken
	if token == "" {
		var err error
		if token, err = a.provider.IssueChallengeToken(ctx); err != nil {
			return sess, fmt.Errorf("%w: %w", domain.ErrAuthChallenge, err)
		}
	}

	verificationID, err := a.provider.RequestCode(ctx, phone, token)
	if err != nil {
		a.log.Warn().Err(err).Msg("envío de código fallido, se renueva el token de desafío")
		a.provider.InvalidateChallengeToken(ctx, token)
		next := entity.AuthSession{State: entity.AuthStateUnauthenticated}
		if fresh, ferr := a.provider.IssueChallengeToken(ctx); ferr == nil {
			next.ChallengeToken = fresh
		} else {
			a.log.Error().Err(ferr).Msg("no se pudo emitir un token de desafío nuevo")
		}
		return next, fmt.Errorf("%w: %w", domain.ErrAuthChallenge, err)
	}

	return entity.AuthSession{
		State:          entity.AuthStateChallengeSent,
		PhoneNumber:    phone,
		VerificationID: verificationID,
	}, nil
}

// VerifyCode confirma el código de 6 dígitos. Un código incorrecto deja la sesión en ChallengeSent.
func (a *OTPAuthenticator) VerifyCode(ctx context.Context, sess entity.AuthSession, code string) (entity.AuthSession, error) {
	if sess.Current() != entity.AuthStateChallengeSent || sess.VerificationID == "" {
		return sess, ErrInvalidTransition
	}
	if !isDigits(code, 6) {
		return sess, domain.ErrInvalidCode
	}
	identity, err := a.provider.VerifyCode(ctx, sess.VerificationID, code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCode) {
			return sess, domain.ErrInvalidCode
		}
		return sess, fmt.Errorf("%w: %w", domain.ErrAuthChallenge, err)
	}
	if identity == nil || identity.UID == "" || identity.PhoneNumber != sess.PhoneNumber {
		a.log.Warn().Msg("identidad devuelta no coincide con el teléfono del desafío")
		return sess, domain.ErrInvalidCode
	}
	return entity.AuthSession{
		State:       entity.AuthStateVerified,
		PhoneNumber: identity.PhoneNumber,
		Identity:    identity,
	}, nil
}

// ResetChallenge "cambiar número": vuelve a Unauthenticated sin handle ni token.
func (a *OTPAuthenticator) ResetChallenge(sess entity.AuthSession) (entity.AuthSession, error) {
	if sess.Current() != entity.AuthStateChallengeSent {
		return sess, ErrInvalidTransition
	}
	return entity.AuthSession{State: entity.AuthStateUnauthenticated}, nil
}

// Complete firma el token de sesión y consume la ruta de retorno guardada (por defecto "/").
func (a *OTPAuthenticator) Complete(ctx context.Context, clientID string, sess entity.AuthSession) (token, returnURL string, err error) {
	if !sess.Verified() {
		return "", "", ErrInvalidTransition
	}
	token, err = jwt.Generate(a.cfg.JWT.Secret, sess.Identity.UID, sess.Identity.PhoneNumber, a.cfg.JWT.Issuer, a.cfg.JWT.ExpMinutes)
	if err != nil {
		return "", "", err
	}
	returnURL = "/"
	if a.returns != nil && clientID != "" {
		returnURL = a.returns.Consume(ctx, clientID)
	}
	a.log.Info().Str("uid", sess.Identity.UID).Msg("sesión verificada")
	return token, returnURL, nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
