// Package identity proveedor propio de verificación por teléfono: códigos de un solo uso por SMS
// y tokens de desafío anti-bot firmados.
package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/pkg/jwt"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

var _ ports.IdentityProvider = (*OTPProvider)(nil)

// SMSSender entrega el texto del código al teléfono E.164.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Errores del desafío anti-bot.
var (
	ErrChallengeToken = errors.New("token de desafío inválido o expirado")
	ErrChallengeUsed  = errors.New("token de desafío ya utilizado")
)

// uidNamespace espacio de nombres para derivar el UID estable de cada teléfono.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("vgc-store:phone"))

// Config parámetros del proveedor.
type Config struct {
	Secret       string
	Issuer       string
	CodeTTL      time.Duration
	ChallengeTTL time.Duration
	MaxAttempts  int
	BcryptCost   int
	ShopName     string
}

type pendingCode struct {
	phone     string
	hash      []byte
	expiresAt time.Time
	attempts  int
}

// OTPProvider guarda los desafíos pendientes en memoria. Los códigos se guardan con bcrypt.
type OTPProvider struct {
	mu      sync.Mutex
	pending map[string]*pendingCode // verificationID -> desafío
	burned  map[string]time.Time    // jti -> expiración del token

	sender  SMSSender
	cfg     Config
	log     *logger.Logger
	now     func() time.Time
	genCode func() (string, error)
}

// Option ajustes opcionales (tests).
type Option func(*OTPProvider)

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option {
	return func(p *OTPProvider) { p.now = now }
}

// WithCodeGenerator reemplaza el generador de códigos.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(p *OTPProvider) { p.genCode = gen }
}

// NewOTPProvider construye el proveedor.
func NewOTPProvider(sender SMSSender, cfg Config, log *logger.Logger, opts ...Option) *OTPProvider {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	p := &OTPProvider{
		pending: make(map[string]*pendingCode),
		burned:  make(map[string]time.Time),
		sender:  sender,
		cfg:     cfg,
		log:     log.Named("otp_provider"),
		now:     time.Now,
		genCode: randomCode,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IssueChallengeToken token anti-bot de un solo uso.
func (p *OTPProvider) IssueChallengeToken(_ context.Context) (string, error) {
	token, _, err := jwt.GenerateChallenge(p.cfg.Secret, p.cfg.Issuer, p.cfg.ChallengeTTL)
	if err != nil {
		return "", fmt.Errorf("emitir token de desafío: %w", err)
	}
	return token, nil
}

// InvalidateChallengeToken quema el token. Un token ilegible se ignora.
func (p *OTPProvider) InvalidateChallengeToken(_ context.Context, token string) {
	jti, exp, err := jwt.ParseChallenge(p.cfg.Secret, token)
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.burned[jti] = exp
}

// RequestCode consume el token de desafío, genera el código y lo envía por SMS.
func (p *OTPProvider) RequestCode(ctx context.Context, phoneE164, challengeToken string) (string, error) {
	if !validE164(phoneE164) {
		return "", domain.ErrInvalidPhoneNumber
	}
	jti, exp, err := jwt.ParseChallenge(p.cfg.Secret, challengeToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChallengeToken, err)
	}

	code, err := p.genCode()
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), p.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash código: %w", err)
	}
	verificationID := uuid.NewString()

	p.mu.Lock()
	p.sweepLocked()
	if _, used := p.burned[jti]; used {
		p.mu.Unlock()
		return "", ErrChallengeUsed
	}
	p.burned[jti] = exp
	p.pending[verificationID] = &pendingCode{
		phone:     phoneE164,
		hash:      hash,
		expiresAt: p.now().Add(p.cfg.CodeTTL),
	}
	p.mu.Unlock()

	body := fmt.Sprintf("%s is your %s verification code. It expires in %d minutes.",
		code, p.cfg.ShopName, int(p.cfg.CodeTTL.Minutes()))
	if err := p.sender.Send(ctx, phoneE164, body); err != nil {
		p.mu.Lock()
		delete(p.pending, verificationID)
		p.mu.Unlock()
		return "", fmt.Errorf("enviar SMS: %w", err)
	}
	p.log.Info().Str("verification_id", verificationID).Msg("código enviado")
	return verificationID, nil
}

// VerifyCode compara el código. Expirado, agotado o incorrecto: domain.ErrInvalidCode.
// Un código correcto se consume.
func (p *OTPProvider) VerifyCode(_ context.Context, verificationID, code string) (*entity.Identity, error) {
	p.mu.Lock()
	p.sweepLocked()
	pc, ok := p.pending[verificationID]
	if !ok {
		p.mu.Unlock()
		return nil, domain.ErrInvalidCode
	}
	if pc.attempts >= p.cfg.MaxAttempts {
		delete(p.pending, verificationID)
		p.mu.Unlock()
		return nil, domain.ErrInvalidCode
	}
	pc.attempts++
	hash, phone := pc.hash, pc.phone
	p.mu.Unlock()

	// bcrypt fuera del lock
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return nil, domain.ErrInvalidCode
	}

	p.mu.Lock()
	_, still := p.pending[verificationID]
	delete(p.pending, verificationID)
	p.mu.Unlock()
	if !still {
		return nil, domain.ErrInvalidCode
	}

	return &entity.Identity{
		UID:         uuid.NewSHA1(uidNamespace, []byte(phone)).String(),
		PhoneNumber: phone,
	}, nil
}

// sweepLocked descarta desafíos y tokens quemados ya expirados. Requiere p.mu.
func (p *OTPProvider) sweepLocked() {
	now := p.now()
	for id, pc := range p.pending {
		if now.After(pc.expiresAt) {
			delete(p.pending, id)
		}
	}
	for jti, exp := range p.burned {
		if now.After(exp) {
			delete(p.burned, jti)
		}
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func validE164(phone string) bool {
	if !strings.HasPrefix(phone, "+") || len(phone) < 8 || len(phone) > 16 {
		return false
	}
	return strings.IndexFunc(phone[1:], func(r rune) bool { return r < '0' || r > '9' }) < 0
}
