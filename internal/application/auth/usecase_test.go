package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/infrastructure/memory"
	"github.com/jhoicas/vgc-store/pkg/jwt"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

const secret = "test-secret"

// fakeProvider proveedor de identidad con respuestas programables.
type fakeProvider struct {
	issued      int
	invalidated []string
	requests    []string
	failRequest error
	failVerify  error
	code        string
	identity    *entity.Identity
}

func (f *fakeProvider) IssueChallengeToken(context.Context) (string, error) {
	f.issued++
	return fmt.Sprintf("tok-%d", f.issued), nil
}

func (f *fakeProvider) InvalidateChallengeToken(_ context.Context, token string) {
	f.invalidated = append(f.invalidated, token)
}

func (f *fakeProvider) RequestCode(_ context.Context, phone, _ string) (string, error) {
	f.requests = append(f.requests, phone)
	if f.failRequest != nil {
		return "", f.failRequest
	}
	return "vid-1", nil
}

func (f *fakeProvider) VerifyCode(_ context.Context, _, code string) (*entity.Identity, error) {
	if f.failVerify != nil {
		return nil, f.failVerify
	}
	if code != f.code {
		return nil, domain.ErrInvalidCode
	}
	return f.identity, nil
}

func newAuthenticator() (*auth.OTPAuthenticator, *fakeProvider, *auth.ReturnURLStore) {
	p := &fakeProvider{code: "123456", identity: &entity.Identity{UID: "u1", PhoneNumber: "+919876543210"}}
	returns := auth.NewReturnURLStore(memory.NewKVStore(), logger.Nop())
	a := auth.NewOTPAuthenticator(p, returns, auth.Config{
		CountryCode: "+91",
		JWT:         auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "vgc"},
	}, logger.Nop())
	return a, p, returns
}

func TestRequestCode_TelefonoInvalidoSinLlamarProveedor(t *testing.T) {
	a, p, _ := newAuthenticator()
	sess, err := a.Start(context.Background())
	require.NoError(t, err)

	for _, phone := range []string{"987654321", "98765432100", "98765x3210", "", "+919876543"} {
		out, err := a.RequestCode(context.Background(), sess, phone)
		assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber, phone)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, entity.AuthStateUnauthenticated, out.Current())
	}
	assert.Empty(t, p.requests)
}

func TestRequestCode_PrefijaCodigoDePais(t *testing.T) {
	a, p, _ := newAuthenticator()
	sess, err := a.Start(context.Background())
	require.NoError(t, err)

	out, err := a.RequestCode(context.Background(), sess, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, []string{"+919876543210"}, p.requests)
	assert.Equal(t, entity.AuthStateChallengeSent, out.State)
	assert.Equal(t, "vid-1", out.VerificationID)
	assert.Equal(t, "+919876543210", out.PhoneNumber)
}

func TestRequestCode_FalloRenuevaToken(t *testing.T) {
	a, p, _ := newAuthenticator()
	p.failRequest = errors.New("quota")
	sess, err := a.Start(context.Background())
	require.NoError(t, err)

	out, err := a.RequestCode(context.Background(), sess, "9876543210")
	assert.ErrorIs(t, err, domain.ErrAuthChallenge)
	assert.Equal(t, entity.AuthStateUnauthenticated, out.State)
	assert.Equal(t, []string{sess.ChallengeToken}, p.invalidated, "el token usado se quema")
	assert.NotEmpty(t, out.ChallengeToken)
	assert.NotEqual(t, sess.ChallengeToken, out.ChallengeToken, "se emite un token nuevo")
}

func TestRequestCode_SinTokenEmiteUno(t *testing.T) {
	a, p, _ := newAuthenticator()
	_, err := a.RequestCode(context.Background(), entity.AuthSession{}, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, 1, p.issued)
}

func TestRequestCode_RechazadoSiYaHayDesafio(t *testing.T) {
	a, _, _ := newAuthenticator()
	sess := entity.AuthSession{State: entity.AuthStateChallengeSent, VerificationID: "vid"}
	_, err := a.RequestCode(context.Background(), sess, "9876543210")
	assert.ErrorIs(t, err, auth.ErrInvalidTransition)
}

func TestVerifyCode_FlujoCompleto(t *testing.T) {
	ctx := context.Background()
	a, _, returns := newAuthenticator()
	require.NoError(t, returns.Remember(ctx, "c1", "/checkout"))

	sess, err := a.Start(ctx)
	require.NoError(t, err)
	sess, err = a.RequestCode(ctx, sess, "9876543210")
	require.NoError(t, err)
	sess, err = a.VerifyCode(ctx, sess, "123456")
	require.NoError(t, err)
	require.True(t, sess.Verified())

	token, returnURL, err := a.Complete(ctx, "c1", sess)
	require.NoError(t, err)
	assert.Equal(t, "/checkout", returnURL)

	uid, phone, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, "+919876543210", phone)

	_, again, err := a.Complete(ctx, "c1", sess)
	require.NoError(t, err)
	assert.Equal(t, "/", again, "la ruta de retorno se consume")
}

func TestVerifyCode_CodigoIncorrectoConservaDesafio(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newAuthenticator()
	sess, err := a.RequestCode(ctx, entity.AuthSession{}, "9876543210")
	require.NoError(t, err)

	for _, code := range []string{"000000", "12345", "abcdef"} {
		out, err := a.VerifyCode(ctx, sess, code)
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
		assert.Equal(t, sess, out)
	}
}

func TestVerifyCode_FalloDelProveedor(t *testing.T) {
	ctx := context.Background()
	a, p, _ := newAuthenticator()
	sess, err := a.RequestCode(ctx, entity.AuthSession{}, "9876543210")
	require.NoError(t, err)
	p.failVerify = errors.New("timeout")

	_, err = a.VerifyCode(ctx, sess, "123456")
	assert.ErrorIs(t, err, domain.ErrAuthChallenge)
}

func TestVerifyCode_IdentidadDeOtroTelefono(t *testing.T) {
	ctx := context.Background()
	a, p, _ := newAuthenticator()
	sess, err := a.RequestCode(ctx, entity.AuthSession{}, "9876543210")
	require.NoError(t, err)
	p.identity = &entity.Identity{UID: "u2", PhoneNumber: "+910000000000"}

	_, err = a.VerifyCode(ctx, sess, "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerifyCode_SinDesafio(t *testing.T) {
	a, _, _ := newAuthenticator()
	_, err := a.VerifyCode(context.Background(), entity.AuthSession{}, "123456")
	assert.ErrorIs(t, err, auth.ErrInvalidTransition)
}

func TestResetChallenge(t *testing.T) {
	a, _, _ := newAuthenticator()
	sess := entity.AuthSession{State: entity.AuthStateChallengeSent, PhoneNumber: "+919876543210", VerificationID: "vid", ChallengeToken: "tok"}

	out, err := a.ResetChallenge(sess)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthSession{State: entity.AuthStateUnauthenticated}, out)

	_, err = a.ResetChallenge(out)
	assert.ErrorIs(t, err, auth.ErrInvalidTransition)
}

func TestComplete_SinVerificar(t *testing.T) {
	a, _, _ := newAuthenticator()
	_, _, err := a.Complete(context.Background(), "c1", entity.AuthSession{State: entity.AuthStateVerified})
	assert.ErrorIs(t, err, auth.ErrInvalidTransition)
}

func TestReturnURLStore_SoloRutasLocales(t *testing.T) {
	ctx := context.Background()
	s := auth.NewReturnURLStore(memory.NewKVStore(), logger.Nop())
	assert.ErrorIs(t, s.Remember(ctx, "c1", "https://evil.test"), domain.ErrValidation)
	assert.ErrorIs(t, s.Remember(ctx, "c1", "//evil.test"), domain.ErrValidation)
	assert.Equal(t, "/", s.Consume(ctx, "c1"))
}

func TestAdminGate(t *testing.T) {
	gate := auth.NewAdminGate("+919000000001")
	assert.NoError(t, gate.Authorize(&entity.Identity{UID: "a", PhoneNumber: "+919000000001"}))
	assert.ErrorIs(t, gate.Authorize(&entity.Identity{UID: "b", PhoneNumber: "+919000000002"}), domain.ErrAuthorization)
	assert.ErrorIs(t, gate.Authorize(&entity.Identity{UID: "c", PhoneNumber: "9000000001"}), domain.ErrAuthorization, "coincidencia exacta")
	assert.ErrorIs(t, gate.Authorize(nil), domain.ErrAuthorization)

	empty := auth.NewAdminGate("")
	assert.ErrorIs(t, empty.Authorize(&entity.Identity{UID: "x", PhoneNumber: ""}), domain.ErrAuthorization, "sin configuración nadie es admin")
}
