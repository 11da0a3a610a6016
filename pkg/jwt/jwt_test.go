package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/vgc-store/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUID    = "6f1c1a5e-0000-5000-8000-000000000001"
	testPhone  = "+919876543210"
	testIssuer = "vgc-store-test"
)

func TestGenerateAndParse_Sesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testPhone, testIssuer, 60)
	require.NoError(t, err)

	uid, phone, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUID, uid)
	assert.Equal(t, testPhone, phone)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testPhone, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testPhone, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUID, testPhone, testIssuer, 60)
	assert.Error(t, err)
}

func TestChallenge_RoundTrip(t *testing.T) {
	tok, jti, err := pkgjwt.GenerateChallenge(testSecret, testIssuer, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	gotJTI, exp, err := pkgjwt.ParseChallenge(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, jti, gotJTI)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)
}

func TestChallenge_NoSirveComoSesion(t *testing.T) {
	tok, _, err := pkgjwt.GenerateChallenge(testSecret, testIssuer, time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token de desafío no debe autenticar")
}

func TestSesion_NoSirveComoChallenge(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testPhone, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.ParseChallenge(testSecret, tok)
	assert.Error(t, err)
}
