package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Vels Grace Crochet", cfg.Store.ShopName)
	assert.Equal(t, "919876543210", cfg.Store.SellerNumber, "número de respaldo documentado")
	assert.Equal(t, "wa.me", cfg.Store.MessagingHost)
	assert.Equal(t, "+91", cfg.Store.CountryCode)
	assert.Equal(t, 5*time.Minute, cfg.OTP.CodeTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ADMIN_PHONE_NUMBER", "+919000000001")
	t.Setenv("SELLER_WHATSAPP_NUMBER", "911112223334")
	t.Setenv("OTP_CODE_TTL", "90")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "+919000000001", cfg.Store.AdminPhone)
	assert.Equal(t, "911112223334", cfg.Store.SellerNumber)
	assert.Equal(t, 90*time.Second, cfg.OTP.CodeTTL, "un número se interpreta como segundos")
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_ProduccionSinSecretoFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "vgc", Password: "p@ss:word", DBName: "vgc_store", SSLMode: "disable"}
	assert.Equal(t, "postgres://vgc:p%40ss%3Aword@db:5432/vgc_store?sslmode=disable", c.ConnectionString())
}
