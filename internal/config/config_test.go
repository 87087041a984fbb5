package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulink/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.InDelta(t, 0.22, cfg.Billing.CotisationRate, 1e-9)
	assert.InDelta(t, 0.002, cfg.Billing.FormationRate, 1e-9)
	assert.InDelta(t, 20.0, cfg.Billing.DefaultTauxTVA, 1e-9)
	assert.Equal(t, 30, cfg.Billing.PaymentTermDays)
	assert.Equal(t, time.Hour, cfg.Billing.OverdueSweepInterval)
	assert.False(t, cfg.Rollbar.Enabled())
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDULINK_DB_HOST", "db.internal")
	t.Setenv("EDULINK_BILLING_COTISATION_RATE", "0.211")
	t.Setenv("EDULINK_CORS_ALLOWED_ORIGINS", " https://app.edulink.fr , ,https://admin.edulink.fr")
	t.Setenv("EDULINK_ROLLBAR_TOKEN", "tok")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.InDelta(t, 0.211, cfg.Billing.CotisationRate, 1e-9)
	assert.Equal(t, []string{"https://app.edulink.fr", "https://admin.edulink.fr"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Rollbar.Enabled())
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("EDULINK_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_SendgridRequiresKey(t *testing.T) {
	t.Setenv("EDULINK_EMAIL_PROVIDER", "sendgrid")
	t.Setenv("EDULINK_EMAIL_SENDGRID_API_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UnknownEmailProvider(t *testing.T) {
	t.Setenv("EDULINK_EMAIL_PROVIDER", "carrier-pigeon")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}
