package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FX_SOURCE", "HTTP")
	t.Setenv("FX_REFRESH_INTERVAL", "30m")
	t.Setenv("FX_RETRY_INTERVAL", "not-a-duration")
	t.Setenv("REPORTING_HOLIDAY_COUNTRY", "de")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, FXSourceHTTP, cfg.FXSource)
	assert.Equal(t, 30*time.Minute, cfg.FXRefreshInterval)
	assert.Equal(t, 2*time.Minute, cfg.FXRetryInterval)
	assert.Equal(t, "DE", cfg.ReportingHolidayCountry)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidFXSourceFallsBack(t *testing.T) {
	t.Setenv("FX_SOURCE", "carrier-pigeon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, FXSourceDB, cfg.FXSource)
}

func TestLoadConfig_AuthAndDatabaseChecks(t *testing.T) {
	t.Setenv("JWT_ISSUER", "billing-gateway")
	t.Setenv("ENABLE_DB_CHECK", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "billing-gateway", cfg.JWTIssuer)
	assert.True(t, cfg.EnableDBCheck)
}
