package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.BackendBaseURL)
	assert.Equal(t, "static/uploads", cfg.UploadDir)
	assert.Equal(t, 100, cfg.TrendingScore)
	assert.Equal(t, "10.00", cfg.FlatShippingCost.StringFixed(2))
	assert.Len(t, cfg.CSRFKey, 32, "missing keys are generated, never empty")
	assert.Len(t, cfg.SessionKey, 32)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("TRENDING_SCORE", "250")
	t.Setenv("FLAT_SHIPPING_COST", "15.50")
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString(key))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.example.com", cfg.BackendBaseURL)
	assert.Equal(t, 250, cfg.TrendingScore)
	assert.Equal(t, "15.50", cfg.FlatShippingCost.StringFixed(2))
	assert.Equal(t, key, cfg.SessionKey)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("TRENDING_SCORE", "lots")
	t.Setenv("FLAT_SHIPPING_COST", "free")
	t.Setenv("CSRF_KEY", "too-short")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port, "an unparseable port falls back to the default")
	assert.Equal(t, 100, cfg.TrendingScore)
	assert.Equal(t, "10.00", cfg.FlatShippingCost.StringFixed(2))
	assert.Len(t, cfg.CSRFKey, 32, "a short key is replaced, not used")
}
