package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("SMSCAT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.MessageListLimitMax)
	assert.Equal(t, 28800, cfg.TokenTTL)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, "default", cfg.Source("token_ttl"))
	assert.NoError(t, cfg.Validate())
}

func TestFileConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
token_ttl: 600
model_path: /var/lib/smscat/model.json
extra_merchants:
  - blinkit
  - zepto
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	t.Setenv("SMSCAT_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.TokenTTL)
	assert.Equal(t, "file", cfg.Source("token_ttl"))
	assert.Equal(t, "/var/lib/smscat/model.json", cfg.ModelPath)
	assert.Equal(t, []string{"blinkit", "zepto"}, cfg.ExtraMerchants)
	// untouched attributes stay at defaults
	assert.Equal(t, "default", cfg.Source("message_list_limit_max"))
}

func TestFileConfigExplicitZeroValues(t *testing.T) {
	dir := t.TempDir()
	content := `
auth_enabled: false
confidence_threshold: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	t.Setenv("SMSCAT_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, "file", cfg.Source("auth_enabled"))
	assert.Equal(t, float64(0), cfg.ConfidenceThreshold)
	assert.Equal(t, "file", cfg.Source("confidence_threshold"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("token_ttl: 600\n"), 0o644))
	t.Setenv("SMSCAT_CONFIG_PATH", dir)
	t.Setenv("SMSCAT_TOKEN_TTL", "120")
	t.Setenv("SMSCAT_AUTH_ENABLED", "false")
	t.Setenv("SMSCAT_EXTRA_MERCHANTS", "blinkit, zepto ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.TokenTTL)
	assert.Equal(t, "environment", cfg.Source("token_ttl"))
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, []string{"blinkit", "zepto"}, cfg.ExtraMerchants)
}

func TestGetAndReload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SMSCAT_CONFIG_PATH", dir)

	require.NoError(t, Reload())
	assert.Equal(t, 28800, Get().TokenTTL)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("token_ttl: 60\n"), 0o644))
	require.NoError(t, Reload())
	assert.Equal(t, 60, Get().TokenTTL)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	cfg.ConfidenceThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"not-a-cidr"}
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}
	assert.NoError(t, cfg.Validate())
}

func TestIsTrustedProxy(t *testing.T) {
	cfg := newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}

	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.True(t, cfg.IsTrustedProxy("192.168.1.1"))
	assert.False(t, cfg.IsTrustedProxy("172.16.0.1"))
	assert.False(t, cfg.IsTrustedProxy("bogus"))
}
