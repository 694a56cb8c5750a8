package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Locale   string        `env:"TEST_CFG_LOCALE" envDefault:"es"`
	Interval time.Duration `env:"TEST_CFG_INTERVAL" envDefault:"100ms"`
	Debug    bool          `env:"TEST_CFG_DEBUG" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, 100*time.Millisecond, cfg.Interval)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_LOCALE", "en")
	t.Setenv("TEST_CFG_INTERVAL", "2s")
	t.Setenv("TEST_CFG_DEBUG", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.True(t, cfg.Debug)
}

type checkedConfig struct {
	Port int `env:"TEST_CFG_PORT" envDefault:"8080"`
}

func (c *checkedConfig) Validate() error {
	if c.Port > 65535 {
		return errors.New("port out of range")
	}
	return nil
}

func TestLoad_RunsValidate(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "70000")

	var cfg checkedConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config: port out of range")
}

type requiredConfig struct {
	BaseURL string `env:"TEST_CFG_BASE_URL,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
