package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetadeleste/avkit/pkg/config"
)

type gateSettings struct {
	MaxConcurrent int    `env:"TEST_GATE_MAX" envDefault:"5"`
	Environment   string `env:"TEST_GATE_ENV" envDefault:"backend"`
	Endpoint      string `env:"TEST_GATE_ENDPOINT"`
}

type requiredSettings struct {
	Endpoint string `env:"TEST_REQUIRED_ENDPOINT,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when the environment is empty", func(t *testing.T) {
		config.Reset()

		var cfg gateSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 5, cfg.MaxConcurrent)
		assert.Equal(t, "backend", cfg.Environment)
		assert.Empty(t, cfg.Endpoint)
	})

	t.Run("environment values override defaults", func(t *testing.T) {
		t.Setenv("TEST_GATE_MAX", "12")
		t.Setenv("TEST_GATE_ENDPOINT", "https://api.example.com")
		config.Reset()

		var cfg gateSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 12, cfg.MaxConcurrent)
		assert.Equal(t, "https://api.example.com", cfg.Endpoint)
	})

	t.Run("second load is served from the cache", func(t *testing.T) {
		t.Setenv("TEST_GATE_MAX", "7")
		config.Reset()

		var first gateSettings
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_GATE_MAX", "99")

		var second gateSettings
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.MaxConcurrent, second.MaxConcurrent)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		os.Unsetenv("TEST_REQUIRED_ENDPOINT")
		config.Reset()

		var cfg requiredSettings
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParse)
	})

	t.Run("nil destination is rejected", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[gateSettings](nil), config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("values from the file land in the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TEST_GATE_ENV=file_value\n"), 0o600))

		t.Setenv("TEST_GATE_ENV", "old")
		require.NoError(t, config.LoadEnv(path))
		assert.Equal(t, "file_value", os.Getenv("TEST_GATE_ENV"))
	})

	t.Run("missing file fails", func(t *testing.T) {
		assert.ErrorIs(t, config.LoadEnv("testdata/nope.env"), config.ErrEnvFile)
	})

	t.Run("must variant panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			config.MustLoadEnv("testdata/nope.env")
		})
	})
}
