package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigconform/sigconform/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "httpsig-signer", cfg.Signer.Command)
	assert.Equal(t, 30*time.Second, cfg.Signer.Timeout)
	assert.Equal(t, 4, cfg.Suite.Concurrency)
	assert.Equal(t, "rsa-sha256", cfg.Suite.BaselineScheme)
	assert.Equal(t, []string{"date"}, cfg.Suite.Headers)

	t.Run("defaults validate", func(t *testing.T) {
		require.NoError(t, Validate(cfg))
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return DefaultConfig()
	}

	t.Run("nil config", func(t *testing.T) {
		err := Validate(nil)
		assert.ErrorIs(t, err, errors.ErrConfigNil)
	})

	t.Run("empty signer command", func(t *testing.T) {
		cfg := valid()
		cfg.Signer.Command = ""
		assert.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalidSigner)
	})

	t.Run("non-positive signer timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Signer.Timeout = 0
		assert.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalidSigner)
	})

	t.Run("concurrency out of range", func(t *testing.T) {
		for _, n := range []int{0, -1, 65} {
			cfg := valid()
			cfg.Suite.Concurrency = n
			assert.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalidSuite, "concurrency %d", n)
		}
	})

	t.Run("empty baseline scheme", func(t *testing.T) {
		cfg := valid()
		cfg.Suite.BaselineScheme = ""
		assert.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalidSuite)
	})

	t.Run("empty headers", func(t *testing.T) {
		cfg := valid()
		cfg.Suite.Headers = nil
		assert.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalidSuite)
	})
}

func TestApplyOverrides(t *testing.T) {
	t.Run("non-zero overrides win", func(t *testing.T) {
		cfg := DefaultConfig()
		applyOverrides(cfg, &Config{
			Signer: SignerConfig{Command: "alt-signer", Timeout: 5 * time.Second},
			Suite:  SuiteConfig{Concurrency: 8, Headers: []string{"date", "host"}},
		})

		assert.Equal(t, "alt-signer", cfg.Signer.Command)
		assert.Equal(t, 5*time.Second, cfg.Signer.Timeout)
		assert.Equal(t, 8, cfg.Suite.Concurrency)
		assert.Equal(t, []string{"date", "host"}, cfg.Suite.Headers)
	})

	t.Run("zero values leave config untouched", func(t *testing.T) {
		cfg := DefaultConfig()
		applyOverrides(cfg, &Config{})

		assert.Equal(t, DefaultConfig(), cfg)
	})
}
