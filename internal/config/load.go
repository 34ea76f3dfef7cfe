package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sigconform/sigconform/internal/constants"
	"github.com/sigconform/sigconform/internal/errors"
)

// newViperInstance creates a new Viper instance with standard sigconform
// configuration: built-in defaults, environment variable prefix
// (SIGCONFORM_), and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("signer.command", defaults.Signer.Command)
	v.SetDefault("signer.timeout", defaults.Signer.Timeout)
	v.SetDefault("suite.concurrency", defaults.Suite.Concurrency)
	v.SetDefault("suite.baseline_scheme", defaults.Suite.BaselineScheme)
	v.SetDefault("suite.headers", defaults.Suite.Headers)
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption returns the decode hook used when unmarshaling, so
// duration strings like "30s" map onto time.Duration fields.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (SIGCONFORM_* prefix)
//  2. Project config (.sigconform/config.yaml)
//  3. Global config (~/.sigconform/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
//
// The function returns an error only for actual configuration problems,
// not for missing config files (which are expected in many scenarios).
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	// Global config provides user-wide defaults (lower precedence).
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	// Project config merges over global (higher precedence).
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("signer.command", cfg.Signer.Command).
		Dur("signer.timeout", cfg.Signer.Timeout).
		Int("suite.concurrency", cfg.Suite.Concurrency).
		Str("suite.baseline_scheme", cfg.Suite.BaselineScheme).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied, allowing partial overrides.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	return ApplyOverrides(cfg, overrides)
}

// ApplyOverrides copies non-zero override values onto cfg and re-validates.
// A nil overrides leaves cfg unchanged.
func ApplyOverrides(cfg, overrides *Config) (*Config, error) {
	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromFile loads configuration from one explicit file path, skipping the
// global/project search. Used by tests and the --config flag.
func LoadFromFile(path string) (*Config, error) {
	v := newViperInstance()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || isConfigNotFoundError(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// applyOverrides copies non-zero override values onto cfg.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Signer.Command != "" {
		cfg.Signer.Command = overrides.Signer.Command
	}
	if len(overrides.Signer.Args) > 0 {
		cfg.Signer.Args = overrides.Signer.Args
	}
	if overrides.Signer.Timeout > 0 {
		cfg.Signer.Timeout = overrides.Signer.Timeout
	}
	if overrides.Suite.Concurrency > 0 {
		cfg.Suite.Concurrency = overrides.Suite.Concurrency
	}
	if overrides.Suite.BaselineScheme != "" {
		cfg.Suite.BaselineScheme = overrides.Suite.BaselineScheme
	}
	if len(overrides.Suite.Headers) > 0 {
		cfg.Suite.Headers = overrides.Suite.Headers
	}
	if overrides.Suite.Vector != "" {
		cfg.Suite.Vector = overrides.Suite.Vector
	}
	if overrides.Registry.Path != "" {
		cfg.Registry.Path = overrides.Registry.Path
	}
	if overrides.Keys.Path != "" {
		cfg.Keys.Path = overrides.Keys.Path
	}
	if overrides.Vectors.Path != "" {
		cfg.Vectors.Path = overrides.Vectors.Path
	}
}

// loadGlobalConfig attempts to load the global config file
// (~/.sigconform/config.yaml). Returns nil if the file doesn't exist or the
// home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // Missing home dir means no global config
	}
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to load the project config file
// (.sigconform/config.yaml). Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
