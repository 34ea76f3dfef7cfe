package config

import (
	"github.com/sigconform/sigconform/internal/errors"
)

// maxConcurrency caps the case worker pool; beyond this the external signer
// is the bottleneck anyway.
const maxConcurrency = 64

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Signer command must not be empty
//   - Signer timeout must be positive
//   - Suite concurrency must be between 1 and 64
//   - Suite baseline scheme must not be empty
//   - Suite headers must not be empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSignerConfig(&cfg.Signer); err != nil {
		return err
	}

	return validateSuiteConfig(&cfg.Suite)
}

// validateSignerConfig checks signer-specific configuration values.
func validateSignerConfig(cfg *SignerConfig) error {
	if cfg.Command == "" {
		return errors.Wrap(errors.ErrConfigInvalidSigner, "signer.command must not be empty")
	}

	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSigner,
			"signer.timeout must be positive, got %s", cfg.Timeout)
	}

	return nil
}

// validateSuiteConfig checks suite-specific configuration values.
func validateSuiteConfig(cfg *SuiteConfig) error {
	if cfg.Concurrency < 1 || cfg.Concurrency > maxConcurrency {
		return errors.Wrapf(errors.ErrConfigInvalidSuite,
			"suite.concurrency must be between 1 and %d, got %d", maxConcurrency, cfg.Concurrency)
	}

	if cfg.BaselineScheme == "" {
		return errors.Wrap(errors.ErrConfigInvalidSuite, "suite.baseline_scheme must not be empty")
	}

	if len(cfg.Headers) == 0 {
		return errors.Wrap(errors.ErrConfigInvalidSuite, "suite.headers must not be empty")
	}

	return nil
}
