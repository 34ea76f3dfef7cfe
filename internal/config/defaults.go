package config

import (
	"github.com/sigconform/sigconform/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Signer: SignerConfig{
			// Command: the conventional signer shim name; override to point
			// at the implementation under test.
			Command: constants.DefaultSignerCommand,

			// Timeout: 30 seconds is generous for a single signing
			// operation while still surfacing hung signers quickly.
			Timeout: constants.DefaultSignerTimeout,
		},
		Suite: SuiteConfig{
			// Concurrency: signer calls are I/O-bound; a small pool
			// overlaps them without flooding the external process.
			Concurrency: constants.DefaultConcurrency,

			// BaselineScheme: the scheme temporal probes run against.
			BaselineScheme: constants.DefaultBaselineScheme,

			// Headers: the minimal covered-header list every signer
			// implementation supports.
			Headers: []string{"date"},
		},
	}
}
