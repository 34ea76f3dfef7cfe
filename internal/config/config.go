// Package config provides configuration management for sigconform with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest
// precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (SIGCONFORM_* prefix)
//  3. Project config (.sigconform/config.yaml)
//  4. Global config (~/.sigconform/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for sigconform.
type Config struct {
	// Signer contains settings for the external signer invocation.
	Signer SignerConfig `yaml:"signer" mapstructure:"signer"`

	// Suite contains settings for case matrix execution.
	Suite SuiteConfig `yaml:"suite" mapstructure:"suite"`

	// Registry contains settings for the algorithm scheme registry source.
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`

	// Keys contains settings for the key catalog source.
	Keys KeysConfig `yaml:"keys" mapstructure:"keys"`

	// Vectors contains settings for the target vector catalog source.
	Vectors VectorsConfig `yaml:"vectors" mapstructure:"vectors"`
}

// SignerConfig contains settings for the external signer.
type SignerConfig struct {
	// Command is the signer binary invoked once per case.
	// Default: "httpsig-signer"
	Command string `yaml:"command" mapstructure:"command"`

	// Args is a fixed argument prefix prepended to every invocation
	// (e.g., a subcommand name). Default: none.
	Args []string `yaml:"args" mapstructure:"args"`

	// Timeout bounds each individual signer invocation. A timeout resolves
	// that case to a Rejected outcome without aborting sibling cases.
	// Default: 30 seconds
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// SuiteConfig contains settings for case matrix execution.
type SuiteConfig struct {
	// Concurrency bounds the number of cases in flight at once.
	// Default: 4, Valid range: 1-64
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// BaselineScheme is the scheme temporal-skew scenarios run against.
	// Must be a registry-known, non-deprecated scheme.
	// Default: "rsa-sha256"
	BaselineScheme string `yaml:"baseline_scheme" mapstructure:"baseline_scheme"`

	// Headers is the ordered header list every request covers.
	// Default: ["date"]
	Headers []string `yaml:"headers" mapstructure:"headers"`

	// Vector names the HTTP-message fixture every request signs over.
	// Default: "default-get"
	Vector string `yaml:"vector" mapstructure:"vector"`
}

// RegistryConfig contains settings for the scheme registry source.
type RegistryConfig struct {
	// Path is an optional YAML registry file. Empty means the built-in
	// registry table is used.
	Path string `yaml:"path" mapstructure:"path"`
}

// KeysConfig contains settings for the key catalog source.
type KeysConfig struct {
	// Path is an optional YAML key catalog file. Empty means the built-in
	// catalog is used.
	Path string `yaml:"path" mapstructure:"path"`
}

// VectorsConfig contains settings for the target vector catalog source.
type VectorsConfig struct {
	// Path is an optional YAML vector catalog file. Empty means the
	// built-in catalog is used.
	Path string `yaml:"path" mapstructure:"path"`
}
