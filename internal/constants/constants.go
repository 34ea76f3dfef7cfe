// Package constants provides centralized constant values used throughout
// sigconform. This package is the single source of truth for all shared
// constants and MUST NOT import any other internal packages.
package constants

import "time"

// Directory names and paths used by sigconform for organizing data.
const (
	// SigconformHome is the hidden directory name where sigconform stores
	// its global configuration and logs. Created in the user's home
	// directory unless SIGCONFORM_HOME overrides it.
	SigconformHome = ".sigconform"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.sigconform/logs/sigconform.log
	CLILogFileName = "sigconform.log"

	// GlobalConfigName is the name of the global configuration file,
	// located in the sigconform home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the per-project directory holding the project
	// configuration file.
	ProjectConfigDir = ".sigconform"
)

// Environment variable names.
const (
	// HomeEnvVar overrides the sigconform home directory location.
	HomeEnvVar = "SIGCONFORM_HOME"

	// EnvPrefix is the prefix for configuration environment variables
	// (e.g., SIGCONFORM_SIGNER_TIMEOUT).
	EnvPrefix = "SIGCONFORM"
)

// Signer invocation defaults.
const (
	// DefaultSignerTimeout bounds each individual signer invocation. A
	// timeout resolves that case to a Rejected outcome without aborting
	// sibling cases.
	DefaultSignerTimeout = 30 * time.Second

	// DefaultSignerCommand is the external signer binary invoked per case.
	DefaultSignerCommand = "httpsig-signer"
)

// Suite execution defaults.
const (
	// DefaultConcurrency bounds the number of cases in flight at once.
	// Signer invocations are I/O-bound, so a small pool keeps the external
	// signer from being flooded while still overlapping calls.
	DefaultConcurrency = 4

	// DefaultBaselineScheme is the scheme temporal-skew scenarios run
	// against.
	DefaultBaselineScheme = "rsa-sha256"

	// TemporalSkewSeconds is the offset applied to created/expires
	// timestamps when probing freshness enforcement.
	TemporalSkewSeconds = 1000
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
