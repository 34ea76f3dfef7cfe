// Package errors provides centralized error handling for sigconform.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be checked
// using errors.Is().
//
// Rule violations are NOT errors: they are recorded as failed verdicts and
// surfaced in the aggregate report. Only infrastructural failures (signer
// unreachable, malformed configuration, catalog missing a required key) use
// the sentinels below to abort a run.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrSignerUnavailable indicates the external signer binary could not be
	// found or started. This is an infrastructure failure, not a rejection.
	ErrSignerUnavailable = errors.New("signer unavailable")

	// ErrSignerTimeout indicates a single signer invocation exceeded its
	// bounded timeout. Converted by the adapter into a Rejected outcome.
	ErrSignerTimeout = errors.New("signer invocation timed out")

	// ErrSignerRejected wraps the signer-reported reason when the external
	// signer returns a non-zero status. An accepted rejection path, not a
	// rule violation.
	ErrSignerRejected = errors.New("signer rejected request")

	// ErrDuplicateScheme indicates the registry source names the same scheme
	// twice, breaking the name uniqueness invariant.
	ErrDuplicateScheme = errors.New("duplicate scheme in registry")

	// ErrSchemeNotFound indicates a scheme name is absent from the registry.
	ErrSchemeNotFound = errors.New("scheme not found in registry")

	// ErrKeyNotFound indicates the catalog holds no key material a case
	// requires. The case is ill-formed and the run aborts.
	ErrKeyNotFound = errors.New("no key material for key type")

	// ErrVectorNotFound indicates a named target vector is not in the
	// vector catalog.
	ErrVectorNotFound = errors.New("target vector not found")

	// ErrIllFormedCase indicates the matrix builder could not construct a
	// well-formed case (e.g., a required key type has no catalog entry).
	ErrIllFormedCase = errors.New("ill-formed case")

	// ErrConformanceFailed indicates the suite completed but one or more
	// cases violated a conformance rule.
	ErrConformanceFailed = errors.New("conformance failures detected")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSigner indicates an invalid signer configuration value.
	ErrConfigInvalidSigner = errors.New("invalid signer configuration")

	// ErrConfigInvalidSuite indicates an invalid suite configuration value.
	ErrConfigInvalidSuite = errors.New("invalid suite configuration")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)
