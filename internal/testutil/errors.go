// Package testutil provides testing utilities for sigconform.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockSignerRejected simulates the external signer refusing a request.
	ErrMockSignerRejected = errors.New("signer refused request")

	// ErrMockSignerCrash simulates the external signer dying mid-invocation.
	ErrMockSignerCrash = errors.New("signer crashed")

	// ErrMockExecFailed simulates a subprocess execution failure.
	ErrMockExecFailed = errors.New("exec failed")

	// ErrMockNotFound simulates a missing resource.
	ErrMockNotFound = errors.New("not found")
)
