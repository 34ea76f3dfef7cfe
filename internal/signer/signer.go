// Package signer provides the boundary abstraction between the conformance
// core and the external signer implementation under test.
//
// The external signer is a black box: a separate process that accepts a
// signing request on its command line and either prints a signature artifact
// or exits non-zero. This package maps structured signing requests onto that
// invocation contract and normalizes the result into a SignatureOutcome.
//
// IMPORTANT: This package may import internal/keys, internal/vectors,
// internal/errors, internal/domain, and internal/ctxutil. It MUST NOT import
// internal/rules or internal/matrix.
package signer

import (
	"context"

	"github.com/sigconform/sigconform/internal/domain"
)

// Signer turns a signing request into a normalized outcome.
//
// Implementations return an outcome for every decision the external signer
// makes, including rejections and timeouts. The error return is reserved for
// infrastructural failures (signer binary missing, required key absent from
// the catalog, suite cancellation) which abort the run.
//
// Context should be used to control cancellation; a suite-level abort must
// interrupt an in-flight invocation.
type Signer interface {
	// Generate executes one signing attempt and returns the outcome.
	Generate(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error)
}
