// Package rules encodes the normative conformance rules for signature
// generation: registry membership, deprecation, algorithm/key compatibility,
// temporal validity windows, and artifact format.
//
// Rule evaluation is pure: the evaluator classifies a (request, outcome) pair
// as conformant or violating without caring how the outcome was produced and
// without raising errors. Violations are data, recorded in verdicts.
//
// Rules are independent predicates over the same inputs, so evaluation order
// does not affect correctness. For diagnostic clarity, when several
// violations apply to one Signed outcome the first in this order is reported:
// format, algorithm/key mismatch, registry membership, deprecation, future
// created, past expires.
package rules

import (
	"strings"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/domain"
	"github.com/sigconform/sigconform/internal/grammar"
	"github.com/sigconform/sigconform/internal/registry"
)

// KeyFamily returns the key family a scheme name implies, or "" when the
// scheme implies none. The negotiated hs2019 identifier abstracts the real
// scheme behind key metadata and is compatible with any key type; unknown
// scheme names imply no family and fall through to the registry rule.
//
// Compatibility matrix: rsa-* schemes require rsa keys, ecdsa-* require
// ecdsa, hmac-* require hmac, ed25519 requires ed25519.
func KeyFamily(scheme string) string {
	switch {
	case scheme == domain.SchemeHS2019:
		return ""
	case strings.HasPrefix(scheme, "rsa-"):
		return "rsa"
	case strings.HasPrefix(scheme, "ecdsa-"):
		return "ecdsa"
	case strings.HasPrefix(scheme, "hmac-"):
		return "hmac"
	case scheme == "ed25519":
		return "ed25519"
	default:
		return ""
	}
}

// Compatible reports whether the scheme can be used with the given key type.
// Schemes that imply no family (hs2019, unknown names) are compatible with
// everything as far as this rule is concerned.
func Compatible(scheme, keyType string) bool {
	family := KeyFamily(scheme)
	return family == "" || family == keyType
}

// Evaluator classifies signing requests and outcomes against the rule set.
// It is safe for concurrent use: all state is read-only.
type Evaluator struct {
	registry *registry.Registry
	grammar  *grammar.Grammar
	clk      clock.Clock
}

// NewEvaluator builds an evaluator over the given registry, grammar, and
// clock. The clock is sampled once per evaluation so a single verdict sees a
// consistent "now".
func NewEvaluator(reg *registry.Registry, g *grammar.Grammar, clk clock.Clock) *Evaluator {
	return &Evaluator{registry: reg, grammar: g, clk: clk}
}

// Expect computes the outcome kind the rules mandate for a request from its
// static attributes, before any signer invocation. When rejection is
// mandated, the returned rule names the first mandating rule in diagnostic
// order.
func (e *Evaluator) Expect(req *domain.SigningRequest) (domain.OutcomeKind, domain.RuleID) {
	return e.mandate(req, e.clk.Now().Unix())
}

// Verdict compares a case's observed outcome against the mandated one and
// produces the terminal conformance verdict.
func (e *Evaluator) Verdict(c domain.Case, observed domain.SignatureOutcome) domain.ConformanceVerdict {
	now := e.clk.Now().Unix()
	expected, mandatingRule := e.mandate(&c.Request, now)

	v := domain.ConformanceVerdict{
		CaseID:   c.ID,
		Expected: expected,
		Observed: observed,
		Cause:    observed.CauseMessage(),
	}

	switch observed.Kind {
	case domain.OutcomeRejected:
		// Any rejection satisfies a mandated rejection; the cause is opaque.
		// A rejection where signing was mandated violates no normative rule
		// but still fails the case.
		v.Passed = expected == domain.OutcomeRejected

	case domain.OutcomeSigned:
		switch {
		case !e.grammar.Matches(observed.Artifact):
			// Format is checked first in diagnostic order, even when a
			// mandated rejection was ignored as well.
			v.Passed = false
			v.ViolatedRule = domain.RuleFormat
		case expected == domain.OutcomeRejected:
			v.Passed = false
			v.ViolatedRule = mandatingRule
		default:
			v.Passed = true
		}
	}

	return v
}

// mandate applies the pre-invocation rules in diagnostic order and returns
// the mandated outcome kind plus the first mandating rule.
func (e *Evaluator) mandate(req *domain.SigningRequest, now int64) (domain.OutcomeKind, domain.RuleID) {
	if family := KeyFamily(req.Algorithm); family != "" && family != req.KeyType {
		return domain.OutcomeRejected, domain.RuleAlgorithmKeyMismatch
	}
	if !e.registry.IsKnown(req.Algorithm) {
		return domain.OutcomeRejected, domain.RuleUnknownAlgorithm
	}
	if e.registry.IsDeprecated(req.Algorithm) {
		return domain.OutcomeRejected, domain.RuleDeprecatedAlgorithm
	}
	if req.Created != nil && *req.Created > now {
		return domain.OutcomeRejected, domain.RuleFutureCreated
	}
	if req.Expires != nil && *req.Expires < now {
		return domain.OutcomeRejected, domain.RuleExpired
	}
	return domain.OutcomeSigned, domain.RuleNone
}
