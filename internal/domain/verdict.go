package domain

// RuleID identifies one normative conformance rule. A failed verdict names the
// first violated rule in diagnostic priority order.
type RuleID string

const (
	// RuleFormat: a Signed artifact must match the signature grammar.
	RuleFormat RuleID = "format-violation"

	// RuleAlgorithmKeyMismatch: a scheme whose implied key family differs
	// from the requested key type must be rejected.
	RuleAlgorithmKeyMismatch RuleID = "algorithm-key-mismatch"

	// RuleUnknownAlgorithm: a scheme absent from the registry must be
	// rejected.
	RuleUnknownAlgorithm RuleID = "unknown-algorithm-accepted"

	// RuleDeprecatedAlgorithm: a deprecated scheme must be rejected
	// regardless of key compatibility.
	RuleDeprecatedAlgorithm RuleID = "deprecated-algorithm-accepted"

	// RuleFutureCreated: a created timestamp in the future must be rejected.
	RuleFutureCreated RuleID = "future-created-accepted"

	// RuleExpired: an expires timestamp in the past must be rejected.
	RuleExpired RuleID = "expired-accepted"

	// RuleNone marks a verdict with no rule violation (used for passes and
	// for unexpected rejections, which violate no normative rule).
	RuleNone RuleID = ""
)

// ConformanceVerdict is the terminal record for one case: the pass/fail
// judgment with the specific violated rule when failing.
//
// Example JSON representation:
//
//	{
//	    "case_id": "scheme/rsa-sha256/key/rsa",
//	    "expected": "signed",
//	    "observed": {"kind": "signed", "artifact": "signature=\"Zm9v\""},
//	    "passed": true
//	}
type ConformanceVerdict struct {
	// CaseID identifies the case that produced this verdict.
	CaseID string `json:"case_id"`

	// Expected is the outcome kind the rules mandate for the request.
	Expected OutcomeKind `json:"expected"`

	// Observed is the outcome the signer actually produced.
	Observed SignatureOutcome `json:"observed"`

	// Passed reports whether observed conformed to expected.
	Passed bool `json:"passed"`

	// ViolatedRule names the first violated rule when Passed is false and a
	// normative rule was broken. Empty for passes and for unexpected
	// rejections.
	ViolatedRule RuleID `json:"violated_rule,omitempty"`

	// Cause carries the rejection cause text for reporting, since the
	// underlying error does not serialize.
	Cause string `json:"cause,omitempty"`
}
