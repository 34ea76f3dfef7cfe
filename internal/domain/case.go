package domain

// Case is one unit of work in the conformance matrix. Each case owns its
// request and, after execution, its verdict slot; nothing is shared across
// concurrent cases beyond the read-only registry and catalog.
//
// Lifecycle per case: Built -> Dispatched -> {Signed, Rejected} -> Verdicted.
// Terminal; no case transitions back.
type Case struct {
	// ID is a deterministic, unique identifier for the case within a run.
	ID string `json:"id"`

	// Description is a short human-readable summary of what the case probes.
	Description string `json:"description"`

	// Request is the signing request the case dispatches.
	Request SigningRequest `json:"request"`

	// Expected is the outcome kind the rules mandate, computed from the
	// request's static attributes before dispatch.
	Expected OutcomeKind `json:"expected"`

	// ExpectedRule names the rule that mandates rejection when Expected is
	// OutcomeRejected. Empty when Expected is OutcomeSigned.
	ExpectedRule RuleID `json:"expected_rule,omitempty"`
}
