package domain

// OutcomeKind tags a SignatureOutcome as signed or rejected.
type OutcomeKind string

const (
	// OutcomeSigned means the signer produced a signature artifact.
	OutcomeSigned OutcomeKind = "signed"

	// OutcomeRejected means the signer refused the request or the adapter
	// timed out waiting for it.
	OutcomeRejected OutcomeKind = "rejected"
)

// SignatureOutcome is the normalized result of one signer invocation.
// It is a tagged union: Signed outcomes carry an artifact, Rejected outcomes
// carry an opaque cause. Immutable once produced by the adapter.
type SignatureOutcome struct {
	// Kind tags the outcome variant.
	Kind OutcomeKind `json:"kind"`

	// Artifact is the raw signer output for Signed outcomes.
	Artifact string `json:"artifact,omitempty"`

	// Cause records why the signer rejected the request. Opaque to rule
	// evaluation: an expected rejection passes regardless of cause.
	Cause error `json:"-"`
}

// Signed builds a Signed outcome carrying the artifact.
func Signed(artifact string) SignatureOutcome {
	return SignatureOutcome{Kind: OutcomeSigned, Artifact: artifact}
}

// Rejected builds a Rejected outcome carrying the cause.
func Rejected(cause error) SignatureOutcome {
	return SignatureOutcome{Kind: OutcomeRejected, Cause: cause}
}

// CauseMessage returns the rejection cause as text, or "" for Signed outcomes.
func (o SignatureOutcome) CauseMessage() string {
	if o.Cause == nil {
		return ""
	}
	return o.Cause.Error()
}
