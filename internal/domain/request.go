package domain

// SigningRequest is the structured description of one signing attempt,
// independent of the external signer's invocation syntax.
//
// A request is built once per case by the matrix builder, consumed exactly
// once by the signer adapter, and never mutated after construction.
//
// Example JSON representation:
//
//	{
//	    "target_vector": "default-get",
//	    "headers": ["date"],
//	    "algorithm": "rsa-sha256",
//	    "key_type": "rsa",
//	    "key_id": "test-key-rsa",
//	    "created": 1700000000
//	}
type SigningRequest struct {
	// TargetVector names the fixed HTTP-message fixture the request signs
	// over. Fixture content is owned by the vector catalog and treated as
	// opaque here.
	TargetVector string `json:"target_vector"`

	// Headers is the ordered list of header names to cover. Order is
	// significant and preserved through to the signer invocation.
	Headers []string `json:"headers"`

	// Algorithm is the scheme name, or the literal "hs2019" when the scheme
	// is negotiated from key metadata.
	Algorithm string `json:"algorithm"`

	// KeyType names the key family the request asks the signer to use.
	KeyType string `json:"key_type"`

	// KeyID correlates to a key in the verifier's trust store.
	KeyID string `json:"key_id"`

	// Created is the optional signature creation timestamp (unix seconds).
	// Nil means the parameter is not under test and is omitted from the
	// signer invocation.
	Created *int64 `json:"created,omitempty"`

	// Expires is the optional signature expiry timestamp (unix seconds).
	// Nil means the parameter is omitted.
	Expires *int64 `json:"expires,omitempty"`
}

// Timestamp returns a pointer to ts, for building requests with optional
// created/expires fields set.
func Timestamp(ts int64) *int64 {
	return &ts
}
