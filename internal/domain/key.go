package domain

// KeyMaterial describes one signing key the external signer can use.
//
// The driver never reads key bytes. Reference is an opaque locator (file path
// or identifier) that the signer adapter hands to the external signer
// unchanged; validating the key content is the signer's job.
type KeyMaterial struct {
	// KeyID identifies the key in the verifier's trust store.
	KeyID string `json:"key_id" yaml:"key_id"`

	// KeyType names the key family (e.g., "rsa", "ed25519", "ecdsa", "hmac").
	KeyType string `json:"key_type" yaml:"key_type"`

	// Reference locates the private key material for the signer.
	Reference string `json:"reference" yaml:"reference"`
}
