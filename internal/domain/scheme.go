// Package domain provides shared domain types for the sigconform conformance driver.
package domain

// AlgorithmScheme is a named HTTP message signature algorithm as it appears in
// the signature algorithms registry.
//
// Schemes are immutable once loaded; the registry enforces name uniqueness.
type AlgorithmScheme struct {
	// Name is the registered algorithm identifier (e.g., "rsa-sha256", "hs2019").
	Name string `json:"name" yaml:"name"`

	// Deprecated marks a scheme the registry no longer permits for new
	// signatures. A conformant signer must reject every request that names a
	// deprecated scheme, regardless of key compatibility.
	Deprecated bool `json:"deprecated" yaml:"deprecated"`
}

// SchemeHS2019 is the negotiated algorithm identifier. It abstracts the real
// signature scheme behind key metadata, so it is compatible with any key type
// the catalog holds.
const SchemeHS2019 = "hs2019"
