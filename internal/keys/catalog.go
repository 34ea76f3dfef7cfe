// Package keys provides the key material catalog: a read-only index of the
// signing keys available to the external signer, keyed by key type.
//
// The catalog never inspects key bytes. Each entry carries an opaque
// Reference the signer adapter passes through to the external signer; key
// content validation is the signer's responsibility.
package keys

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
)

// Catalog indexes key material by key type. Read-only after construction.
type Catalog struct {
	byType map[string][]domain.KeyMaterial
	byID   map[string]domain.KeyMaterial
}

// New builds a catalog from the given key materials.
func New(materials []domain.KeyMaterial) *Catalog {
	c := &Catalog{
		byType: make(map[string][]domain.KeyMaterial),
		byID:   make(map[string]domain.KeyMaterial, len(materials)),
	}
	for _, m := range materials {
		c.byType[m.KeyType] = append(c.byType[m.KeyType], m)
		c.byID[m.KeyID] = m
	}
	return c
}

// Default returns the built-in catalog: one private key per supported key
// family, with references the bundled test signer understands.
func Default() *Catalog {
	return New([]domain.KeyMaterial{
		{KeyID: "test-key-rsa", KeyType: "rsa", Reference: "keys/rsa.pem"},
		{KeyID: "test-key-ed25519", KeyType: "ed25519", Reference: "keys/ed25519.pem"},
		{KeyID: "test-key-ecdsa", KeyType: "ecdsa", Reference: "keys/ecdsa.pem"},
		{KeyID: "test-key-hmac", KeyType: "hmac", Reference: "keys/hmac.key"},
	})
}

// catalogFile is the YAML document shape for file-loaded catalogs.
type catalogFile struct {
	Keys []domain.KeyMaterial `yaml:"keys"`
}

// LoadFile builds a catalog from a YAML document of the form:
//
//	keys:
//	  - key_id: test-key-rsa
//	    key_type: rsa
//	    reference: /path/to/rsa.pem
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Operator-supplied catalog path
	if err != nil {
		return nil, sigerrors.Wrapf(err, "failed to read key catalog %s", path)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sigerrors.Wrapf(err, "failed to parse key catalog %s", path)
	}
	if len(doc.Keys) == 0 {
		return nil, sigerrors.Wrapf(sigerrors.ErrEmptyValue, "key catalog %s has no keys", path)
	}

	return New(doc.Keys), nil
}

// KeysOfType returns every key material of the given type. The result may be
// empty; callers decide whether that makes a case ill-formed.
func (c *Catalog) KeysOfType(keyType string) []domain.KeyMaterial {
	entries := c.byType[keyType]
	out := make([]domain.KeyMaterial, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the key material with the given key ID.
func (c *Catalog) Lookup(keyID string) (domain.KeyMaterial, bool) {
	m, ok := c.byID[keyID]
	return m, ok
}

// AllPrivateKeyTypes returns the sorted set of key types present in the
// catalog.
func (c *Catalog) AllPrivateKeyTypes() []string {
	types := make([]string, 0, len(c.byType))
	for kt := range c.byType {
		types = append(types, kt)
	}
	sort.Strings(types)
	return types
}
