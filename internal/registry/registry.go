// Package registry provides the algorithm scheme registry: a static catalog
// of known HTTP message signature schemes, each tagged active or deprecated.
//
// The registry is populated once at construction and read-only afterwards.
// Lookups never fail with an error; callers distinguish "unknown scheme"
// from "known but deprecated" via Lookup's second return value.
package registry

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
)

// Registry is a read-only catalog of algorithm schemes.
type Registry struct {
	schemes []domain.AlgorithmScheme
	byName  map[string]domain.AlgorithmScheme
}

// New builds a registry from the given scheme table.
// Returns ErrDuplicateScheme if two entries share a name.
func New(schemes []domain.AlgorithmScheme) (*Registry, error) {
	byName := make(map[string]domain.AlgorithmScheme, len(schemes))
	for _, s := range schemes {
		if _, exists := byName[s.Name]; exists {
			return nil, sigerrors.Wrapf(sigerrors.ErrDuplicateScheme, "scheme %q", s.Name)
		}
		byName[s.Name] = s
	}

	// Copy to keep the registry immutable even if the caller mutates its slice.
	table := make([]domain.AlgorithmScheme, len(schemes))
	copy(table, schemes)

	return &Registry{schemes: table, byName: byName}, nil
}

// Default returns the built-in scheme table: the negotiated hs2019 identifier,
// the concrete active schemes, and the deprecated legacy entries that a
// conformant signer must refuse.
func Default() *Registry {
	reg, err := New([]domain.AlgorithmScheme{
		{Name: domain.SchemeHS2019},
		{Name: "rsa-sha256"},
		{Name: "ecdsa-sha256"},
		{Name: "hmac-sha256"},
		{Name: "ed25519"},
		{Name: "rsa-sha1", Deprecated: true},
	})
	if err != nil {
		// The built-in table has unique names; a failure here is a
		// programming error.
		panic(err)
	}
	return reg
}

// registryFile is the YAML document shape for file-loaded registries.
type registryFile struct {
	Schemes []domain.AlgorithmScheme `yaml:"schemes"`
}

// LoadFile builds a registry from a YAML document of the form:
//
//	schemes:
//	  - name: rsa-sha256
//	  - name: rsa-sha1
//	    deprecated: true
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Operator-supplied registry path
	if err != nil {
		return nil, sigerrors.Wrapf(err, "failed to read registry file %s", path)
	}

	var doc registryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sigerrors.Wrapf(err, "failed to parse registry file %s", path)
	}
	if len(doc.Schemes) == 0 {
		return nil, sigerrors.Wrapf(sigerrors.ErrEmptyValue, "registry file %s has no schemes", path)
	}

	return New(doc.Schemes)
}

// ListSchemes returns every scheme in the registry, in table order.
// The returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) ListSchemes() []domain.AlgorithmScheme {
	out := make([]domain.AlgorithmScheme, len(r.schemes))
	copy(out, r.schemes)
	return out
}

// Lookup returns the scheme for name and whether it is known.
func (r *Registry) Lookup(name string) (domain.AlgorithmScheme, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// IsKnown reports whether name is in the registry.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// IsDeprecated reports whether name is known and flagged deprecated.
// Unknown schemes return false; use IsKnown to tell the cases apart.
func (r *Registry) IsDeprecated(name string) bool {
	s, ok := r.byName[name]
	return ok && s.Deprecated
}
