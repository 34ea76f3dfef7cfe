// Package vectors provides the catalog of named HTTP-message fixtures that
// signing requests target. Fixture content is owned by the external
// test-vector collaborator; this catalog only maps names to opaque locators
// the signer adapter passes through.
package vectors

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	sigerrors "github.com/sigconform/sigconform/internal/errors"
)

// DefaultVector is the fixture name the matrix uses when a case does not
// probe vector selection.
const DefaultVector = "default-get"

// Vector names one HTTP-message fixture and locates its content.
type Vector struct {
	// Name identifies the fixture in signing requests.
	Name string `yaml:"name"`

	// Locator is an opaque reference (path or identifier) the external
	// signer resolves to the fixture content.
	Locator string `yaml:"locator"`
}

// Catalog maps vector names to fixtures. Read-only after construction.
type Catalog struct {
	byName map[string]Vector
}

// New builds a catalog from the given vectors.
func New(list []Vector) *Catalog {
	byName := make(map[string]Vector, len(list))
	for _, v := range list {
		byName[v.Name] = v
	}
	return &Catalog{byName: byName}
}

// Default returns the built-in fixture catalog.
func Default() *Catalog {
	return New([]Vector{
		{Name: DefaultVector, Locator: "vectors/default-get.txt"},
		{Name: "post-with-body", Locator: "vectors/post-with-body.txt"},
	})
}

// catalogFile is the YAML document shape for file-loaded vector catalogs.
type catalogFile struct {
	Vectors []Vector `yaml:"vectors"`
}

// LoadFile builds a catalog from a YAML document listing vectors.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Operator-supplied vector path
	if err != nil {
		return nil, sigerrors.Wrapf(err, "failed to read vector catalog %s", path)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sigerrors.Wrapf(err, "failed to parse vector catalog %s", path)
	}
	if len(doc.Vectors) == 0 {
		return nil, sigerrors.Wrapf(sigerrors.ErrEmptyValue, "vector catalog %s has no vectors", path)
	}

	return New(doc.Vectors), nil
}

// Lookup returns the vector with the given name.
// Returns ErrVectorNotFound when the name is absent.
func (c *Catalog) Lookup(name string) (Vector, error) {
	v, ok := c.byName[name]
	if !ok {
		return Vector{}, sigerrors.Wrapf(sigerrors.ErrVectorNotFound, "vector %q", name)
	}
	return v, nil
}

// Names returns the sorted vector names in the catalog.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
