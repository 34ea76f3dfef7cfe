// Package matrix builds and executes the conformance case matrix: the cross
// product of registry schemes and catalog key types, plus temporal-skew
// scenarios against a baseline scheme, dispatched to the external signer over
// a bounded worker pool.
package matrix

import (
	"fmt"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/constants"
	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/keys"
	"github.com/sigconform/sigconform/internal/registry"
	"github.com/sigconform/sigconform/internal/rules"
	"github.com/sigconform/sigconform/internal/vectors"
)

// unknownScheme is the deliberately unregistered algorithm name used to probe
// the registry rule's negative branch.
const unknownScheme = "unknown"

// BuilderConfig parameterizes case construction.
type BuilderConfig struct {
	// BaselineScheme is the known, non-deprecated scheme temporal-skew
	// scenarios run against. Defaults to the configured baseline.
	BaselineScheme string

	// Headers is the ordered header list every request covers.
	Headers []string

	// Vector names the HTTP-message fixture every request signs over.
	Vector string
}

// applyDefaults fills zero-valued config fields.
func (c BuilderConfig) applyDefaults() BuilderConfig {
	if c.BaselineScheme == "" {
		c.BaselineScheme = constants.DefaultBaselineScheme
	}
	if len(c.Headers) == 0 {
		c.Headers = []string{"date"}
	}
	if c.Vector == "" {
		c.Vector = vectors.DefaultVector
	}
	return c
}

// Builder constructs the case matrix. Construction is a pure function over
// the registry table, the key catalog, and the build-time clock reading.
type Builder struct {
	registry *registry.Registry
	catalog  *keys.Catalog
	eval     *rules.Evaluator
	clk      clock.Clock
	cfg      BuilderConfig
}

// NewBuilder creates a case matrix builder.
func NewBuilder(reg *registry.Registry, cat *keys.Catalog, eval *rules.Evaluator, clk clock.Clock, cfg BuilderConfig) *Builder {
	return &Builder{
		registry: reg,
		catalog:  cat,
		eval:     eval,
		clk:      clk,
		cfg:      cfg.applyDefaults(),
	}
}

// Build enumerates the full case matrix:
//
//   - every registry scheme paired with its compatible key type (positive
//     branch for active schemes, deprecation probe for deprecated ones);
//   - every scheme paired with one structurally incompatible key type;
//   - the negotiated hs2019 identifier paired with every catalog key type;
//   - an unregistered scheme probe;
//   - temporal-skew scenarios (none, future created, past expires) against
//     the baseline scheme.
//
// The expected outcome of each case is computed from the rules before any
// signer invocation. Returns ErrIllFormedCase when a required compatible key
// type has no catalog entry.
func (b *Builder) Build() ([]domain.Case, error) {
	var cases []domain.Case

	for _, scheme := range b.registry.ListSchemes() {
		if scheme.Name == domain.SchemeHS2019 {
			cases = append(cases, b.negotiatedCases()...)
			continue
		}

		schemeCases, err := b.schemeCases(scheme)
		if err != nil {
			return nil, err
		}
		cases = append(cases, schemeCases...)
	}

	unknownCase, err := b.unknownSchemeCase()
	if err != nil {
		return nil, err
	}
	cases = append(cases, unknownCase)

	temporal, err := b.temporalCases()
	if err != nil {
		return nil, err
	}
	cases = append(cases, temporal...)

	return cases, nil
}

// schemeCases builds the compatible and incompatible pairings for one
// concrete scheme.
func (b *Builder) schemeCases(scheme domain.AlgorithmScheme) ([]domain.Case, error) {
	family := rules.KeyFamily(scheme.Name)

	// Schemes that imply no key family accept any catalog key, like the
	// negotiated identifier. They get no mismatch pairing.
	compatibleType := family
	if compatibleType == "" {
		types := b.catalog.AllPrivateKeyTypes()
		if len(types) == 0 {
			return nil, sigerrors.Wrap(sigerrors.ErrIllFormedCase, "key catalog is empty")
		}
		compatibleType = types[0]
	}

	materials := b.catalog.KeysOfType(compatibleType)
	if len(materials) == 0 {
		return nil, sigerrors.Wrapf(sigerrors.ErrIllFormedCase,
			"scheme %s requires a %s key but the catalog has none", scheme.Name, compatibleType)
	}

	cases := []domain.Case{b.newCase(
		fmt.Sprintf("scheme/%s/key/%s", scheme.Name, compatibleType),
		fmt.Sprintf("scheme %s with compatible %s key", scheme.Name, compatibleType),
		scheme.Name, compatibleType, materials[0].KeyID, nil, nil,
	)}

	if family == "" {
		return cases, nil
	}

	// One structurally incompatible pairing per scheme exercises the
	// mismatch rule's negative branch.
	for _, keyType := range b.catalog.AllPrivateKeyTypes() {
		if keyType == family {
			continue
		}
		mismatch := b.catalog.KeysOfType(keyType)[0]
		cases = append(cases, b.newCase(
			fmt.Sprintf("scheme/%s/key/%s/mismatch", scheme.Name, keyType),
			fmt.Sprintf("scheme %s with incompatible %s key", scheme.Name, keyType),
			scheme.Name, keyType, mismatch.KeyID, nil, nil,
		))
		break
	}

	return cases, nil
}

// negotiatedCases pairs hs2019 with every key type the catalog holds.
func (b *Builder) negotiatedCases() []domain.Case {
	var cases []domain.Case
	for _, keyType := range b.catalog.AllPrivateKeyTypes() {
		material := b.catalog.KeysOfType(keyType)[0]
		cases = append(cases, b.newCase(
			fmt.Sprintf("scheme/hs2019/key/%s", keyType),
			fmt.Sprintf("negotiated hs2019 with %s key", keyType),
			domain.SchemeHS2019, keyType, material.KeyID, nil, nil,
		))
	}
	return cases
}

// unknownSchemeCase probes the registry rule with an unregistered name.
func (b *Builder) unknownSchemeCase() (domain.Case, error) {
	keyType, keyID, err := b.baselineKey()
	if err != nil {
		return domain.Case{}, err
	}
	return b.newCase(
		"scheme/unknown",
		"unregistered scheme name",
		unknownScheme, keyType, keyID, nil, nil,
	), nil
}

// temporalCases applies the fixed skew set against the baseline scheme:
// no skew, created in the future, expires in the past.
func (b *Builder) temporalCases() ([]domain.Case, error) {
	keyType, keyID, err := b.baselineKey()
	if err != nil {
		return nil, err
	}

	now := b.clk.Now().Unix()
	future := domain.Timestamp(now + constants.TemporalSkewSeconds)
	past := domain.Timestamp(now - constants.TemporalSkewSeconds)
	baseline := b.cfg.BaselineScheme

	return []domain.Case{
		b.newCase("temporal/no-skew", "baseline scheme without temporal parameters",
			baseline, keyType, keyID, nil, nil),
		b.newCase("temporal/future-created", "created timestamp in the future",
			baseline, keyType, keyID, future, nil),
		b.newCase("temporal/past-expires", "expires timestamp in the past",
			baseline, keyType, keyID, nil, past),
	}, nil
}

// baselineKey resolves the key material compatible with the baseline scheme.
func (b *Builder) baselineKey() (keyType, keyID string, err error) {
	family := rules.KeyFamily(b.cfg.BaselineScheme)
	if family == "" {
		types := b.catalog.AllPrivateKeyTypes()
		if len(types) == 0 {
			return "", "", sigerrors.Wrap(sigerrors.ErrIllFormedCase, "key catalog is empty")
		}
		family = types[0]
	}

	materials := b.catalog.KeysOfType(family)
	if len(materials) == 0 {
		return "", "", sigerrors.Wrapf(sigerrors.ErrIllFormedCase,
			"baseline scheme %s requires a %s key but the catalog has none", b.cfg.BaselineScheme, family)
	}
	return family, materials[0].KeyID, nil
}

// newCase assembles one case and computes its expected outcome from the
// request's static attributes.
func (b *Builder) newCase(id, description, algorithm, keyType, keyID string, created, expires *int64) domain.Case {
	req := domain.SigningRequest{
		TargetVector: b.cfg.Vector,
		Headers:      append([]string{}, b.cfg.Headers...),
		Algorithm:    algorithm,
		KeyType:      keyType,
		KeyID:        keyID,
		Created:      created,
		Expires:      expires,
	}
	expected, rule := b.eval.Expect(&req)
	return domain.Case{
		ID:           id,
		Description:  description,
		Request:      req,
		Expected:     expected,
		ExpectedRule: rule,
	}
}
