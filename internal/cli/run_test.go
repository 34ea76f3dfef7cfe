package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/config"
	"github.com/sigconform/sigconform/internal/domain"
	"github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/grammar"
	"github.com/sigconform/sigconform/internal/keys"
	"github.com/sigconform/sigconform/internal/registry"
	"github.com/sigconform/sigconform/internal/rules"
	"github.com/sigconform/sigconform/internal/testutil"
	"github.com/sigconform/sigconform/internal/vectors"
)

// stubSigner is a test implementation of signer.Signer driven by a fixed
// outcome function.
type stubSigner struct {
	generate func(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error)
}

func (s *stubSigner) Generate(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
	return s.generate(ctx, req)
}

func testComponents() *suiteComponents {
	clk := clock.Fixed{Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	reg := registry.Default()
	return &suiteComponents{
		registry: reg,
		catalog:  keys.Default(),
		vectors:  vectors.Default(),
		eval:     rules.NewEvaluator(reg, grammar.New(), clk),
		clk:      clk,
	}
}

func TestExecuteSuite(t *testing.T) {
	t.Run("conformant signer exits clean", func(t *testing.T) {
		comps := testComponents()
		s := &stubSigner{
			generate: func(_ context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
				if kind, _ := comps.eval.Expect(req); kind == domain.OutcomeRejected {
					return domain.Rejected(testutil.ErrMockSignerRejected), nil
				}
				return domain.Signed(`signature="dGVzdA=="`), nil
			},
		}

		buf := new(bytes.Buffer)
		err := executeSuite(context.Background(), s, comps, config.DefaultConfig(), OutputText, buf)
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "0 failed")
		assert.NotContains(t, buf.String(), "FAIL")
	})

	t.Run("sign-everything signer fails negatives", func(t *testing.T) {
		comps := testComponents()
		s := &stubSigner{
			generate: func(_ context.Context, _ *domain.SigningRequest) (domain.SignatureOutcome, error) {
				return domain.Signed(`signature="dGVzdA=="`), nil
			},
		}

		buf := new(bytes.Buffer)
		err := executeSuite(context.Background(), s, comps, config.DefaultConfig(), OutputJSON, buf)
		require.ErrorIs(t, err, errors.ErrConformanceFailed)

		// The report renders even when the run is non-conformant.
		var report domain.SuiteReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
		assert.Positive(t, report.Failed)
		assert.Equal(t, report.Total, report.Passed+report.Failed)
	})

	t.Run("infrastructure error aborts without report", func(t *testing.T) {
		comps := testComponents()
		s := &stubSigner{
			generate: func(_ context.Context, _ *domain.SigningRequest) (domain.SignatureOutcome, error) {
				return domain.SignatureOutcome{}, errors.ErrSignerUnavailable
			},
		}

		cfg := config.DefaultConfig()
		cfg.Suite.Concurrency = 1

		buf := new(bytes.Buffer)
		err := executeSuite(context.Background(), s, comps, cfg, OutputText, buf)
		require.ErrorIs(t, err, errors.ErrSignerUnavailable)
		assert.Empty(t, buf.String())
	})
}

func TestLoadRunConfig(t *testing.T) {
	t.Setenv("SIGCONFORM_HOME", t.TempDir())

	t.Run("flags override layered config", func(t *testing.T) {
		flags := &runFlags{
			signerCommand: "custom-signer",
			concurrency:   2,
			headers:       []string{"date", "host"},
		}

		cfg, err := loadRunConfig(context.Background(), flags)
		require.NoError(t, err)

		assert.Equal(t, "custom-signer", cfg.Signer.Command)
		assert.Equal(t, 2, cfg.Suite.Concurrency)
		assert.Equal(t, []string{"date", "host"}, cfg.Suite.Headers)
	})

	t.Run("invalid flag values rejected", func(t *testing.T) {
		_, err := loadRunConfig(context.Background(), &runFlags{concurrency: 1000})
		assert.ErrorIs(t, err, errors.ErrConfigInvalidSuite)
	})
}

func TestBuildComponents(t *testing.T) {
	t.Run("built-in defaults", func(t *testing.T) {
		comps, err := buildComponents(config.DefaultConfig())
		require.NoError(t, err)

		assert.True(t, comps.registry.IsKnown("rsa-sha256"))
		assert.NotEmpty(t, comps.catalog.AllPrivateKeyTypes())
		assert.Contains(t, comps.vectors.Names(), vectors.DefaultVector)
	})

	t.Run("missing registry file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Registry.Path = "does/not/exist.yaml"

		_, err := buildComponents(cfg)
		require.Error(t, err)
	})
}
