// Package cli provides the command-line interface for sigconform.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/config"
	"github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/grammar"
	"github.com/sigconform/sigconform/internal/keys"
	"github.com/sigconform/sigconform/internal/matrix"
	"github.com/sigconform/sigconform/internal/registry"
	"github.com/sigconform/sigconform/internal/rules"
	"github.com/sigconform/sigconform/internal/signer"
	"github.com/sigconform/sigconform/internal/vectors"
)

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command) {
	root.AddCommand(newRunCmd())
}

// runFlags holds the run command's flag values, applied as config overrides.
type runFlags struct {
	configFile     string
	signerCommand  string
	signerArgs     []string
	signerTimeout  time.Duration
	concurrency    int
	baselineScheme string
	headers        []string
	vector         string
	registryPath   string
	keysPath       string
	vectorsPath    string
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the conformance suite against an external signer",
		Long: `Build the case matrix and drive the configured signer binary through it,
one invocation per case, then report per-case verdicts and totals.

The command exits non-zero when any case fails, so it can gate CI.

Examples:
  sigconform run
  sigconform run --signer ./my-signer --timeout 10s
  sigconform run --concurrency 8 --format json
  sigconform run --registry registry.yaml --keys keys.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuite(cmd.Context(), cmd, flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "explicit config file (skips global/project lookup)")
	cmd.Flags().StringVar(&flags.signerCommand, "signer", "", "signer binary to drive")
	cmd.Flags().StringSliceVar(&flags.signerArgs, "signer-arg", nil, "fixed argument prepended to every signer invocation (repeatable)")
	cmd.Flags().DurationVar(&flags.signerTimeout, "timeout", 0, "per-invocation signer timeout")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "cases in flight at once (1-64)")
	cmd.Flags().StringVar(&flags.baselineScheme, "baseline-scheme", "", "scheme the temporal-skew cases run against")
	cmd.Flags().StringSliceVar(&flags.headers, "header", nil, "covered header (repeatable, ordered)")
	cmd.Flags().StringVar(&flags.vector, "vector", "", "target vector name")
	cmd.Flags().StringVar(&flags.registryPath, "registry", "", "YAML scheme registry (default: built-in table)")
	cmd.Flags().StringVar(&flags.keysPath, "keys", "", "YAML key catalog (default: built-in catalog)")
	cmd.Flags().StringVar(&flags.vectorsPath, "vectors", "", "YAML vector catalog (default: built-in catalog)")

	return cmd
}

// suiteComponents bundles the loaded fixtures and the rule evaluator shared
// by case construction and verdicting.
type suiteComponents struct {
	registry *registry.Registry
	catalog  *keys.Catalog
	vectors  *vectors.Catalog
	eval     *rules.Evaluator
	clk      clock.Clock
}

func runSuite(ctx context.Context, cmd *cobra.Command, flags *runFlags, w io.Writer) error {
	// Check context cancellation
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("format").Value.String()

	cfg, err := loadRunConfig(ctx, flags)
	if err != nil {
		return err
	}

	comps, err := buildComponents(cfg)
	if err != nil {
		return err
	}

	s := signer.NewCLISigner(cfg.Signer.Command, comps.catalog, comps.vectors,
		signer.WithArgs(cfg.Signer.Args),
		signer.WithTimeout(cfg.Signer.Timeout),
		signer.WithLogger(logger),
	)

	return executeSuite(ctx, s, comps, cfg, outputFormat, w)
}

// loadRunConfig resolves the run configuration: either the explicit file
// given via --config, or the layered global/project/env stack, with the
// remaining flags applied as overrides either way.
func loadRunConfig(ctx context.Context, flags *runFlags) (*config.Config, error) {
	overrides := &config.Config{
		Signer: config.SignerConfig{
			Command: flags.signerCommand,
			Args:    flags.signerArgs,
			Timeout: flags.signerTimeout,
		},
		Suite: config.SuiteConfig{
			Concurrency:    flags.concurrency,
			BaselineScheme: flags.baselineScheme,
			Headers:        flags.headers,
			Vector:         flags.vector,
		},
		Registry: config.RegistryConfig{Path: flags.registryPath},
		Keys:     config.KeysConfig{Path: flags.keysPath},
		Vectors:  config.VectorsConfig{Path: flags.vectorsPath},
	}

	if flags.configFile != "" {
		cfg, err := config.LoadFromFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		return config.ApplyOverrides(cfg, overrides)
	}

	return config.LoadWithOverrides(ctx, overrides)
}

// buildComponents loads the registry, key catalog, and vector catalog from
// their configured files, falling back to the built-in defaults, and wires
// the rule evaluator over them.
func buildComponents(cfg *config.Config) (*suiteComponents, error) {
	reg := registry.Default()
	if cfg.Registry.Path != "" {
		var err error
		reg, err = registry.LoadFile(cfg.Registry.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading scheme registry %s", cfg.Registry.Path)
		}
	}

	catalog := keys.Default()
	if cfg.Keys.Path != "" {
		var err error
		catalog, err = keys.LoadFile(cfg.Keys.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading key catalog %s", cfg.Keys.Path)
		}
	}

	vecs := vectors.Default()
	if cfg.Vectors.Path != "" {
		var err error
		vecs, err = vectors.LoadFile(cfg.Vectors.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading vector catalog %s", cfg.Vectors.Path)
		}
	}

	clk := clock.RealClock{}
	return &suiteComponents{
		registry: reg,
		catalog:  catalog,
		vectors:  vecs,
		eval:     rules.NewEvaluator(reg, grammar.New(), clk),
		clk:      clk,
	}, nil
}

// executeSuite builds the case matrix, runs it through the signer, renders
// the report, and maps a non-conformant result to an error for the exit code.
func executeSuite(ctx context.Context, s signer.Signer, comps *suiteComponents, cfg *config.Config, outputFormat string, w io.Writer) error {
	logger := GetLogger()

	builder := matrix.NewBuilder(comps.registry, comps.catalog, comps.eval, comps.clk, matrix.BuilderConfig{
		BaselineScheme: cfg.Suite.BaselineScheme,
		Headers:        cfg.Suite.Headers,
		Vector:         cfg.Suite.Vector,
	})

	cases, err := builder.Build()
	if err != nil {
		return errors.Wrap(err, "building case matrix")
	}

	logger.Info().
		Int("cases", len(cases)).
		Str("signer", cfg.Signer.Command).
		Int("concurrency", cfg.Suite.Concurrency).
		Msg("starting conformance run")

	orch := matrix.NewOrchestrator(s, comps.eval,
		matrix.WithConcurrency(cfg.Suite.Concurrency),
		matrix.WithLogger(logger),
	)

	report, err := orch.Run(ctx, cases)
	if err != nil {
		return err
	}

	if err := renderReport(w, outputFormat, report); err != nil {
		return err
	}

	if !report.Conformant() {
		return errors.Wrapf(errors.ErrConformanceFailed, "%d of %d cases failed", report.Failed, report.Total)
	}
	return nil
}
