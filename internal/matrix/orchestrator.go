package matrix

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/constants"
	"github.com/sigconform/sigconform/internal/ctxutil"
	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/rules"
	"github.com/sigconform/sigconform/internal/signer"
)

// Orchestrator dispatches the case matrix to the signer over a bounded
// worker pool and aggregates the verdicts into a suite report.
//
// Cases are independent units of work: each owns its request and writes its
// verdict into its own slot, so no write-write races exist. A single case's
// violation never halts the matrix; only infrastructure errors abort the run,
// and verdicts completed before the abort are retained in the report.
type Orchestrator struct {
	signer      signer.Signer
	eval        *rules.Evaluator
	clk         clock.Clock
	concurrency int
	logger      zerolog.Logger
}

// OrchestratorOption is a functional option for configuring Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithConcurrency bounds the number of cases in flight at once.
// Values below 1 fall back to the default.
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger for the orchestrator.
func WithLogger(logger zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock replaces the clock used for report timing, primarily for tests.
func WithClock(clk clock.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		o.clk = clk
	}
}

// NewOrchestrator creates an orchestrator executing cases against the given
// signer and judging outcomes with the given evaluator.
func NewOrchestrator(s signer.Signer, eval *rules.Evaluator, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		signer:      s,
		eval:        eval,
		clk:         clock.RealClock{},
		concurrency: constants.DefaultConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes every case and returns the aggregate report.
//
// The returned error is nil when the suite ran to completion, even if cases
// failed: failures are data in the report. A non-nil error means the run
// aborted on an infrastructure failure or cancellation; the report still
// carries every verdict completed before the abort.
func (o *Orchestrator) Run(ctx context.Context, cases []domain.Case) (*domain.SuiteReport, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	report := &domain.SuiteReport{
		RunID:     uuid.NewString(),
		StartedAt: o.clk.Now(),
	}

	o.logger.Info().
		Str("run_id", report.RunID).
		Int("cases", len(cases)).
		Int("concurrency", o.concurrency).
		Msg("starting conformance run")

	// Per-case verdict slots; each goroutine writes only its own index.
	slots := make([]*domain.ConformanceVerdict, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			outcome, err := o.signer.Generate(gctx, &c.Request)
			if err != nil {
				// Infrastructure failure: cancel siblings via gctx and
				// surface the cause. Completed verdicts stay in their slots.
				o.logger.Error().Err(err).Str("case_id", c.ID).Msg("case aborted")
				return sigerrors.Wrapf(err, "case %s", c.ID)
			}

			verdict := o.eval.Verdict(c, outcome)
			slots[i] = &verdict

			o.logger.Debug().
				Str("case_id", c.ID).
				Bool("passed", verdict.Passed).
				Str("violated_rule", string(verdict.ViolatedRule)).
				Msg("case verdicted")
			return nil
		})
	}

	runErr := g.Wait()
	o.finalize(report, slots)

	o.logger.Info().
		Str("run_id", report.RunID).
		Int("total", report.Total).
		Int("passed", report.Passed).
		Int("failed", report.Failed).
		Int64("duration_ms", report.DurationMs).
		Msg("conformance run finished")

	return report, runErr
}

// finalize collects completed verdicts into the report, sorted by case ID
// for deterministic presentation.
func (o *Orchestrator) finalize(report *domain.SuiteReport, slots []*domain.ConformanceVerdict) {
	report.FailuresByRule = make(map[domain.RuleID]int)

	for _, v := range slots {
		if v == nil {
			continue
		}
		report.Verdicts = append(report.Verdicts, *v)
		report.Total++
		if v.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		if v.ViolatedRule != domain.RuleNone {
			report.FailuresByRule[v.ViolatedRule]++
		}
	}

	sort.Slice(report.Verdicts, func(i, j int) bool {
		return report.Verdicts[i].CaseID < report.Verdicts[j].CaseID
	})

	if len(report.FailuresByRule) == 0 {
		report.FailuresByRule = nil
	}

	report.DurationMs = o.clk.Now().Sub(report.StartedAt).Milliseconds()
}
