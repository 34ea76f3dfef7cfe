package matrix

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigconform/sigconform/internal/clock"
	"github.com/sigconform/sigconform/internal/domain"
	"github.com/sigconform/sigconform/internal/grammar"
	"github.com/sigconform/sigconform/internal/registry"
	"github.com/sigconform/sigconform/internal/rules"
	"github.com/sigconform/sigconform/internal/testutil"
)

// MockSigner is a test implementation of signer.Signer.
type MockSigner struct {
	GenerateFunc func(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error)

	mu    sync.Mutex
	calls int
}

func (m *MockSigner) Generate(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return domain.Signed(`signature="dGVzdA=="`), nil
}

func (m *MockSigner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testEvaluator() *rules.Evaluator {
	return rules.NewEvaluator(registry.Default(), grammar.New(), clock.Fixed{Time: buildNow})
}

// conformantSigner behaves exactly as the rules mandate: it signs what should
// be signed and rejects what should be rejected.
func conformantSigner(eval *rules.Evaluator) *MockSigner {
	return &MockSigner{
		GenerateFunc: func(_ context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
			if kind, _ := eval.Expect(req); kind == domain.OutcomeRejected {
				return domain.Rejected(testutil.ErrMockSignerRejected), nil
			}
			return domain.Signed(`signature="dGVzdA=="`), nil
		},
	}
}

func buildTestCases(t *testing.T) []domain.Case {
	t.Helper()
	cases, err := newTestBuilder(t).Build()
	require.NoError(t, err)
	return cases
}

func TestOrchestrator_Run(t *testing.T) {
	t.Run("conformant signer passes every case", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)

		o := NewOrchestrator(conformantSigner(eval), eval, WithClock(clock.Fixed{Time: buildNow}))
		report, err := o.Run(context.Background(), cases)
		require.NoError(t, err)

		assert.Equal(t, len(cases), report.Total)
		assert.Equal(t, len(cases), report.Passed)
		assert.Zero(t, report.Failed)
		assert.True(t, report.Conformant())
		assert.Nil(t, report.FailuresByRule)
		assert.NotEmpty(t, report.RunID)
	})

	t.Run("verdicts are sorted by case ID", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)

		o := NewOrchestrator(conformantSigner(eval), eval)
		report, err := o.Run(context.Background(), cases)
		require.NoError(t, err)

		for i := 1; i < len(report.Verdicts); i++ {
			assert.Less(t, report.Verdicts[i-1].CaseID, report.Verdicts[i].CaseID)
		}
	})

	t.Run("signer that signs everything fails the negative cases", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)

		// Signs every request, including ones the rules mandate rejecting.
		o := NewOrchestrator(&MockSigner{}, eval)
		report, err := o.Run(context.Background(), cases)
		require.NoError(t, err)

		assert.Equal(t, len(cases), report.Total)
		assert.Positive(t, report.Failed)
		assert.False(t, report.Conformant())
		assert.Positive(t, report.FailuresByRule[domain.RuleDeprecatedAlgorithm])
		assert.Positive(t, report.FailuresByRule[domain.RuleUnknownAlgorithm])
		assert.Positive(t, report.FailuresByRule[domain.RuleAlgorithmKeyMismatch])
		assert.Positive(t, report.FailuresByRule[domain.RuleFutureCreated])
		assert.Positive(t, report.FailuresByRule[domain.RuleExpired])
	})

	t.Run("a case violation does not halt the matrix", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)

		mock := &MockSigner{}
		o := NewOrchestrator(mock, eval)
		_, err := o.Run(context.Background(), cases)
		require.NoError(t, err)
		assert.Equal(t, len(cases), mock.Calls())
	})

	t.Run("infrastructure failure aborts but keeps completed verdicts", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)[:3]

		mock := &MockSigner{
			GenerateFunc: func(_ context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
				if req.Algorithm == cases[1].Request.Algorithm && req.KeyType == cases[1].Request.KeyType {
					return domain.SignatureOutcome{}, testutil.ErrMockExecFailed
				}
				return domain.Signed(`signature="dGVzdA=="`), nil
			},
		}

		o := NewOrchestrator(mock, eval, WithConcurrency(1))
		report, err := o.Run(context.Background(), cases)
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrMockExecFailed)
		require.NotNil(t, report)
		assert.Positive(t, report.Total)
		assert.Less(t, report.Total, len(cases))
	})

	t.Run("pre-canceled context returns immediately", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		eval := testEvaluator()
		o := NewOrchestrator(&MockSigner{}, eval)
		_, err := o.Run(ctx, buildTestCases(t))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bounded concurrency is respected", func(t *testing.T) {
		eval := testEvaluator()
		cases := buildTestCases(t)

		var mu sync.Mutex
		inFlight, peak := 0, 0

		mock := &MockSigner{
			GenerateFunc: func(_ context.Context, _ *domain.SigningRequest) (domain.SignatureOutcome, error) {
				mu.Lock()
				inFlight++
				if inFlight > peak {
					peak = inFlight
				}
				mu.Unlock()

				defer func() {
					mu.Lock()
					inFlight--
					mu.Unlock()
				}()
				return domain.Signed(`signature="dGVzdA=="`), nil
			},
		}

		o := NewOrchestrator(mock, eval, WithConcurrency(2))
		_, err := o.Run(context.Background(), cases)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.LessOrEqual(t, peak, 2)
	})
}
