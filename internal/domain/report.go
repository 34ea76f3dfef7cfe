package domain

import "time"

// SuiteReport aggregates the verdicts of one conformance run.
//
// Verdicts are sorted by case ID for deterministic presentation; execution
// order is unconstrained.
type SuiteReport struct {
	// RunID uniquely identifies this suite execution.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// DurationMs is the wall-clock duration of the run in milliseconds.
	DurationMs int64 `json:"duration_ms"`

	// Total is the number of cases that produced a verdict.
	Total int `json:"total"`

	// Passed counts conformant verdicts.
	Passed int `json:"passed"`

	// Failed counts violating verdicts.
	Failed int `json:"failed"`

	// FailuresByRule counts failed verdicts per violated rule. Unexpected
	// rejections (no rule violated) are not included here.
	FailuresByRule map[RuleID]int `json:"failures_by_rule,omitempty"`

	// Verdicts holds every per-case verdict, sorted by case ID.
	Verdicts []ConformanceVerdict `json:"verdicts"`
}

// Conformant reports whether every case passed.
func (r *SuiteReport) Conformant() bool {
	return r.Failed == 0
}
