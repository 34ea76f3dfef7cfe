// Package cli provides the command-line interface for sigconform.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sigconform/sigconform/internal/domain"
	"github.com/sigconform/sigconform/internal/errors"
)

// renderReport writes the suite report to w in the requested format.
func renderReport(w io.Writer, format string, report *domain.SuiteReport) error {
	switch format {
	case OutputJSON:
		return renderReportJSON(w, report)
	case OutputText:
		return renderReportText(w, report)
	default:
		return errors.Wrapf(errors.ErrInvalidOutputFormat, "%q", format)
	}
}

func renderReportJSON(w io.Writer, report *domain.SuiteReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderReportText(w io.Writer, report *domain.SuiteReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tEXPECTED\tOBSERVED\tRESULT")

	for _, v := range report.Verdicts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.CaseID, v.Expected, v.Observed.Kind, verdictLabel(v))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRun %s: %d cases, %d passed, %d failed (%dms)\n",
		report.RunID, report.Total, report.Passed, report.Failed, report.DurationMs)

	if len(report.FailuresByRule) > 0 {
		fmt.Fprintln(w, "Failures by rule:")
		for _, rule := range ruleOrder {
			if n, ok := report.FailuresByRule[rule]; ok {
				fmt.Fprintf(w, "  %s: %d\n", rule, n)
			}
		}
	}
	return nil
}

// ruleOrder fixes the text rendering order of rule failure counts to the
// rules' diagnostic priority.
var ruleOrder = []domain.RuleID{
	domain.RuleFormat,
	domain.RuleAlgorithmKeyMismatch,
	domain.RuleUnknownAlgorithm,
	domain.RuleDeprecatedAlgorithm,
	domain.RuleFutureCreated,
	domain.RuleExpired,
}

// verdictLabel produces the RESULT column for one verdict: PASS, or FAIL
// with the violated rule when one was broken.
func verdictLabel(v domain.ConformanceVerdict) string {
	if v.Passed {
		return "PASS"
	}
	if v.ViolatedRule != domain.RuleNone {
		return fmt.Sprintf("FAIL (%s)", v.ViolatedRule)
	}
	return "FAIL"
}
