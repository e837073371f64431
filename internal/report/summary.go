package report

import (
	"fmt"
	"strings"

	"github.com/fwextensions/pdf-formbot/internal/classify"
	"github.com/fwextensions/pdf-formbot/internal/compare"
)

// AnalysisSummary aggregates one analysis-mode run.
type AnalysisSummary struct {
	Total     int
	Forms     int
	NonForms  int
	Errors    int
	Sensitive int
}

// SummarizeRecords computes the analysis-mode summary.
func SummarizeRecords(records []classify.MachineRecord) AnalysisSummary {
	s := AnalysisSummary{Total: len(records)}
	for _, rec := range records {
		switch rec.IsForm {
		case classify.IsFormYes:
			s.Forms++
		case classify.IsFormNo:
			s.NonForms++
		case classify.IsFormError:
			s.Errors++
		}
		if rec.Sensitivity.Any() {
			s.Sensitive++
		}
	}
	return s
}

// Render formats the summary for the console and transcript. It is never
// written into the machine-readable report files.
func (s AnalysisSummary) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Processed %d document(s)\n", s.Total)
	fmt.Fprintf(&sb, "  forms:      %s\n", countPct(s.Forms, s.Total))
	fmt.Fprintf(&sb, "  non-forms:  %s\n", countPct(s.NonForms, s.Total))
	fmt.Fprintf(&sb, "  sensitive:  %s\n", countPct(s.Sensitive, s.Total))
	fmt.Fprintf(&sb, "  errors:     %s", countPct(s.Errors, s.Total))
	return sb.String()
}

// ComparisonSummary aggregates one evaluation-mode run.
type ComparisonSummary struct {
	Total            int
	IsFormMatch      int
	FormTypeMatch    int
	SensitivityMatch int
	AllMatch         int
	Errors           int
}

// SummarizeComparisons computes the evaluation-mode summary.
func SummarizeComparisons(records []compare.ComparisonRecord) ComparisonSummary {
	s := ComparisonSummary{Total: len(records)}
	for _, rec := range records {
		if rec.IsFormMatch {
			s.IsFormMatch++
		}
		if rec.FormTypeMatch {
			s.FormTypeMatch++
		}
		if rec.SensitivityMatch {
			s.SensitivityMatch++
		}
		if rec.AllMatch {
			s.AllMatch++
		}
		if rec.Machine.ErrorMessage != "" {
			s.Errors++
		}
	}
	return s
}

// Render formats the evaluation summary for the console and transcript.
func (s ComparisonSummary) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compared %d document(s) against ground truth\n", s.Total)
	fmt.Fprintf(&sb, "  isForm match:      %s\n", countPct(s.IsFormMatch, s.Total))
	fmt.Fprintf(&sb, "  formType match:    %s\n", countPct(s.FormTypeMatch, s.Total))
	fmt.Fprintf(&sb, "  sensitivity match: %s\n", countPct(s.SensitivityMatch, s.Total))
	fmt.Fprintf(&sb, "  all match:         %s\n", countPct(s.AllMatch, s.Total))
	fmt.Fprintf(&sb, "  errors:            %s", countPct(s.Errors, s.Total))
	return sb.String()
}

func countPct(n, total int) string {
	if total == 0 {
		return "0 (0.0%)"
	}
	return fmt.Sprintf("%d (%.1f%%)", n, 100*float64(n)/float64(total))
}
