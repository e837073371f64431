// Package compare reconciles machine classifications against
// human-reviewer ground truth, field by field.
package compare

import (
	"strings"

	"github.com/fwextensions/pdf-formbot/internal/classify"
)

// HumanRecord is one row of reviewer ground truth, kept in its raw textual
// form. Parsed once from the ground-truth CSV and never mutated.
type HumanRecord struct {
	URL            string `json:"url"`
	IsFormRaw      string `json:"isFormRaw"`
	FormTypeRaw    string `json:"formTypeRaw"`
	SensitivityRaw string `json:"sensitivityRaw"`
	ReviewerName   string `json:"reviewerName"`
	Notes          string `json:"notes"`
}

// ComparisonRecord pairs one machine record with the human record for the
// same URL and holds the per-field match verdicts.
type ComparisonRecord struct {
	Human   HumanRecord            `json:"human"`
	Machine classify.MachineRecord `json:"machine"`

	IsFormMatch      bool `json:"isFormMatch"`
	FormTypeMatch    bool `json:"formTypeMatch"`
	SensitivityMatch bool `json:"sensitivityMatch"`
	AllMatch         bool `json:"allMatch"`
}

// Compare produces the comparison record for one human/machine pair.
// Inputs are assumed to share a URL; the function never fails.
func Compare(human HumanRecord, machine classify.MachineRecord) ComparisonRecord {
	rec := ComparisonRecord{
		Human:   human,
		Machine: machine,
	}

	rec.IsFormMatch = isFormMatch(human.IsFormRaw, machine.IsForm)
	rec.FormTypeMatch = formTypeMatch(human, machine)
	rec.SensitivityMatch = sensitivityMatch(human.SensitivityRaw, machine.Sensitivity.Summary())
	rec.AllMatch = rec.IsFormMatch && rec.FormTypeMatch && rec.SensitivityMatch
	return rec
}

func isFormMatch(humanRaw string, machine classify.IsForm) bool {
	return strings.EqualFold(strings.TrimSpace(humanRaw), string(machine))
}

// formTypeMatch compares form types after pushing both sides through the
// same canonical vocabulary. When both sides agree the document is not a
// form at all, the type strings carry no meaningful disagreement and the
// match is automatic.
func formTypeMatch(human HumanRecord, machine classify.MachineRecord) bool {
	humanSaysNo := strings.EqualFold(strings.TrimSpace(human.IsFormRaw), "No")
	if humanSaysNo && machine.IsForm == classify.IsFormNo {
		return true
	}

	h := reduceHumanFormType(human.FormTypeRaw)
	m := string(machine.FormType)
	return strings.EqualFold(h, m)
}

// reduceHumanFormType maps reviewer free text onto the reduced canonical
// set {FillablePDF, NonFillablePDF, NotApplicable}. Text outside those
// three passes through verbatim and must match the machine value exactly.
func reduceHumanFormType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return string(classify.NotApplicable)
	}

	lowered := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lowered, "fillable") && strings.Contains(lowered, "pdf"):
		return string(classify.FillablePDF)
	case strings.Contains(lowered, "pdf"):
		return string(classify.NonFillablePDF)
	case strings.Contains(lowered, "n/a") || strings.Contains(lowered, "not applicable"):
		return string(classify.NotApplicable)
	}
	return trimmed
}

// sensitivityMatch applies the tiered rule that absorbs inconsistent human
// free-text phrasing. Reviewers answer with "Yes"/"No" or an item list;
// the machine side is a comma-joined category summary, so the first two
// tiers compare presence only and the last falls back to exact equality.
func sensitivityMatch(humanRaw, machineSummary string) bool {
	h := strings.ToLower(strings.TrimSpace(humanRaw))
	m := strings.ToLower(strings.TrimSpace(machineSummary))

	machineNone := m == "" || m == "no"

	// Tier 1: reviewer reported nothing sensitive.
	if h == "" || h == "no" {
		return machineNone
	}

	// Tier 2: reviewer confirmed presence without exact categories.
	if h == "yes" || strings.Contains(h, "ssn") || strings.Contains(h, "dl") {
		return !machineNone
	}

	// Tier 3: exact comparison of the two raw summaries.
	return h == m
}
