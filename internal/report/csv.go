// Package report serializes machine and comparison records to the
// spreadsheet-compatible CSV and structured JSON output formats and
// computes the end-of-run summary statistics.
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fwextensions/pdf-formbot/internal/classify"
	"github.com/fwextensions/pdf-formbot/internal/compare"
)

// bom is the UTF-8 byte-order marker prefixed to CSV output so
// spreadsheet applications detect the encoding.
const bom = "\ufeff"

// Match indicator glyphs used in evaluation-mode CSV rows.
const (
	GlyphMatch    = "✓"
	GlyphMismatch = "✗"
)

// Column order is fixed; consumers rely on it.
var (
	analysisHeader = []string{
		"url", "isForm", "formType", "ssn", "driversLicense", "financial",
		"health", "criminalHistory", "confidence", "pageCount", "notes", "error",
	}
	comparisonHeader = []string{
		"url", "humanIsForm", "machineIsForm", "isFormMatch",
		"humanFormType", "machineFormType", "formTypeMatch",
		"humanSensitivity", "machineSensitivity", "sensitivityMatch",
		"allMatch", "reviewer", "notes",
	}
)

// Timestamp renders t in the filename-safe form used by every output file.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15-04-05")
}

// EscapeField applies the CSV quoting rule: any field containing the
// delimiter, a quote, or a line break is wrapped in quotes with internal
// quotes doubled. The rule is total and reversible under standard CSV
// unescaping.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteAnalysisCSV writes one row per machine record.
func WriteAnalysisCSV(path string, records []classify.MachineRecord) error {
	var sb strings.Builder
	sb.WriteString(bom)
	writeRow(&sb, analysisHeader)
	for _, rec := range records {
		writeRow(&sb, analysisRow(rec))
	}
	return writeFile(path, sb.String())
}

// WriteComparisonCSV writes one row per matched human/machine pair.
func WriteComparisonCSV(path string, records []compare.ComparisonRecord) error {
	var sb strings.Builder
	sb.WriteString(bom)
	writeRow(&sb, comparisonHeader)
	for _, rec := range records {
		writeRow(&sb, comparisonRow(rec))
	}
	return writeFile(path, sb.String())
}

func analysisRow(rec classify.MachineRecord) []string {
	return []string{
		rec.URL,
		string(rec.IsForm),
		string(rec.FormType),
		yesNo(rec.Sensitivity.SSN),
		yesNo(rec.Sensitivity.DriversLicense),
		yesNo(rec.Sensitivity.Financial),
		yesNo(rec.Sensitivity.Health),
		yesNo(rec.Sensitivity.CriminalHistory),
		formatConfidence(rec.Confidence),
		formatPageCount(rec.PageCount),
		rec.Notes,
		rec.ErrorMessage,
	}
}

func comparisonRow(rec compare.ComparisonRecord) []string {
	return []string{
		rec.Human.URL,
		rec.Human.IsFormRaw,
		string(rec.Machine.IsForm),
		glyph(rec.IsFormMatch),
		rec.Human.FormTypeRaw,
		string(rec.Machine.FormType),
		glyph(rec.FormTypeMatch),
		rec.Human.SensitivityRaw,
		rec.Machine.Sensitivity.Summary(),
		glyph(rec.SensitivityMatch),
		glyph(rec.AllMatch),
		rec.Human.ReviewerName,
		rec.Human.Notes,
	}
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(EscapeField(f))
	}
	sb.WriteString("\r\n")
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func glyph(match bool) string {
	if match {
		return GlyphMatch
	}
	return GlyphMismatch
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatConfidence(c *float64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatFloat(*c, 'f', 2, 64)
}

func formatPageCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
