package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwextensions/pdf-formbot/internal/classify"
	"github.com/fwextensions/pdf-formbot/internal/compare"
)

func TestEscapeFieldRoundTripsThroughCSVReader(t *testing.T) {
	fields := []string{
		"plain",
		"",
		"has,comma",
		`has "quotes"`,
		"line\nbreak",
		"carriage\rreturn",
		`all, of "them"` + "\n",
	}

	var row []string
	for _, f := range fields {
		row = append(row, EscapeField(f))
	}
	line := strings.Join(row, ",") + "\r\n"

	got, err := csv.NewReader(strings.NewReader(line)).Read()
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestEscapeFieldLeavesPlainFieldsAlone(t *testing.T) {
	assert.Equal(t, "hello world", EscapeField("hello world"))
	assert.Equal(t, `"a,b"`, EscapeField("a,b"))
	assert.Equal(t, `"say ""hi"""`, EscapeField(`say "hi"`))
}

func TestWriteAnalysisCSV(t *testing.T) {
	conf := 0.85
	pages := 2
	records := []classify.MachineRecord{
		{
			URL:         "https://x.test/a.pdf",
			IsForm:      classify.IsFormYes,
			FormType:    classify.FillablePDF,
			Sensitivity: classify.SensitivityFlags{SSN: true},
			Confidence:  &conf,
			PageCount:   &pages,
			Notes:       "notes, with comma",
		},
		classify.ErrorRecord("https://x.test/b.pdf", assert.AnError),
	}

	path := filepath.Join(t.TempDir(), "analysis.csv")
	require.NoError(t, WriteAnalysisCSV(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)

	assert.True(t, strings.HasPrefix(text, "\ufeff"), "missing BOM")
	assert.True(t, strings.HasSuffix(text, "\r\n"))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"url", "isForm", "formType", "ssn", "driversLicense", "financial",
		"health", "criminalHistory", "confidence", "pageCount", "notes", "error",
	}, rows[0])

	assert.Equal(t, []string{
		"https://x.test/a.pdf", "Yes", "FillablePDF", "Yes", "No", "No",
		"No", "No", "0.85", "2", "notes, with comma", "",
	}, rows[1])

	// Error rows leave the optional numerics blank.
	assert.Equal(t, "Error", rows[2][1])
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "", rows[2][9])
	assert.Equal(t, assert.AnError.Error(), rows[2][11])
}

func TestWriteComparisonCSV(t *testing.T) {
	h := compare.HumanRecord{
		URL:            "https://x.test/a.pdf",
		IsFormRaw:      "Yes",
		FormTypeRaw:    "Fillable PDF",
		SensitivityRaw: "Yes",
		ReviewerName:   "alex",
	}
	m := classify.MachineRecord{
		URL:         "https://x.test/a.pdf",
		IsForm:      classify.IsFormYes,
		FormType:    classify.FillablePDF,
		Sensitivity: classify.SensitivityFlags{SSN: true, Health: true},
	}
	records := []compare.ComparisonRecord{compare.Compare(h, m)}

	path := filepath.Join(t.TempDir(), "comparison.csv")
	require.NoError(t, WriteComparisonCSV(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"url", "humanIsForm", "machineIsForm", "isFormMatch",
		"humanFormType", "machineFormType", "formTypeMatch",
		"humanSensitivity", "machineSensitivity", "sensitivityMatch",
		"allMatch", "reviewer", "notes",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, GlyphMatch, row[3])
	assert.Equal(t, GlyphMatch, row[6])
	assert.Equal(t, "SSN, Health", row[8])
	assert.Equal(t, GlyphMatch, row[9])
	assert.Equal(t, GlyphMatch, row[10])
	assert.Equal(t, "alex", row[11])
}

func TestJSONRoundTrip(t *testing.T) {
	conf := 0.5
	records := []classify.MachineRecord{
		{
			URL:         "https://x.test/a.pdf",
			IsForm:      classify.IsFormNo,
			FormType:    classify.NotApplicable,
			FormTypeRaw: "n/a",
			Confidence:  &conf,
			Notes:       "informational flyer",
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, records))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "\n"))
}

func TestWriteJSONNilRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteJSON(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestSummarizeRecords(t *testing.T) {
	records := []classify.MachineRecord{
		{IsForm: classify.IsFormYes, Sensitivity: classify.SensitivityFlags{SSN: true}},
		{IsForm: classify.IsFormYes},
		{IsForm: classify.IsFormNo},
		classify.ErrorRecord("u", assert.AnError),
	}

	s := SummarizeRecords(records)
	assert.Equal(t, AnalysisSummary{Total: 4, Forms: 2, NonForms: 1, Errors: 1, Sensitive: 1}, s)

	rendered := s.Render()
	assert.Contains(t, rendered, "Processed 4 document(s)")
	assert.Contains(t, rendered, "2 (50.0%)")
	assert.Contains(t, rendered, "1 (25.0%)")
}

func TestSummarizeComparisons(t *testing.T) {
	records := []compare.ComparisonRecord{
		{IsFormMatch: true, FormTypeMatch: true, SensitivityMatch: true, AllMatch: true},
		{IsFormMatch: true},
		{Machine: classify.ErrorRecord("u", assert.AnError)},
	}

	s := SummarizeComparisons(records)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.IsFormMatch)
	assert.Equal(t, 1, s.AllMatch)
	assert.Equal(t, 1, s.Errors)

	assert.Contains(t, s.Render(), "Compared 3 document(s)")
}

func TestSummaryRenderEmpty(t *testing.T) {
	assert.Contains(t, AnalysisSummary{}.Render(), "0 (0.0%)")
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 30, 0, time.UTC)
	assert.Equal(t, "2026-03-09T14-05-30", Timestamp(ts))
}
