package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/fwextensions/pdf-formbot/internal/compare"
)

// Ground-truth column headers, exactly as exported by the review
// spreadsheet.
const (
	ColURL         = "url"
	ColIsForm      = "Review: Is this a form"
	ColFormType    = "Reviewer: Form Type"
	ColSensitivity = "Reviewer: Does this form ask for SSN, DL#, financial, health info or criminal history?"
	ColReviewer    = "Review: Reviewed by"
	ColNotes       = "Reviewer: Notes (optional)"
)

// ReadGroundTruth parses the reviewer ground-truth CSV. The header row is
// required; rows whose url column does not end in .pdf are skipped.
func ReadGroundTruth(path string) ([]compare.HumanRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}
	return ParseGroundTruth(StripBOM(string(data)))
}

// ParseGroundTruth parses ground-truth CSV text that has already had any
// byte-order marker stripped.
func ParseGroundTruth(text string) ([]compare.HumanRecord, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // ragged rows tolerated; columns resolved by header

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ground truth: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ground truth is empty")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []compare.HumanRecord
	for _, row := range rows[1:] {
		url := strings.TrimSpace(field(row, cols[ColURL]))
		if !strings.HasSuffix(strings.ToLower(url), ".pdf") {
			continue
		}
		records = append(records, compare.HumanRecord{
			URL:            url,
			IsFormRaw:      field(row, cols[ColIsForm]),
			FormTypeRaw:    field(row, cols[ColFormType]),
			SensitivityRaw: field(row, cols[ColSensitivity]),
			ReviewerName:   field(row, cols[ColReviewer]),
			Notes:          field(row, cols[ColNotes]),
		})
	}
	return records, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColURL, ColIsForm, ColFormType, ColSensitivity, ColReviewer, ColNotes} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("ground truth missing column %q", required)
		}
	}
	return cols, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
