package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwextensions/pdf-formbot/internal/classify"
)

// WriteJSON writes the machine records as a pretty-printed array
// mirroring the canonical data model.
func WriteJSON(path string, records []classify.MachineRecord) error {
	if records == nil {
		records = []classify.MachineRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

// ReadJSON reads back a JSON report. Mostly useful for downstream tooling
// and for verifying that reports round-trip.
func ReadJSON(path string) ([]classify.MachineRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json report: %w", err)
	}
	var records []classify.MachineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse json report: %w", err)
	}
	return records, nil
}
