package compare

import (
	"strings"

	"github.com/fwextensions/pdf-formbot/internal/classify"
)

// Join pairs human and machine records by exact URL equality after
// trimming. There is no fuzzy matching: a record without a counterpart on
// the other side produces no comparison row. Pairs come out in
// ground-truth order.
func Join(humans []HumanRecord, machines []classify.MachineRecord) []ComparisonRecord {
	byURL := make(map[string]classify.MachineRecord, len(machines))
	for _, m := range machines {
		byURL[strings.TrimSpace(m.URL)] = m
	}

	var out []ComparisonRecord
	for _, h := range humans {
		m, ok := byURL[strings.TrimSpace(h.URL)]
		if !ok {
			continue
		}
		out = append(out, Compare(h, m))
	}
	return out
}
