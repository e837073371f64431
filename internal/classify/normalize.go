package classify

import (
	"math"
	"strings"
)

// Reply field names expected in the oracle's JSON output. The instruction
// template defines these; the normalizer tolerates any deviation.
const (
	FieldIsForm     = "is_form"
	FieldFormType   = "form_type"
	FieldSensitive  = "sensitive_info"
	FieldConfidence = "confidence"
	FieldPageCount  = "page_count"
	FieldNotes      = "notes"
)

var sensitivityFields = []string{
	"ssn", "drivers_license", "financial", "health", "criminal_history",
}

// Normalize maps an already-decoded oracle reply onto a complete
// MachineRecord. It is total: any shape of input, however malformed,
// produces a well-typed record. Missing or unparseable fields resolve to
// their documented defaults, never to an error.
func Normalize(url string, fields map[string]any) MachineRecord {
	rec := MachineRecord{
		URL:        url,
		IsForm:     NormalizeIsForm(asString(fields[FieldIsForm])),
		Confidence: asFloat(fields[FieldConfidence]),
		PageCount:  asPageCount(fields[FieldPageCount]),
		Notes:      asString(fields[FieldNotes]),
	}

	rec.FormTypeRaw = asString(fields[FieldFormType])
	rec.FormType = NormalizeFormType(rec.FormTypeRaw)
	rec.Sensitivity = NormalizeSensitivity(fields[FieldSensitive])
	return rec
}

// NormalizeIsForm maps the raw is-form answer to the canonical value.
// Only the exact literal "Yes" counts; everything else, including absence,
// fails closed to No.
func NormalizeIsForm(raw string) IsForm {
	if raw == "Yes" {
		return IsFormYes
	}
	return IsFormNo
}

// NormalizeFormType maps a free-text form-type answer into the canonical
// vocabulary. An answer that already names a canonical member maps to that
// member, which makes normalization a fixed point. Otherwise the ordered
// keyword rules apply to the lowercased trimmed text, first match wins.
// Empty input means the question did not apply; unmatched input is Unknown.
func NormalizeFormType(raw string) FormType {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotApplicable
	}

	for _, ft := range FormTypes() {
		if strings.EqualFold(trimmed, string(ft)) {
			return ft
		}
	}

	lowered := strings.ToLower(trimmed)
	for _, rule := range defaultFormTypeRules() {
		if ruleMatches(rule, lowered) {
			return rule.Result
		}
	}
	return Unknown
}

func ruleMatches(rule formTypeRule, lowered string) bool {
	for _, kw := range rule.Keywords {
		if !strings.Contains(lowered, kw) {
			return false
		}
	}
	return true
}

// NormalizeSensitivity coerces the nested sensitivity object to flags.
// A missing or non-object value yields all-false flags; individual fields
// are true only when their value is true-equivalent.
func NormalizeSensitivity(v any) SensitivityFlags {
	obj, ok := v.(map[string]any)
	if !ok {
		return SensitivityFlags{}
	}
	return SensitivityFlags{
		SSN:             truthy(obj[sensitivityFields[0]]),
		DriversLicense:  truthy(obj[sensitivityFields[1]]),
		Financial:       truthy(obj[sensitivityFields[2]]),
		Health:          truthy(obj[sensitivityFields[3]]),
		CriminalHistory: truthy(obj[sensitivityFields[4]]),
	}
}

// truthy reports whether a decoded JSON value is true-equivalent: boolean
// true, a nonzero number, or a string spelling of yes/true.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "y", "1":
			return true
		}
	}
	return false
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asFloat extracts an optional confidence value. Non-numeric or
// out-of-range input resolves to nil so callers can distinguish "absent"
// from a reported zero.
func asFloat(v any) *float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f < 0 || f > 1 {
		return nil
	}
	return &f
}

// asPageCount extracts an optional non-negative page count.
func asPageCount(v any) *int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || f < 0 || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}
