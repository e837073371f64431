// Package classify defines the canonical classification vocabulary and the
// normalizer that maps raw oracle replies onto it.
package classify

import "strings"

// IsForm is the three-valued form determination carried by a MachineRecord.
type IsForm string

const (
	IsFormYes   IsForm = "Yes"
	IsFormNo    IsForm = "No"
	IsFormError IsForm = "Error" // sentinel used when ErrorMessage is set
)

// FormType is the closed vocabulary every free-text form-type answer is
// normalized into.
type FormType string

const (
	FillablePDF    FormType = "FillablePDF"
	NonFillablePDF FormType = "NonFillablePDF"
	GoogleForm     FormType = "GoogleForm"
	MSOfficeForm   FormType = "MSOfficeForm"
	MSWordDocument FormType = "MSWordDocument"
	AirtableForm   FormType = "AirtableForm"
	Phone          FormType = "Phone"
	Email          FormType = "Email"
	NotApplicable  FormType = "NotApplicable"
	Unknown        FormType = "Unknown"
)

// FormTypes lists every member of the canonical vocabulary.
func FormTypes() []FormType {
	return []FormType{
		FillablePDF, NonFillablePDF, GoogleForm, MSOfficeForm,
		MSWordDocument, AirtableForm, Phone, Email, NotApplicable, Unknown,
	}
}

// SensitivityFlags records which categories of sensitive personal
// information a form asks for. Absent or unparseable input for a field
// always resolves to false, never to a missing value.
type SensitivityFlags struct {
	SSN             bool `json:"ssn"`
	DriversLicense  bool `json:"driversLicense"`
	Financial       bool `json:"financial"`
	Health          bool `json:"health"`
	CriminalHistory bool `json:"criminalHistory"`
}

// Any reports whether at least one flag is set.
func (s SensitivityFlags) Any() bool {
	return s.SSN || s.DriversLicense || s.Financial || s.Health || s.CriminalHistory
}

// Summary returns the comma-joined display names of the set flags, or the
// empty string when none are set.
func (s SensitivityFlags) Summary() string {
	var parts []string
	if s.SSN {
		parts = append(parts, "SSN")
	}
	if s.DriversLicense {
		parts = append(parts, "Driver's License")
	}
	if s.Financial {
		parts = append(parts, "Financial")
	}
	if s.Health {
		parts = append(parts, "Health")
	}
	if s.CriminalHistory {
		parts = append(parts, "Criminal History")
	}
	return strings.Join(parts, ", ")
}

// MachineRecord is the normalized result of classifying one document.
// Records are created once by the oracle/normalizer pipeline and never
// mutated afterwards. A populated ErrorMessage implies IsForm carries the
// Error sentinel and every other field holds its zero value.
type MachineRecord struct {
	URL          string           `json:"url"`
	IsForm       IsForm           `json:"isForm"`
	FormType     FormType         `json:"formType"`
	FormTypeRaw  string           `json:"formTypeRaw,omitempty"`
	Sensitivity  SensitivityFlags `json:"sensitivity"`
	Confidence   *float64         `json:"confidence"`
	PageCount    *int             `json:"pageCount"`
	Notes        string           `json:"notes,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
}

// ErrorRecord builds the record emitted for a document whose retrieval or
// classification failed. The batch keeps going; the failure travels with
// the record.
func ErrorRecord(url string, err error) MachineRecord {
	return MachineRecord{
		URL:          url,
		IsForm:       IsFormError,
		FormType:     Unknown,
		ErrorMessage: err.Error(),
	}
}
