package classify

// formTypeRule maps lowercased substring keywords to a canonical form type.
// Rules are evaluated in slice order and the first rule whose keywords are
// all present wins, so more specific rules must come before their generic
// fallbacks ("fillable"+"pdf" before the bare "pdf" rule).
type formTypeRule struct {
	Name     string
	Keywords []string // every keyword must appear as a substring
	Result   FormType
}

// defaultFormTypeRules returns the ordered rule table used by
// NormalizeFormType.
func defaultFormTypeRules() []formTypeRule {
	return []formTypeRule{
		{
			Name:     "fillable_pdf",
			Keywords: []string{"fillable", "pdf"},
			Result:   FillablePDF,
		},
		{
			Name:     "google_form",
			Keywords: []string{"google"},
			Result:   GoogleForm,
		},
		{
			Name:     "airtable_form",
			Keywords: []string{"airtable"},
			Result:   AirtableForm,
		},
		{
			Name:     "ms_office_form",
			Keywords: []string{"office"},
			Result:   MSOfficeForm,
		},
		{
			Name:     "ms_word_document",
			Keywords: []string{"word"},
			Result:   MSWordDocument,
		},
		{
			Name:     "phone",
			Keywords: []string{"phone"},
			Result:   Phone,
		},
		{
			Name:     "email",
			Keywords: []string{"email"},
			Result:   Email,
		},
		{
			// A plain "PDF" answer means the document is a PDF without
			// interactive fields.
			Name:     "pdf_fallback",
			Keywords: []string{"pdf"},
			Result:   NonFillablePDF,
		},
		{
			Name:     "not_applicable",
			Keywords: []string{"n/a"},
			Result:   NotApplicable,
		},
		{
			Name:     "not_applicable_long",
			Keywords: []string{"not applicable"},
			Result:   NotApplicable,
		},
		{
			Name:     "none",
			Keywords: []string{"none"},
			Result:   NotApplicable,
		},
	}
}
