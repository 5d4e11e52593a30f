package validate

import (
	"strings"

	"github.com/de-tools/report-desk/pkg/models/domain"
)

// profileField binds a human-readable label to its accessor. Order here is
// the canonical display order of the error message.
type profileField struct {
	label string
	value func(domain.CompanyProfile) string
}

var profileFields = []profileField{
	{"Company Name", func(p domain.CompanyProfile) string { return p.CompanyName }},
	{"Country", func(p domain.CompanyProfile) string { return p.Country }},
	{"Consultation Date", func(p domain.CompanyProfile) string { return p.ConsultationDate }},
	{"Experts", func(p domain.CompanyProfile) string { return p.Experts }},
	{"Customer Manager", func(p domain.CompanyProfile) string { return p.CustomerManager }},
	{"Consultation Type", func(p domain.CompanyProfile) string { return p.ConsultationType }},
}

// MissingFields returns the labels of every profile field whose trimmed
// value is empty, in canonical order. Whitespace-only values count as empty.
func MissingFields(p domain.CompanyProfile) []string {
	var missing []string
	for _, f := range profileFields {
		if strings.TrimSpace(f.value(p)) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// MissingFieldsMessage renders the single inline error shown when required
// fields are unset, or "" when the profile is complete.
func MissingFieldsMessage(p domain.CompanyProfile) string {
	missing := MissingFields(p)
	if len(missing) == 0 {
		return ""
	}
	return "Missing required fields: " + strings.Join(missing, ", ")
}
