package domain

import "strings"

// CompanyProfile holds the consultation metadata attached to every
// generated report. A submission is permitted only when every field is
// non-empty after trimming.
type CompanyProfile struct {
	CompanyName      string
	Country          string
	ConsultationDate string
	Experts          string
	CustomerManager  string
	ConsultationType string
}

// IsComplete reports whether every profile field carries a non-blank value.
func (p CompanyProfile) IsComplete() bool {
	fields := []string{
		p.CompanyName,
		p.Country,
		p.ConsultationDate,
		p.Experts,
		p.CustomerManager,
		p.ConsultationType,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
