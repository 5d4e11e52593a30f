package adapters

import (
	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
)

// MapReportResponseToDomain builds a domain result from a generation
// response. The wire format correlates verification_history and
// revision_history purely by position (1-based round index); the zip here
// turns that convention into an explicit pairing. A revision history shorter
// than the verification history leaves the trailing rounds unrevised.
func MapReportResponseToDomain(resp api.ReportResponse) *domain.ReportResult {
	result := &domain.ReportResult{
		ReportID:           resp.ReportID,
		Status:             resp.Status,
		FinalReportPath:    resp.Results.FinalReportPath,
		FinalReportContent: resp.Results.FinalReportContent,
	}
	if result.Status == "" {
		result.Status = resp.Results.Status
	}

	for i, v := range resp.Results.VerificationHistory {
		record := domain.RoundRecord{
			Verification: MapVerificationRoundToDomain(i+1, v),
		}
		if i < len(resp.Results.RevisionHistory) {
			rev := MapRevisionEntryToDomain(i+1, resp.Results.RevisionHistory[i])
			record.Revision = &rev
		}
		result.Rounds = append(result.Rounds, record)
	}

	return result
}

func MapVerificationRoundToDomain(position int, v api.VerificationRoundPayload) domain.VerificationRound {
	round := v.Round
	if round == 0 {
		round = position
	}

	out := domain.VerificationRound{
		Round:               round,
		Score:               v.Score,
		Summary:             v.Summary,
		DecisionExplanation: v.DecisionExplanation,
		NeedsRevision:       v.NeedsRevision,
		Strengths:           append([]string(nil), v.Strengths...),
	}
	for _, issue := range v.Issues {
		out.Issues = append(out.Issues, domain.Issue{
			Type:        issue.Type,
			Section:     issue.Section,
			Description: issue.Description,
			Suggestion:  issue.Suggestion,
		})
	}
	return out
}

func MapRevisionEntryToDomain(position int, r api.RevisionEntryPayload) domain.RevisionEntry {
	round := r.Round
	if round == 0 {
		round = position
	}
	return domain.RevisionEntry{
		Round:                  round,
		IssuesAddressed:        r.IssuesAddressed,
		SuggestionsImplemented: r.SuggestionsImplemented,
		RevisionNotes:          r.RevisionNotes,
		RevisionSummary:        r.RevisionSummary,
	}
}

// MapProfileDomainToAPI serializes the company profile into the wire shape
// shared by both generation endpoints.
func MapProfileDomainToAPI(p domain.CompanyProfile) api.CompanyInfo {
	return api.CompanyInfo{
		CompanyName:      p.CompanyName,
		Country:          p.Country,
		ConsultationDate: p.ConsultationDate,
		Experts:          p.Experts,
		CustomerManager:  p.CustomerManager,
		ConsultationType: p.ConsultationType,
	}
}

// MapProfileAPIToDomain is the inverse mapping, used by the console API.
func MapProfileAPIToDomain(p api.CompanyInfo) domain.CompanyProfile {
	return domain.CompanyProfile{
		CompanyName:      p.CompanyName,
		Country:          p.Country,
		ConsultationDate: p.ConsultationDate,
		Experts:          p.Experts,
		CustomerManager:  p.CustomerManager,
		ConsultationType: p.ConsultationType,
	}
}
