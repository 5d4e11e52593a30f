package api

// CompanyInfo mirrors the company_data object of the generation endpoints.
type CompanyInfo struct {
	CompanyName      string `json:"company_name"`
	Country          string `json:"country"`
	ConsultationDate string `json:"consultation_date"`
	Experts          string `json:"experts"`
	CustomerManager  string `json:"customer_manager"`
	ConsultationType string `json:"consultation_type"`
}

// TranscriptReportRequest is the JSON body of POST /reports/from-transcript.
// VerificationRounds must serialize as an integer and the toggles as
// booleans; the service rejects stringly-typed variants.
type TranscriptReportRequest struct {
	Transcript             string      `json:"transcript"`
	CompanyData            CompanyInfo `json:"company_data"`
	MeetingNotes           string      `json:"meeting_notes"`
	AdditionalInstructions string      `json:"additional_instructions"`
	UseAzure               bool        `json:"use_azure"`
	SelectedModel          string      `json:"selected_model"`
	VerificationRounds     int         `json:"verification_rounds"`
	UseLanggraph           bool        `json:"use_langgraph"`
}

// IssuePayload is one finding inside a verification round.
type IssuePayload struct {
	Type        string `json:"type"`
	Section     string `json:"section"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// VerificationRoundPayload is one entry of results.verification_history.
type VerificationRoundPayload struct {
	Round               int            `json:"round"`
	Score               float64        `json:"score"`
	Issues              []IssuePayload `json:"issues"`
	NeedsRevision       bool           `json:"needs_revision"`
	Summary             string         `json:"summary"`
	Strengths           []string       `json:"strengths"`
	DecisionExplanation string         `json:"decision_explanation"`
}

// RevisionEntryPayload is one entry of results.revision_history.
type RevisionEntryPayload struct {
	Round                  int    `json:"round"`
	IssuesAddressed        int    `json:"issues_addressed"`
	SuggestionsImplemented int    `json:"suggestions_implemented"`
	RevisionNotes          string `json:"revision_notes"`
	RevisionSummary        string `json:"revision_summary"`
}

// ReportResults is the results object of a generation response.
type ReportResults struct {
	Status              string                     `json:"status"`
	VerificationHistory []VerificationRoundPayload `json:"verification_history"`
	RevisionHistory     []RevisionEntryPayload     `json:"revision_history"`
	FinalReportPath     string                     `json:"final_report_path,omitempty"`
	FinalReportContent  string                     `json:"final_report_content,omitempty"`
}

// ReportResponse is the body returned by both generation endpoints and by
// GET /reports/{id}.
type ReportResponse struct {
	ReportID string        `json:"report_id"`
	Status   string        `json:"status"`
	Results  ReportResults `json:"results"`
}
