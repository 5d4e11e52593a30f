package api

// Bodies of the local console API served by pkg/server. The console page is
// a thin view over the submission state machine; these shapes are what it
// reads and writes.

// SessionState reports whether a credential is held and for whom.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// DraftUpdate carries the editable text fields of the submission draft.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type DraftUpdate struct {
	Mode                   *string `json:"mode,omitempty"`
	Transcript             *string `json:"transcript,omitempty"`
	TranscriptFilename     *string `json:"transcript_filename,omitempty"`
	MeetingNotes           *string `json:"meeting_notes,omitempty"`
	AdditionalInstructions *string `json:"additional_instructions,omitempty"`
}

// OptionsUpdate carries the workflow toggles. Pointer fields distinguish
// "leave unchanged" from an explicit value, same as DraftUpdate.
type OptionsUpdate struct {
	UseAzure           *bool   `json:"use_azure,omitempty"`
	SelectedModel      *string `json:"selected_model,omitempty"`
	VerificationRounds *int    `json:"verification_rounds,omitempty"`
	UseLanggraph       *bool   `json:"use_langgraph,omitempty"`
	CompressAudio      *bool   `json:"compress_audio,omitempty"`
}

// OptionsView is the workflow options as rendered by the console.
type OptionsView struct {
	UseAzure           bool   `json:"use_azure"`
	SelectedModel      string `json:"selected_model"`
	VerificationRounds int    `json:"verification_rounds"`
	UseLanggraph       bool   `json:"use_langgraph"`
	CompressAudio      bool   `json:"compress_audio"`
}

// RoundSelection selects the verification round shown in the review panel.
type RoundSelection struct {
	Round int `json:"round"`
}

// RoundView is one verification round as rendered by the console.
type RoundView struct {
	Round               int            `json:"round"`
	Score               float64        `json:"score"`
	Summary             string         `json:"summary"`
	DecisionExplanation string         `json:"decision_explanation"`
	Issues              []IssuePayload `json:"issues"`
	Strengths           []string       `json:"strengths"`
	NoIssues            bool           `json:"no_issues"`
	NoStrengths         bool           `json:"no_strengths"`
}

// ReviewView is the navigable projection over the verification history.
type ReviewView struct {
	ReportID       string     `json:"report_id"`
	Status         string     `json:"status"`
	RoundsCount    int        `json:"rounds_count"`
	SelectedRound  int        `json:"selected_round"`
	Latest         *RoundView `json:"latest,omitempty"`
	Active         *RoundView `json:"active,omitempty"`
	ActiveRevision string     `json:"active_revision,omitempty"`
	DownloadURL    string     `json:"download_url,omitempty"`
	HTMLPreviewURL string     `json:"html_preview_url,omitempty"`
}

// StateView is the full console state returned by GET /api/v1/state.
type StateView struct {
	Profile CompanyInfo `json:"profile"`
	Draft   DraftView   `json:"draft"`
	Options OptionsView `json:"options"`
	Loading bool        `json:"loading"`
	Error   string      `json:"error,omitempty"`
	Review  *ReviewView `json:"review,omitempty"`
}

// DraftView is the draft as shown to the console (recording bytes elided).
type DraftView struct {
	Mode                   string `json:"mode"`
	Transcript             string `json:"transcript"`
	TranscriptFilename     string `json:"transcript_filename,omitempty"`
	RecordingFilename      string `json:"recording_filename,omitempty"`
	MeetingNotes           string `json:"meeting_notes"`
	AdditionalInstructions string `json:"additional_instructions"`
}

// ReportLinks carries the download and preview locations of a report.
type ReportLinks struct {
	DownloadURL    string `json:"download_url"`
	HTMLPreviewURL string `json:"html_preview_url"`
}
