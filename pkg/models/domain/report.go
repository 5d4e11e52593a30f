package domain

// Issue is one structured finding raised during a verification round.
type Issue struct {
	Type        string
	Section     string
	Description string
	Suggestion  string
}

// VerificationRound is one AI quality assessment of a report draft.
// Immutable once received; Round is the 1-based position in the history.
type VerificationRound struct {
	Round               int
	Score               float64
	Summary             string
	DecisionExplanation string
	NeedsRevision       bool
	Issues              []Issue
	Strengths           []string
}

// RevisionEntry summarizes the edits made in response to one verification
// round.
type RevisionEntry struct {
	Round                  int
	IssuesAddressed        int
	SuggestionsImplemented int
	RevisionNotes          string
	RevisionSummary        string
}

// RoundRecord pairs a verification round with its revision entry, when one
// exists. The wire format correlates the two histories purely by position;
// zipping them at ingestion keeps the pairing structural from here on.
type RoundRecord struct {
	Verification VerificationRound
	Revision     *RevisionEntry
}

// ReportResult is the outcome of one successful generation request.
// Replaced wholesale by each new submission.
type ReportResult struct {
	ReportID           string
	Status             string
	Rounds             []RoundRecord
	FinalReportPath    string
	FinalReportContent string
}

// RoundCount returns the number of verification rounds in the result.
func (r *ReportResult) RoundCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rounds)
}
