package report

import "github.com/de-tools/report-desk/pkg/models/domain"

// User-visible precondition messages. Tests assert on these verbatim.
const (
	MsgLoginRequired      = "Please log in to generate a report."
	MsgTranscriptRequired = "Please provide a transcript before generating the report."
	MsgRecordingRequired  = "Please upload a recording before generating the report."
)

// State is the single owned aggregate of the submission front end. Every
// transition is a total function from one State value to the next, so the
// machine is testable without any rendering layer. The Controller owns one
// State and serializes access to it.
type State struct {
	Profile       domain.CompanyProfile
	Draft         domain.SubmissionDraft
	Result        *domain.ReportResult
	SelectedRound int
	Loading       bool
	Err           string
}

// NewState returns the documented defaults: transcript mode, default
// guidance string, default workflow options, round 1 selected.
func NewState() State {
	return State{
		Draft:         domain.DefaultDraft(),
		SelectedRound: 1,
	}
}

func (s State) WithProfile(p domain.CompanyProfile) State {
	s.Profile = p
	return s
}

// WithMode switches the submission mode. The previous result and error are
// discarded; the inactive draft branch keeps its raw fields but is ignored
// until the mode switches back.
func (s State) WithMode(mode domain.SubmissionMode) State {
	if s.Draft.Mode == mode {
		return s
	}
	s.Draft.Mode = mode
	s.Result = nil
	s.Err = ""
	s.SelectedRound = 1
	return s
}

func (s State) WithTranscript(text, filename string) State {
	s.Draft.Transcript = text
	s.Draft.TranscriptFilename = filename
	return s
}

func (s State) WithRecording(rec *domain.Recording) State {
	s.Draft.Recording = rec
	return s
}

func (s State) WithMeetingNotes(notes string) State {
	s.Draft.MeetingNotes = notes
	return s
}

func (s State) WithInstructions(instructions string) State {
	s.Draft.AdditionalInstructions = instructions
	return s
}

func (s State) WithOptions(opts domain.WorkflowOptions) State {
	s.Draft.Options = opts
	return s
}

func (s State) WithError(msg string) State {
	s.Err = msg
	return s
}

func (s State) WithSelectedRound(n int) State {
	s.SelectedRound = n
	return s
}

// BeginSubmission clears the previous error and result and raises the
// loading flag. The result is cleared before the call completes; a failed
// resubmission therefore loses the prior output. Known tension, kept
// deliberately.
func (s State) BeginSubmission() State {
	s.Loading = true
	s.Err = ""
	s.Result = nil
	return s
}

func (s State) CompleteSubmission(result *domain.ReportResult) State {
	s.Loading = false
	s.Result = result
	s.SelectedRound = 1
	return s
}

func (s State) FailSubmission(msg string) State {
	s.Loading = false
	s.Err = msg
	return s
}

// Cleared is the clear-all transition: every field back to its documented
// default. The loading flag survives so an outstanding submission keeps
// blocking new ones; its outcome is discarded when it arrives. The
// credential is not part of this aggregate and is untouched.
func (s State) Cleared() State {
	next := NewState()
	next.Loading = s.Loading
	return next
}

// AbandonSubmission lowers the loading flag without touching anything else.
// Used when a submission outcome arrives after the aggregate was cleared.
func (s State) AbandonSubmission() State {
	s.Loading = false
	return s
}
