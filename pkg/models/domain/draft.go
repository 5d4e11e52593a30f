package domain

// SubmissionMode selects which of the two request shapes a submission uses.
type SubmissionMode string

const (
	ModeRecording  SubmissionMode = "recording"
	ModeTranscript SubmissionMode = "transcript"
)

// Model identifies one of the generation models offered by the service.
type Model string

const (
	ModelGPT41 Model = "gpt-4.1"
	ModelGPT51 Model = "gpt-5.1"
	ModelGPT52 Model = "gpt-5.2"
)

// DefaultAdditionalInstructions is the guidance preloaded into every fresh
// draft. Users edit it freely; clear-all restores it.
const DefaultAdditionalInstructions = "Focus on concrete findings and actionable recommendations. " +
	"Keep the tone professional and concise."

// WorkflowOptions tune how the remote pipeline processes a submission.
// CompressAudio only matters in recording mode.
type WorkflowOptions struct {
	UseAzureEndpoint   bool
	SelectedModel      Model
	VerificationRounds int
	UseGraphWorkflow   bool
	CompressAudio      bool
}

// DefaultWorkflowOptions returns the documented option defaults.
func DefaultWorkflowOptions() WorkflowOptions {
	return WorkflowOptions{
		UseAzureEndpoint:   true,
		SelectedModel:      ModelGPT51,
		VerificationRounds: 5,
		UseGraphWorkflow:   true,
		CompressAudio:      true,
	}
}

// Recording is an in-memory copy of a selected audio or video file.
type Recording struct {
	Filename string
	Content  []byte
}

// SubmissionDraft is the unsent, user-editable submission content. Exactly
// one of Recording/Transcript is consulted, per Mode; the other branch may
// hold stale data from a prior mode switch and is ignored.
type SubmissionDraft struct {
	Mode                   SubmissionMode
	Recording              *Recording
	Transcript             string
	TranscriptFilename     string
	MeetingNotes           string
	AdditionalInstructions string
	Options                WorkflowOptions
}

// DefaultDraft returns a fresh draft with the documented defaults.
func DefaultDraft() SubmissionDraft {
	return SubmissionDraft{
		Mode:                   ModeTranscript,
		AdditionalInstructions: DefaultAdditionalInstructions,
		Options:                DefaultWorkflowOptions(),
	}
}
