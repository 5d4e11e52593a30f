package report

import (
	"github.com/de-tools/report-desk/pkg/adapters"
	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
)

// BuildTranscriptRequest shapes the structured-JSON request of transcript
// mode. No audio-related fields are included.
func BuildTranscriptRequest(profile domain.CompanyProfile, draft domain.SubmissionDraft) api.TranscriptReportRequest {
	return api.TranscriptReportRequest{
		Transcript:             draft.Transcript,
		CompanyData:            adapters.MapProfileDomainToAPI(profile),
		MeetingNotes:           draft.MeetingNotes,
		AdditionalInstructions: draft.AdditionalInstructions,
		UseAzure:               draft.Options.UseAzureEndpoint,
		SelectedModel:          string(draft.Options.SelectedModel),
		VerificationRounds:     draft.Options.VerificationRounds,
		UseLanggraph:           draft.Options.UseGraphWorkflow,
	}
}

// BuildRecordingUpload shapes the multipart request of recording mode,
// including the audio-only options.
func BuildRecordingUpload(profile domain.CompanyProfile, draft domain.SubmissionDraft) reportapi.RecordingUpload {
	upload := reportapi.RecordingUpload{
		CompanyData:            adapters.MapProfileDomainToAPI(profile),
		MeetingNotes:           draft.MeetingNotes,
		AdditionalInstructions: draft.AdditionalInstructions,
		Options:                draft.Options,
	}
	if draft.Recording != nil {
		upload.Filename = draft.Recording.Filename
		upload.Content = draft.Recording.Content
	}
	return upload
}
