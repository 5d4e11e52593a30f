package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateFromTranscript(
	ctx context.Context,
	request api.TranscriptReportRequest,
) (*domain.ReportResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportResult), args.Error(1)
}

func (m *mockGenerator) GenerateFromRecording(
	ctx context.Context,
	upload reportapi.RecordingUpload,
) (*domain.ReportResult, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportResult), args.Error(1)
}

type stubGate struct {
	authenticated bool
}

func (g stubGate) Authenticated() bool { return g.authenticated }

func fullProfile() domain.CompanyProfile {
	return domain.CompanyProfile{
		CompanyName:      "Acme Oy",
		Country:          "Finland",
		ConsultationDate: "2025-03-12",
		Experts:          "L. Virtanen",
		CustomerManager:  "M. Korhonen",
		ConsultationType: "growth",
	}
}

func newTestController(gen Generator, authenticated bool) *Controller {
	return NewController(ControllerOptions{API: gen, Session: stubGate{authenticated: authenticated}})
}

func TestSubmitRequiresLogin(t *testing.T) {
	gen := &mockGenerator{}
	ctrl := newTestController(gen, false)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")

	err := ctrl.Submit(context.Background())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, MsgLoginRequired, validationErr.Error())
	assert.Equal(t, MsgLoginRequired, ctrl.Snapshot().Err)
	gen.AssertNotCalled(t, "GenerateFromTranscript", mock.Anything, mock.Anything)
	gen.AssertNotCalled(t, "GenerateFromRecording", mock.Anything, mock.Anything)
}

func TestSubmitRequiresCompleteProfile(t *testing.T) {
	gen := &mockGenerator{}
	ctrl := newTestController(gen, true)

	profile := fullProfile()
	profile.Country = ""
	profile.Experts = "  "
	ctrl.SetProfile(profile)
	ctrl.SetTranscript("Hello world")

	err := ctrl.Submit(context.Background())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Missing required fields: Country, Experts", validationErr.Error())
	gen.AssertNotCalled(t, "GenerateFromTranscript", mock.Anything, mock.Anything)
}

func TestSubmitRequiresModeContent(t *testing.T) {
	tests := []struct {
		name        string
		mode        domain.SubmissionMode
		setup       func(*Controller)
		expectedMsg string
	}{
		{
			name:        "transcript mode without text",
			mode:        domain.ModeTranscript,
			setup:       func(c *Controller) { c.SetTranscript("   \n") },
			expectedMsg: MsgTranscriptRequired,
		},
		{
			name:        "recording mode without file",
			mode:        domain.ModeRecording,
			setup:       func(c *Controller) {},
			expectedMsg: MsgRecordingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{}
			ctrl := newTestController(gen, true)
			ctrl.SetProfile(fullProfile())
			ctrl.SetMode(tt.mode)
			tt.setup(ctrl)

			err := ctrl.Submit(context.Background())

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedMsg, validationErr.Error())
			gen.AssertNotCalled(t, "GenerateFromTranscript", mock.Anything, mock.Anything)
			gen.AssertNotCalled(t, "GenerateFromRecording", mock.Anything, mock.Anything)
		})
	}
}

func TestValidationErrorKeepsExistingResult(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{ReportID: "r1", Status: "done"}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")
	require.NoError(t, ctrl.Submit(context.Background()))
	require.NotNil(t, ctrl.Snapshot().Result)

	// Blank out a field and resubmit: the precondition fails locally and
	// must not destroy the previous output.
	profile := fullProfile()
	profile.CompanyName = ""
	ctrl.SetProfile(profile)
	err := ctrl.Submit(context.Background())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	state := ctrl.Snapshot()
	require.NotNil(t, state.Result)
	assert.Equal(t, "r1", state.Result.ReportID)
	gen.AssertNumberOfCalls(t, "GenerateFromTranscript", 1)
}

func TestSubmitTranscriptSuccess(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.MatchedBy(func(r api.TranscriptReportRequest) bool {
		return r.Transcript == "Hello world" &&
			r.VerificationRounds == 5 &&
			r.UseAzure &&
			r.UseLanggraph &&
			r.SelectedModel == "gpt-5.1"
	})).Return(&domain.ReportResult{
		ReportID: "r1",
		Status:   "done",
		Rounds: []domain.RoundRecord{
			{Verification: domain.VerificationRound{Round: 1, Score: 8}},
		},
	}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")

	require.NoError(t, ctrl.Submit(context.Background()))

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	require.NotNil(t, state.Result)
	assert.Equal(t, "r1", state.Result.ReportID)
	assert.Equal(t, 1, state.SelectedRound)

	model := ctrl.Review()
	assert.Equal(t, 1, model.Count())
	active, ok := model.Active()
	require.True(t, ok)
	assert.Equal(t, 8.0, active.Score)
	gen.AssertExpectations(t)
}

func TestSubmitRecordingSuccess(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromRecording", mock.Anything, mock.MatchedBy(func(u reportapi.RecordingUpload) bool {
		return u.Filename == "meeting.mp3" &&
			string(u.Content) == "audio-bytes" &&
			u.CompanyData.CompanyName == "Acme Oy" &&
			u.Options.CompressAudio
	})).Return(&domain.ReportResult{ReportID: "r2", Status: "done"}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetMode(domain.ModeRecording)
	ctrl.AttachRecording("meeting.mp3", []byte("audio-bytes"))

	require.NoError(t, ctrl.Submit(context.Background()))
	assert.Equal(t, "r2", ctrl.Snapshot().Result.ReportID)
	gen.AssertExpectations(t)
}

func TestSubmitFailureSurfacesDetailAndClearsPriorResult(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{ReportID: "r1", Status: "done"}, nil).Once()
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(nil, &reportapi.ServiceError{StatusCode: 400, Detail: "Transcript cannot be empty"}).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")
	require.NoError(t, ctrl.Submit(context.Background()))

	err := ctrl.Submit(context.Background())
	var submissionErr *domain.SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "Transcript cannot be empty", submissionErr.Error())

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, "Transcript cannot be empty", state.Err)
	// The result is cleared before the call goes out, so a failed
	// resubmission loses the previous output.
	assert.Nil(t, state.Result)
}

func TestSubmitInFlightGate(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.ReportResult{ReportID: "r1"}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = ctrl.Submit(context.Background())
	}()

	<-started
	assert.True(t, ctrl.Snapshot().Loading)
	err := ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	wg.Wait()

	assert.False(t, ctrl.Snapshot().Loading)
	gen.AssertNumberOfCalls(t, "GenerateFromTranscript", 1)
}

func TestClearAllRestoresDefaults(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{
			ReportID: "r1",
			Rounds: []domain.RoundRecord{
				{Verification: domain.VerificationRound{Round: 1, Score: 6}},
				{Verification: domain.VerificationRound{Round: 2, Score: 8}},
			},
		}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetMeetingNotes("good meeting")
	ctrl.SetInstructions("custom guidance")
	options := domain.DefaultWorkflowOptions()
	options.VerificationRounds = 2
	options.UseAzureEndpoint = false
	ctrl.SetOptions(options)
	ctrl.SetTranscript("Hello world")
	require.NoError(t, ctrl.Submit(context.Background()))
	require.NoError(t, ctrl.SelectRound(2))

	ctrl.ClearAll()

	state := ctrl.Snapshot()
	assert.Equal(t, NewState(), state)
	assert.Equal(t, domain.ModeTranscript, state.Draft.Mode)
	assert.Equal(t, domain.DefaultAdditionalInstructions, state.Draft.AdditionalInstructions)
	assert.Equal(t, domain.DefaultWorkflowOptions(), state.Draft.Options)
	assert.Equal(t, 1, state.SelectedRound)
	assert.Nil(t, state.Result)
	assert.Empty(t, state.Err)
}

func TestClearAllDuringSubmissionDiscardsOutcome(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.ReportResult{ReportID: "r1", Status: "done"}, nil).Once()
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{ReportID: "r2", Status: "done"}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = ctrl.Submit(context.Background())
	}()

	<-started
	ctrl.ClearAll()

	// Clearing does not disarm the in-flight gate.
	assert.True(t, ctrl.Snapshot().Loading)
	assert.ErrorIs(t, ctrl.Submit(context.Background()), ErrSubmissionInFlight)

	close(release)
	wg.Wait()

	// The cleared submission's outcome never reaches the fresh state.
	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	assert.Nil(t, state.Result)
	assert.Empty(t, state.Err)
	gen.AssertNumberOfCalls(t, "GenerateFromTranscript", 1)

	// A fresh submission proceeds normally afterwards.
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello again")
	require.NoError(t, ctrl.Submit(context.Background()))
	assert.Equal(t, "r2", ctrl.Snapshot().Result.ReportID)
}

func TestModeSwitchDiscardsResult(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{ReportID: "r1"}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")
	require.NoError(t, ctrl.Submit(context.Background()))
	require.NotNil(t, ctrl.Snapshot().Result)

	ctrl.SetMode(domain.ModeRecording)

	state := ctrl.Snapshot()
	assert.Nil(t, state.Result)
	assert.Equal(t, 1, state.SelectedRound)
	// The transcript text survives the switch; it is simply ignored in
	// recording mode.
	assert.Equal(t, "Hello world", state.Draft.Transcript)
}

func TestSelectRound(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(&domain.ReportResult{
			Rounds: []domain.RoundRecord{
				{Verification: domain.VerificationRound{Round: 1, Score: 6}},
				{Verification: domain.VerificationRound{Round: 2, Score: 8}},
			},
		}, nil).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")
	require.NoError(t, ctrl.Submit(context.Background()))

	require.NoError(t, ctrl.SelectRound(2))
	active, ok := ctrl.Review().Active()
	require.True(t, ok)
	assert.Equal(t, 8.0, active.Score)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, ctrl.SelectRound(3), &validationErr)
	require.ErrorAs(t, ctrl.SelectRound(0), &validationErr)
}

func TestLoadTranscriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("transcribed text"), 0o600))

	ctrl := newTestController(&mockGenerator{}, true)
	require.NoError(t, ctrl.LoadTranscriptFile(path))

	state := ctrl.Snapshot()
	assert.Equal(t, "transcribed text", state.Draft.Transcript)
	assert.Equal(t, "meeting.txt", state.Draft.TranscriptFilename)
}

func TestLoadTranscriptFileFailureLeavesStateUntouched(t *testing.T) {
	ctrl := newTestController(&mockGenerator{}, true)
	ctrl.SetTranscript("existing text")

	err := ctrl.LoadTranscriptFile(filepath.Join(t.TempDir(), "missing.txt"))

	var readErr *domain.FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "existing text", ctrl.Snapshot().Draft.Transcript)
	assert.Empty(t, ctrl.Snapshot().Err)
}

func TestTransportErrorBecomesSubmissionError(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("GenerateFromTranscript", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	ctrl := newTestController(gen, true)
	ctrl.SetProfile(fullProfile())
	ctrl.SetTranscript("Hello world")

	err := ctrl.Submit(context.Background())
	var submissionErr *domain.SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "connection refused", ctrl.Snapshot().Err)
}
