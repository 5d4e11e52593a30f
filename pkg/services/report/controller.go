package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/services/review"
	"github.com/de-tools/report-desk/pkg/services/validate"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/rs/zerolog"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission is still outstanding. Only one request may be in flight.
var ErrSubmissionInFlight = errors.New("a report generation request is already in flight")

// Generator is the remote service surface the controller drives.
// Implemented by reportapi.Client.
type Generator interface {
	GenerateFromTranscript(ctx context.Context, request api.TranscriptReportRequest) (*domain.ReportResult, error)
	GenerateFromRecording(ctx context.Context, upload reportapi.RecordingUpload) (*domain.ReportResult, error)
}

// SessionGate answers whether a credential is held. Implemented by
// session.Controller.
type SessionGate interface {
	Authenticated() bool
}

// DefaultGenerateTimeout bounds one generation call. Multi-round
// verification of a long recording is slow, so the deadline is generous.
const DefaultGenerateTimeout = 10 * time.Minute

// Controller orchestrates the submission lifecycle: precondition checks,
// request shaping, the single in-flight call, and the loading/error state.
type Controller struct {
	api             Generator
	session         SessionGate
	generateTimeout time.Duration

	mu    sync.Mutex
	state State
	// epoch is bumped by ClearAll. A submission whose epoch no longer
	// matches was cleared mid-flight and its outcome is discarded.
	epoch uint64
}

type ControllerOptions struct {
	API     Generator
	Session SessionGate
	// GenerateTimeout overrides DefaultGenerateTimeout when positive.
	GenerateTimeout time.Duration
}

func NewController(opts ControllerOptions) *Controller {
	timeout := opts.GenerateTimeout
	if timeout <= 0 {
		timeout = DefaultGenerateTimeout
	}
	return &Controller{
		api:             opts.API,
		session:         opts.Session,
		generateTimeout: timeout,
		state:           NewState(),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Review projects the current result and selection for display.
func (c *Controller) Review() review.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return review.NewModel(c.state.Result, c.state.SelectedRound)
}

// SetProfile replaces the company profile.
func (c *Controller) SetProfile(p domain.CompanyProfile) {
	c.apply(func(s State) State { return s.WithProfile(p) })
}

// SetMode switches between transcript and recording mode, discarding the
// previous result.
func (c *Controller) SetMode(mode domain.SubmissionMode) {
	c.apply(func(s State) State { return s.WithMode(mode) })
}

// SetTranscript replaces the pasted transcript text.
func (c *Controller) SetTranscript(text string) {
	c.apply(func(s State) State { return s.WithTranscript(text, "") })
}

// SetMeetingNotes replaces the optional meeting notes.
func (c *Controller) SetMeetingNotes(notes string) {
	c.apply(func(s State) State { return s.WithMeetingNotes(notes) })
}

// SetInstructions replaces the additional-instructions guidance.
func (c *Controller) SetInstructions(instructions string) {
	c.apply(func(s State) State { return s.WithInstructions(instructions) })
}

// SetOptions replaces the workflow options.
func (c *Controller) SetOptions(opts domain.WorkflowOptions) {
	c.apply(func(s State) State { return s.WithOptions(opts) })
}

// AttachRecording stores an in-memory recording payload.
func (c *Controller) AttachRecording(filename string, content []byte) {
	c.apply(func(s State) State {
		return s.WithRecording(&domain.Recording{Filename: filename, Content: content})
	})
}

// LoadTranscriptFile reads a transcript from disk into the draft. A read
// failure surfaces as a FileReadError and leaves the transcript state
// untouched.
func (c *Controller) LoadTranscriptFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &domain.FileReadError{Path: path, Cause: err}
	}
	c.apply(func(s State) State {
		return s.WithTranscript(string(content), filepath.Base(path))
	})
	return nil
}

// LoadRecordingFile reads a recording from disk into the draft.
func (c *Controller) LoadRecordingFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &domain.FileReadError{Path: path, Cause: err}
	}
	c.AttachRecording(filepath.Base(path), content)
	return nil
}

// SelectRound navigates the review panel to round n.
func (c *Controller) SelectRound(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !review.NewModel(c.state.Result, c.state.SelectedRound).ValidSelection(n) {
		return &domain.ValidationError{Message: "No such verification round."}
	}
	c.state = c.state.WithSelectedRound(n)
	return nil
}

// ClearAll resets every field of the aggregate to its documented default.
// An outstanding submission keeps the loading flag raised and its outcome
// is discarded on arrival. The session credential is owned elsewhere and
// untouched.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.state = c.state.Cleared()
}

// Submit runs the precondition chain and, when it passes, issues exactly
// one generation request. Precondition failures set the single visible
// error, make no network call, and keep any existing result. The returned
// error carries the same message the state exposes.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if msg := c.checkPreconditions(); msg != "" {
		c.state = c.state.WithError(msg)
		c.mu.Unlock()
		return &domain.ValidationError{Message: msg}
	}

	mode := c.state.Draft.Mode
	profile := c.state.Profile
	draft := c.state.Draft
	c.state = c.state.BeginSubmission()
	epoch := c.epoch
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("mode", string(mode)).Msg("submitting generation request")

	var result *domain.ReportResult
	var err error
	if mode == domain.ModeRecording {
		result, err = c.api.GenerateFromRecording(ctx, BuildRecordingUpload(profile, draft))
	} else {
		result, err = c.api.GenerateFromTranscript(ctx, BuildTranscriptRequest(profile, draft))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		// Cleared while the call was outstanding. Neither the result nor
		// the error reaches the fresh state.
		logger.Info().Str("mode", string(mode)).Msg("discarding outcome of cleared submission")
		c.state = c.state.AbandonSubmission()
		if err != nil {
			return &domain.SubmissionError{Message: err.Error(), Cause: err}
		}
		return nil
	}

	if err != nil {
		logger.Error().Err(err).Msg("generation request failed")
		c.state = c.state.FailSubmission(err.Error())
		return &domain.SubmissionError{Message: err.Error(), Cause: err}
	}

	logger.Info().Str("report_id", result.ReportID).Int("rounds", result.RoundCount()).
		Msg("generation request succeeded")
	c.state = c.state.CompleteSubmission(result)
	return nil
}

// checkPreconditions walks the documented chain in order, short-circuiting
// on the first failure. Caller holds the lock.
func (c *Controller) checkPreconditions() string {
	if !c.session.Authenticated() {
		return MsgLoginRequired
	}
	if msg := validate.MissingFieldsMessage(c.state.Profile); msg != "" {
		return msg
	}
	switch c.state.Draft.Mode {
	case domain.ModeRecording:
		if c.state.Draft.Recording == nil || len(c.state.Draft.Recording.Content) == 0 {
			return MsgRecordingRequired
		}
	default:
		if strings.TrimSpace(c.state.Draft.Transcript) == "" {
			return MsgTranscriptRequired
		}
	}
	return ""
}

func (c *Controller) apply(transition func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = transition(c.state)
}
