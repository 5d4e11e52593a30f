package console

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/services/review"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxRecordingSize bounds the multipart upload held in memory.
const maxRecordingSize = 512 << 20

// SessionService is the authentication surface the console exposes.
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Authenticated() bool
	Username() string
}

// LinkProvider resolves the download and preview locations of a report.
type LinkProvider interface {
	DownloadURL(reportID string) string
	HTMLURL(reportID string) string
}

// Handler adapts the submission state machine to the console JSON API.
type Handler struct {
	session SessionService
	reports *report.Controller
	links   LinkProvider
}

func NewHandler(session SessionService, reports *report.Controller, links LinkProvider) *Handler {
	return &Handler{session: session, reports: reports, links: links}
}

// Routes wires the console API. Mounted under /api/v1 by the server.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/session", h.GetSession)
	r.Post("/session", h.Login)
	r.Delete("/session", h.Logout)

	r.Get("/state", h.GetState)
	r.Put("/profile", h.UpdateProfile)
	r.Put("/draft", h.UpdateDraft)
	r.Put("/options", h.UpdateOptions)

	r.Post("/submissions/transcript", h.SubmitTranscript)
	r.Post("/submissions/recording", h.SubmitRecording)

	r.Post("/review/round", h.SelectRound)
	r.Post("/clear", h.ClearAll)

	r.Get("/reports/{reportID}/links", h.GetReportLinks)

	return r
}

// GetSession reports the authentication state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, api.SessionState{
		Authenticated: h.session.Authenticated(),
		Username:      h.session.Username(),
	})
}

// Login authenticates against the remote service.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.Login(r.Context(), body.Username, body.Password); err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeJSON(r.Context(), w, api.SessionState{Authenticated: true, Username: h.session.Username()})
}

// Logout clears the session credential.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear stored credential")
		return
	}
	h.writeJSON(r.Context(), w, api.SessionState{Authenticated: false})
}

// GetState returns the full console state. Gated on authentication: while
// signed out, the sign-in surface is the only thing the page may show.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	h.writeJSON(r.Context(), w, h.stateView())
}

// UpdateProfile replaces the company profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	var body api.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.reports.SetProfile(domain.CompanyProfile{
		CompanyName:      body.CompanyName,
		Country:          body.Country,
		ConsultationDate: body.ConsultationDate,
		Experts:          body.Experts,
		CustomerManager:  body.CustomerManager,
		ConsultationType: body.ConsultationType,
	})
	h.writeJSON(r.Context(), w, h.stateView())
}

// UpdateDraft applies partial edits to the draft text fields.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	var body api.DraftUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Mode != nil {
		mode := domain.SubmissionMode(*body.Mode)
		if mode != domain.ModeTranscript && mode != domain.ModeRecording {
			writeError(w, http.StatusBadRequest, "unknown submission mode")
			return
		}
		h.reports.SetMode(mode)
	}
	if body.Transcript != nil {
		h.reports.SetTranscript(*body.Transcript)
	}
	if body.MeetingNotes != nil {
		h.reports.SetMeetingNotes(*body.MeetingNotes)
	}
	if body.AdditionalInstructions != nil {
		h.reports.SetInstructions(*body.AdditionalInstructions)
	}
	h.writeJSON(r.Context(), w, h.stateView())
}

// UpdateOptions applies partial edits to the workflow options. Omitted
// fields keep their current value, same as UpdateDraft.
func (h *Handler) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	var body api.OptionsUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.VerificationRounds != nil && (*body.VerificationRounds < 1 || *body.VerificationRounds > 5) {
		writeError(w, http.StatusBadRequest, "verification_rounds must be between 1 and 5")
		return
	}

	opts := h.reports.Snapshot().Draft.Options
	if body.UseAzure != nil {
		opts.UseAzureEndpoint = *body.UseAzure
	}
	if body.SelectedModel != nil {
		opts.SelectedModel = domain.Model(*body.SelectedModel)
	}
	if body.VerificationRounds != nil {
		opts.VerificationRounds = *body.VerificationRounds
	}
	if body.UseLanggraph != nil {
		opts.UseGraphWorkflow = *body.UseLanggraph
	}
	if body.CompressAudio != nil {
		opts.CompressAudio = *body.CompressAudio
	}
	h.reports.SetOptions(opts)
	h.writeJSON(r.Context(), w, h.stateView())
}

// SubmitTranscript switches to transcript mode and submits the draft.
func (h *Handler) SubmitTranscript(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	h.reports.SetMode(domain.ModeTranscript)
	h.submit(w, r)
}

// SubmitRecording attaches the uploaded file, switches to recording mode
// and submits. The file part is optional so the precondition error for a
// missing recording surfaces through the normal chain.
func (h *Handler) SubmitRecording(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	h.reports.SetMode(domain.ModeRecording)

	if err := r.ParseMultipartForm(maxRecordingSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, "failed to read uploaded recording")
			return
		}
		h.reports.AttachRecording(header.Filename, content)
	}

	h.submit(w, r)
}

// SelectRound navigates the review panel.
func (h *Handler) SelectRound(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	var body api.RoundSelection
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.reports.SelectRound(body.Round); err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeJSON(r.Context(), w, h.stateView())
}

// ClearAll resets the whole draft surface to its defaults.
func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	h.reports.ClearAll()
	h.writeJSON(r.Context(), w, h.stateView())
}

// GetReportLinks returns the download and preview locations for a report.
func (h *Handler) GetReportLinks(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w) {
		return
	}
	id := chi.URLParam(r, "reportID")
	h.writeJSON(r.Context(), w, api.ReportLinks{
		DownloadURL:    h.links.DownloadURL(id),
		HTMLPreviewURL: h.links.HTMLURL(id),
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.Submit(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeJSON(r.Context(), w, h.stateView())
}

func (h *Handler) requireSession(w http.ResponseWriter) bool {
	if h.session.Authenticated() {
		return true
	}
	writeError(w, http.StatusUnauthorized, report.MsgLoginRequired)
	return false
}

func (h *Handler) stateView() api.StateView {
	state := h.reports.Snapshot()
	model := h.reports.Review()

	view := api.StateView{
		Profile: api.CompanyInfo{
			CompanyName:      state.Profile.CompanyName,
			Country:          state.Profile.Country,
			ConsultationDate: state.Profile.ConsultationDate,
			Experts:          state.Profile.Experts,
			CustomerManager:  state.Profile.CustomerManager,
			ConsultationType: state.Profile.ConsultationType,
		},
		Draft: api.DraftView{
			Mode:                   string(state.Draft.Mode),
			Transcript:             state.Draft.Transcript,
			TranscriptFilename:     state.Draft.TranscriptFilename,
			MeetingNotes:           state.Draft.MeetingNotes,
			AdditionalInstructions: state.Draft.AdditionalInstructions,
		},
		Options: api.OptionsView{
			UseAzure:           state.Draft.Options.UseAzureEndpoint,
			SelectedModel:      string(state.Draft.Options.SelectedModel),
			VerificationRounds: state.Draft.Options.VerificationRounds,
			UseLanggraph:       state.Draft.Options.UseGraphWorkflow,
			CompressAudio:      state.Draft.Options.CompressAudio,
		},
		Loading: state.Loading,
		Error:   state.Err,
	}
	if state.Draft.Recording != nil {
		view.Draft.RecordingFilename = state.Draft.Recording.Filename
	}
	if state.Result != nil {
		view.Review = h.reviewView(state.Result, model)
	}
	return view
}

func (h *Handler) reviewView(result *domain.ReportResult, model review.Model) *api.ReviewView {
	view := &api.ReviewView{
		ReportID:      result.ReportID,
		Status:        result.Status,
		RoundsCount:   model.Count(),
		SelectedRound: model.SelectedRound(),
	}
	if latest, ok := model.Latest(); ok {
		view.Latest = mapRoundView(latest)
	}
	if active, ok := model.Active(); ok {
		view.Active = mapRoundView(active)
	}
	if rev, ok := model.ActiveRevision(); ok {
		view.ActiveRevision = rev.RevisionSummary
	}
	if result.ReportID != "" {
		view.DownloadURL = h.links.DownloadURL(result.ReportID)
		view.HTMLPreviewURL = h.links.HTMLURL(result.ReportID)
	}
	return view
}

func mapRoundView(round domain.VerificationRound) *api.RoundView {
	view := &api.RoundView{
		Round:               round.Round,
		Score:               round.Score,
		Summary:             round.Summary,
		DecisionExplanation: round.DecisionExplanation,
		Strengths:           round.Strengths,
		NoIssues:            len(round.Issues) == 0,
		NoStrengths:         len(round.Strengths) == 0,
	}
	for _, issue := range round.Issues {
		view.Issues = append(view.Issues, api.IssuePayload{
			Type:        issue.Type,
			Section:     issue.Section,
			Description: issue.Description,
			Suggestion:  issue.Suggestion,
		})
	}
	return view
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Detail: detail})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var authErr *domain.AuthError
	var submissionErr *domain.SubmissionError

	switch {
	case errors.Is(err, report.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, authErr.Error())
	case errors.As(err, &submissionErr):
		writeError(w, http.StatusBadGateway, submissionErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
