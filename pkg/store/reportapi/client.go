package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/de-tools/report-desk/pkg/adapters"
	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/hashicorp/go-cleanhttp"
)

// TokenSource supplies the bearer token for authenticated calls. The
// session controller implements it.
type TokenSource interface {
	Token() (string, bool)
}

// ServiceError is a non-2xx response from the report service, carrying the
// structured detail message when the service provided one.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("report service returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client talks to the remote report-generation service. The underlying
// transport performs no implicit retries; every call is bounded by its
// context.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Options struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		tokens:  opts.Tokens,
	}
}

// SetTokens installs the token source after construction. The session
// controller both consumes the client (for login) and supplies its tokens,
// so one of the two has to be bound late.
func (c *Client) SetTokens(tokens TokenSource) {
	c.tokens = tokens
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Credential, error) {
	body, err := json.Marshal(api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return domain.Credential{}, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return domain.Credential{}, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp api.LoginResponse
	if err := c.do(req, &resp); err != nil {
		return domain.Credential{}, err
	}

	return domain.Credential{Username: username, Token: resp.AccessToken}, nil
}

// GenerateFromTranscript submits the structured-JSON request shape.
func (c *Client) GenerateFromTranscript(
	ctx context.Context,
	request api.TranscriptReportRequest,
) (*domain.ReportResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/reports/from-transcript", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transcript request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp api.ReportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return adapters.MapReportResponseToDomain(resp), nil
}

// RecordingUpload is the multipart request shape of the recording endpoint.
type RecordingUpload struct {
	Filename               string
	Content                []byte
	CompanyData            api.CompanyInfo
	MeetingNotes           string
	AdditionalInstructions string
	Options                domain.WorkflowOptions
}

// GenerateFromRecording submits the multipart request shape. The company
// profile travels as embedded JSON text and numeric/boolean options as
// their textual representation; that is what the service's form parser
// expects.
func (c *Client) GenerateFromRecording(ctx context.Context, upload RecordingUpload) (*domain.ReportResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, fmt.Errorf("failed to write recording payload: %w", err)
	}

	companyData, err := json.Marshal(upload.CompanyData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company data: %w", err)
	}

	fields := map[string]string{
		"company_data":            string(companyData),
		"meeting_notes":           upload.MeetingNotes,
		"additional_instructions": upload.AdditionalInstructions,
		"use_azure":               strconv.FormatBool(upload.Options.UseAzureEndpoint),
		"selected_model":          string(upload.Options.SelectedModel),
		"verification_rounds":     strconv.Itoa(upload.Options.VerificationRounds),
		"compress_audio":          strconv.FormatBool(upload.Options.CompressAudio),
		"use_langgraph":           strconv.FormatBool(upload.Options.UseGraphWorkflow),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %q: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/reports/from-recording", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build recording request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp api.ReportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return adapters.MapReportResponseToDomain(resp), nil
}

// GetReport fetches a previously generated report by id.
func (c *Client) GetReport(ctx context.Context, reportID string) (*domain.ReportResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reports/"+reportID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}

	var resp api.ReportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	result := adapters.MapReportResponseToDomain(resp)
	if result.ReportID == "" {
		result.ReportID = reportID
	}
	return result, nil
}

// DownloadURL is where the finished document can be fetched. Linked, not
// retrieved by this client.
func (c *Client) DownloadURL(reportID string) string {
	return fmt.Sprintf("%s/reports/%s/download", c.baseURL, reportID)
}

// HTMLURL is the in-browser preview of the finished document.
func (c *Client) HTMLURL(reportID string) string {
	return fmt.Sprintf("%s/reports/%s/html", c.baseURL, reportID)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServiceError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeServiceError(resp *http.Response) error {
	svcErr := &ServiceError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return svcErr
	}
	var payload api.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		svcErr.Detail = payload.Detail
	}
	return svcErr
}
