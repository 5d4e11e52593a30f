package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/services/review"
)

// Reporter renders a verification review to the console in formatted text.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type reviewView struct {
	ReportID      string
	Status        string
	RoundsCount   int
	SelectedRound int
	Latest        *domain.VerificationRound
	Active        *domain.VerificationRound
	Revision      string
	NoIssues      bool
	NoStrengths   bool
	DownloadURL   string
	PreviewURL    string
}

// Handle prints the review projection of result with the given round
// selected. The links are optional.
func (c *Reporter) Handle(result *domain.ReportResult, model review.Model, downloadURL, previewURL string) error {
	view := reviewView{
		RoundsCount:   model.Count(),
		SelectedRound: model.SelectedRound(),
		NoIssues:      model.NoIssues(),
		NoStrengths:   model.NoStrengths(),
		DownloadURL:   downloadURL,
		PreviewURL:    previewURL,
	}
	if result != nil {
		view.ReportID = result.ReportID
		view.Status = result.Status
	}
	if latest, ok := model.Latest(); ok {
		view.Latest = &latest
	}
	if active, ok := model.Active(); ok {
		view.Active = &active
	}
	if rev, ok := model.ActiveRevision(); ok {
		view.Revision = rev.RevisionSummary
	}

	tmpl := `
Report {{.ReportID}} ({{.Status}})
Verification rounds: {{.RoundsCount}}
{{if .Latest}}Latest score: {{printf "%.1f" .Latest.Score}}/10
Latest summary: {{.Latest.Summary}}
{{end}}{{if .Active}}
=== Round {{.Active.Round}} of {{.RoundsCount}} ===
Score: {{printf "%.1f" .Active.Score}}/10
{{if .Active.Summary}}Summary: {{.Active.Summary}}
{{end}}{{if .Active.DecisionExplanation}}Decision: {{.Active.DecisionExplanation}}
{{end}}
Issues:{{if .NoIssues}} no issues found{{else}}{{range .Active.Issues}}
- [{{.Type}}] {{.Section}}: {{.Description}}
  Suggestion: {{.Suggestion}}{{end}}{{end}}

Strengths:{{if .NoStrengths}} no strengths listed{{else}}{{range .Active.Strengths}}
- {{.}}{{end}}{{end}}
{{if .Revision}}
Revision: {{.Revision}}
{{end}}{{end}}{{if .DownloadURL}}
Download: {{.DownloadURL}}
Preview:  {{.PreviewURL}}
{{end}}`

	t, err := template.New("review").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}
