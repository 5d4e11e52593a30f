package commands

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/services/review"
	"github.com/de-tools/report-desk/pkg/services/session"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/spf13/cobra"
)

type ReviewCmd struct {
	reportID string
	round    int

	session  *session.Controller
	client   *reportapi.Client
	reporter *export.Reporter
}

func NewReviewCmd(sessionCtrl *session.Controller, client *reportapi.Client, reporter *export.Reporter) *cobra.Command {
	rc := &ReviewCmd{session: sessionCtrl, client: client, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the verification rounds of a generated report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.reportID, "report", "", "Report id to review")
	cmd.Flags().IntVar(&rc.round, "round", 1, "Verification round to display")

	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func (rc *ReviewCmd) run(cmd *cobra.Command, _ []string) error {
	if !rc.session.Authenticated() {
		return errors.New(report.MsgLoginRequired)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	result, err := rc.client.GetReport(ctx, rc.reportID)
	if err != nil {
		return err
	}

	return rc.reporter.Handle(
		result,
		review.NewModel(result, rc.round),
		rc.client.DownloadURL(result.ReportID),
		rc.client.HTMLURL(result.ReportID),
	)
}
