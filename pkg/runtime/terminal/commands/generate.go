package commands

import (
	"fmt"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type GenerateCmd struct {
	transcript     string
	transcriptFile string
	recordingFile  string

	profileFile      string
	companyName      string
	country          string
	consultationDate string
	experts          string
	customerManager  string
	consultationType string

	meetingNotes string
	instructions string

	useAzure      bool
	model         string
	rounds        int
	graphWorkflow bool
	compressAudio bool

	reports  *report.Controller
	client   *reportapi.Client
	reporter *export.Reporter
}

func NewGenerateCmd(reports *report.Controller, client *reportapi.Client, reporter *export.Reporter) *cobra.Command {
	defaults := domain.DefaultWorkflowOptions()
	gc := &GenerateCmd{reports: reports, client: client, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a consultation report from a transcript or recording",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.transcript, "transcript", "", "Transcript text")
	cmd.Flags().StringVar(&gc.transcriptFile, "transcript-file", "", "Path to a transcript text file")
	cmd.Flags().StringVar(&gc.recordingFile, "recording", "", "Path to a meeting recording")

	cmd.Flags().StringVar(&gc.profileFile, "profile", "",
		"Path to a file with the company profile fields")
	cmd.Flags().StringVar(&gc.companyName, "company", "", "Company name")
	cmd.Flags().StringVar(&gc.country, "country", "", "Company country")
	cmd.Flags().StringVar(&gc.consultationDate, "date", "", "Consultation date")
	cmd.Flags().StringVar(&gc.experts, "experts", "", "Consulting experts")
	cmd.Flags().StringVar(&gc.customerManager, "manager", "", "Customer manager")
	cmd.Flags().StringVar(&gc.consultationType, "type", "", "Consultation type")

	cmd.Flags().StringVar(&gc.meetingNotes, "notes", "", "Optional meeting notes")
	cmd.Flags().StringVar(&gc.instructions, "instructions", domain.DefaultAdditionalInstructions,
		"Additional guidance for the generation pipeline")

	cmd.Flags().BoolVar(&gc.useAzure, "azure", defaults.UseAzureEndpoint, "Use the Azure endpoint")
	cmd.Flags().StringVar(&gc.model, "model", string(defaults.SelectedModel), "Generation model")
	cmd.Flags().IntVar(&gc.rounds, "rounds", defaults.VerificationRounds, "Verification rounds (1-5)")
	cmd.Flags().BoolVar(&gc.graphWorkflow, "graph", defaults.UseGraphWorkflow, "Use the graph workflow")
	cmd.Flags().BoolVar(&gc.compressAudio, "compress", defaults.CompressAudio,
		"Compress audio before upload (recording only)")

	cmd.MarkFlagsMutuallyExclusive("transcript", "transcript-file", "recording")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	if gc.rounds < 1 || gc.rounds > 5 {
		return fmt.Errorf("rounds must be between 1 and 5, got %d", gc.rounds)
	}

	if gc.profileFile != "" {
		if err := gc.applyProfileFile(cmd); err != nil {
			return err
		}
	}

	gc.reports.SetProfile(domain.CompanyProfile{
		CompanyName:      gc.companyName,
		Country:          gc.country,
		ConsultationDate: gc.consultationDate,
		Experts:          gc.experts,
		CustomerManager:  gc.customerManager,
		ConsultationType: gc.consultationType,
	})
	gc.reports.SetMeetingNotes(gc.meetingNotes)
	gc.reports.SetInstructions(gc.instructions)
	gc.reports.SetOptions(domain.WorkflowOptions{
		UseAzureEndpoint:   gc.useAzure,
		SelectedModel:      domain.Model(gc.model),
		VerificationRounds: gc.rounds,
		UseGraphWorkflow:   gc.graphWorkflow,
		CompressAudio:      gc.compressAudio,
	})

	switch {
	case gc.recordingFile != "":
		gc.reports.SetMode(domain.ModeRecording)
		if err := gc.reports.LoadRecordingFile(gc.recordingFile); err != nil {
			return err
		}
	case gc.transcriptFile != "":
		gc.reports.SetMode(domain.ModeTranscript)
		if err := gc.reports.LoadTranscriptFile(gc.transcriptFile); err != nil {
			return err
		}
	default:
		gc.reports.SetMode(domain.ModeTranscript)
		gc.reports.SetTranscript(gc.transcript)
	}

	if err := gc.reports.Submit(cmd.Context()); err != nil {
		return err
	}

	return gc.printReview()
}

// applyProfileFile loads the company fields from a viper-readable file.
// Field flags set explicitly on the command line win over the file.
func (gc *GenerateCmd) applyProfileFile(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigFile(gc.profileFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading profile file: %w", err)
	}

	var pf struct {
		CompanyName      string `mapstructure:"company_name"`
		Country          string `mapstructure:"country"`
		ConsultationDate string `mapstructure:"consultation_date"`
		Experts          string `mapstructure:"experts"`
		CustomerManager  string `mapstructure:"customer_manager"`
		ConsultationType string `mapstructure:"consultation_type"`
	}
	if err := v.Unmarshal(&pf); err != nil {
		return fmt.Errorf("parsing profile file: %w", err)
	}

	fields := []struct {
		flag  string
		dst   *string
		value string
	}{
		{"company", &gc.companyName, pf.CompanyName},
		{"country", &gc.country, pf.Country},
		{"date", &gc.consultationDate, pf.ConsultationDate},
		{"experts", &gc.experts, pf.Experts},
		{"manager", &gc.customerManager, pf.CustomerManager},
		{"type", &gc.consultationType, pf.ConsultationType},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			*f.dst = f.value
		}
	}
	return nil
}

func (gc *GenerateCmd) printReview() error {
	state := gc.reports.Snapshot()
	var download, preview string
	if state.Result != nil && state.Result.ReportID != "" {
		download = gc.client.DownloadURL(state.Result.ReportID)
		preview = gc.client.HTMLURL(state.Result.ReportID)
	}
	return gc.reporter.Handle(state.Result, gc.reports.Review(), download, preview)
}
