package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/report-desk/pkg/runtime/terminal"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/services/session"
	"github.com/de-tools/report-desk/pkg/store/credential"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load(os.Getenv("REPORT_DESK_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	credPath := cfg.CredentialFile
	if credPath == "" {
		credPath, err = credential.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	client := reportapi.NewClient(reportapi.Options{BaseURL: cfg.APIURL})
	sessionCtrl := session.NewController(ctx, client, credential.NewFileStore(credPath))
	client.SetTokens(sessionCtrl)

	reportsCtrl := report.NewController(report.ControllerOptions{
		API:             client,
		Session:         sessionCtrl,
		GenerateTimeout: cfg.GenerateTimeout,
	})

	cli := terminal.NewCLI(terminal.Options{
		Session:      sessionCtrl,
		Reports:      reportsCtrl,
		Client:       client,
		LoginTimeout: cfg.LoginTimeout,
		Output:       os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
