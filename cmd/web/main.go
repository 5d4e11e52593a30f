package main

import (
	"fmt"
	"os"

	"github.com/de-tools/report-desk/pkg/handlers/console"
	"github.com/de-tools/report-desk/pkg/server"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/services/session"
	"github.com/de-tools/report-desk/pkg/store/credential"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the local console server for Report Desk",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the report-desk config file (defaults to env-only configuration)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	credPath := cfg.CredentialFile
	if credPath == "" {
		credPath, err = credential.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve credential path: %w", err)
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

	logger.Info().Str("api_url", cfg.APIURL).Msg("report service endpoint configured")
	if sessionCtrl.Authenticated() {
		logger.Info().Str("username", sessionCtrl.Username()).Msg("restored persisted session")
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: cfg.ServerAddr,
		Dependencies: server.Dependencies{
			Console: console.NewHandler(sessionCtrl, reportsCtrl, client),
		},
	})

	return webAPI.Start()
}
