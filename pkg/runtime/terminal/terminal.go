package terminal

import (
	"io"
	"os"
	"time"

	"github.com/de-tools/report-desk/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/de-tools/report-desk/pkg/services/session"
	"github.com/de-tools/report-desk/pkg/store/reportapi"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	session  *session.Controller
	reports  *report.Controller
	client   *reportapi.Client
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Session      *session.Controller
	Reports      *report.Controller
	Client       *reportapi.Client
	LoginTimeout time.Duration
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		session:  opts.Session,
		reports:  opts.Reports,
		client:   opts.Client,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd(opts.LoginTimeout)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(loginTimeout time.Duration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-desk",
		Short: "Consultation report generation client",
	}

	cmd.AddCommand(commands.NewLoginCmd(cli.session, loginTimeout))
	cmd.AddCommand(commands.NewLogoutCmd(cli.session))
	cmd.AddCommand(commands.NewGenerateCmd(cli.reports, cli.client, cli.reporter))
	cmd.AddCommand(commands.NewReviewCmd(cli.session, cli.client, cli.reporter))
	cmd.AddCommand(commands.NewClearCmd(cli.reports))

	return cmd
}
