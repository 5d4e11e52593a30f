package commands

import (
	"fmt"

	"github.com/de-tools/report-desk/pkg/services/report"
	"github.com/spf13/cobra"
)

func NewClearCmd(reports *report.Controller) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the draft, options and review state to their defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports.ClearAll()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared")
			return nil
		},
	}
}
