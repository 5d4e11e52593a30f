package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/report-desk/pkg/services/session"
	"github.com/spf13/cobra"
)

type LoginCmd struct {
	username string
	password string
	timeout  time.Duration
	session  *session.Controller
}

func NewLoginCmd(sessionCtrl *session.Controller, timeout time.Duration) *cobra.Command {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	lc := &LoginCmd{session: sessionCtrl, timeout: timeout}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the report service",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.username, "username", "", "Account username")
	cmd.Flags().StringVar(&lc.password, "password", "", "Account password")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (lc *LoginCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), lc.timeout)
	defer cancel()

	if err := lc.session.Login(ctx, lc.username, lc.password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", lc.session.Username())
	return nil
}

func NewLogoutCmd(sessionCtrl *session.Controller) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sessionCtrl.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
