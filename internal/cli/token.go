package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

func newTokenCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API access tokens",
	}
	cmd.AddCommand(newTokenIssueCommand(st))
	return cmd
}

func newTokenIssueCommand(st *rootState) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a bearer token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openAuthSession(st)
			if err != nil {
				return err
			}
			defer sess.Close()
			user, err := sess.users.GetByEmail(dbctx.Context{Ctx: cmd.Context()}, email)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user with email %q", email)
			}
			tok, expiresAt, err := sess.tokens.Issue(user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
