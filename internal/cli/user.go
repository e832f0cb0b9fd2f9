package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

func newUserCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCommand(st))
	cmd.AddCommand(newUserSetRoleCommand(st))
	return cmd
}

func newUserCreateCommand(st *rootState) *cobra.Command {
	var (
		email     string
		password  string
		role      string
		superuser bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user that can sign in",
		Example: `  assetdesk user create --email editor@example.com --password s3cret --role editor
  assetdesk user create --email root@example.com --password s3cret --superuser`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openAuthSession(st)
			if err != nil {
				return err
			}
			defer sess.Close()
			user, err := sess.auth.CreateUser(cmd.Context(), email, password, role, superuser)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s) role=%q superuser=%t\n", user.ID, user.Email, user.Role, user.IsSuperuser)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&role, "role", "viewer", "role from the permission policy")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "grant every permission")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserSetRoleCommand(st *rootState) *cobra.Command {
	var (
		email     string
		role      string
		superuser bool
	)
	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change a user's role",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openAuthSession(st)
			if err != nil {
				return err
			}
			defer sess.Close()
			dbc := dbctx.Context{Ctx: cmd.Context()}
			user, err := sess.users.GetByEmail(dbc, email)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user with email %q", email)
			}
			if err := sess.users.UpdateRole(dbc, user.ID, role, superuser); err != nil {
				return fmt.Errorf("update role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s role=%q superuser=%t\n", user.Email, role, superuser)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&role, "role", "", "role from the permission policy")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "grant every permission")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
