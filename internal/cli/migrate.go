package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/assetdesk-backend/internal/app"
)

func newMigrateCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := st.config()
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()
			dbSvc, err := app.OpenDB(log, cfg.DB, true)
			if err != nil {
				return err
			}
			defer dbSvc.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", dbSvc.Driver())
			return nil
		},
	}
}
