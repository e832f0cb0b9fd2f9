package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/assetdesk-backend/internal/app"
)

func newServeCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until SIGINT or SIGTERM, then drain in-flight
requests for up to http.shutdown_timeout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.v.BindPFlag("http.addr", cmd.Flags().Lookup("addr")); err != nil {
				return err
			}
			cfg, err := st.config()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	return cmd
}

func runServer(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Log.Info("Starting assetdesk", "addr", cfg.HTTP.Addr, "storage_mode", cfg.Storage.Mode, "db_driver", cfg.DB.Driver)
	return a.Run(ctx)
}
