package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yungbote/assetdesk-backend/internal/app"
)

type rootState struct {
	configFile string
	v          *viper.Viper
}

// config re-reads viper so flags bound by subcommands are honoured.
func (s *rootState) config() (app.Config, error) {
	if s.v == nil {
		return app.Config{}, fmt.Errorf("configuration not loaded")
	}
	return app.ConfigFromViper(s.v)
}

func NewRootCommand() *cobra.Command {
	st := &rootState{}
	root := &cobra.Command{
		Use:           "assetdesk",
		Short:         "Asset Desk media catalogue backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: "Asset Desk serves the media asset catalogue: listings, bulk import,\n" +
			"status updates, content images and file uploads.\n\n" +
			"Configuration comes from defaults, an optional file (--config or\n" +
			"$" + app.EnvConfigFile + ") and " + app.EnvPrefix + "_* environment variables.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.NewViper(st.configFile)
			if err != nil {
				return err
			}
			st.v = v
			return nil
		},
	}
	root.PersistentFlags().StringVar(&st.configFile, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(newServeCommand(st))
	root.AddCommand(newMigrateCommand(st))
	root.AddCommand(newUserCommand(st))
	root.AddCommand(newTokenCommand(st))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
