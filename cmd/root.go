package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/health-widget/config"
	"github.com/angeloszaimis/health-widget/pkg/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		configFile string
		endpoint   string
		interval   string
	)

	root := &cobra.Command{
		Use:           "healthwidget",
		Short:         "Display the latest health stats of the calorie tracker services",
		Long:          `Poll the health_check endpoint and render the last known receiver, storage, processing and audit health together with how stale the report is.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("endpoint") {
				cfg.Endpoint.URL = endpoint
			}
			if cmd.Flags().Changed("interval") {
				cfg.Endpoint.PollInterval = interval
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, false, cfg.Server.Environment)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "health_check endpoint URL")
	root.PersistentFlags().StringVarP(&interval, "interval", "i", "", "poll interval (e.g. 5s)")

	root.AddCommand(
		newServeCmd(a),
		newWatchCmd(a),
		newCheckCmd(a),
	)

	return root
}
