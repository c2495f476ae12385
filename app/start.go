package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/daemon"
	"github.com/mkeenan750/snapcourse/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	startCmd.Flags().BoolVar(&fastShutDown, "fast-shutdown", false,
		"Stop without waiting for load balancers to drain")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg          config.Config
	devMode      bool
	browseStatic bool
	fastShutDown bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the Snap Course web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := daemon.New(ctx, &cfg, fastShutDown)
			if err != nil {
				return err
			}

			return d.Run(ctx)
		},
	}
)
