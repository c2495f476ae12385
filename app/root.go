// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var (
	configPath string // Path to the configuration directory

	rootCmd = &cobra.Command{
		Use:   "snapcourse",
		Short: "Snap Course serves course pages of topics and weekly sections",
		Long: `Snap Course serves course pages split into topic or weekly sections,
with editing controls for teachers and section navigation for students.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/",
		"directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
