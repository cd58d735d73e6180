package cmd

import (
	"github.com/spf13/cobra"

	"termsetup/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the CLI tool `termsetup`.
var rootCmd = &cobra.Command{
	Use:   "termsetup",
	Short: "Terminal and prompt environment setup tool",

	// PersistentPreRun runs before any subcommand; initialize the logger
	// based on the debug flag here.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	// Errors are logged once with a final abort message; cobra's own
	// printing and usage dump would duplicate that.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute registers flags and subcommands and runs the CLI. The returned
// error is non-nil when any step failed; main maps it to exit status 1.
func Execute() error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] Setup aborted: %v\n", err)
		return err
	}
	return nil
}
