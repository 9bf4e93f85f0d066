package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mdreplace/cmd/mdreplace/commands"
	"github.com/walteh/mdreplace/cmd/mdreplace/opts"
	"github.com/walteh/mdreplace/pkg/config"
	"github.com/walteh/mdreplace/pkg/log"
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "mdreplace",
		Short: "Find and replace text in markdown trees and files",
		Long: `mdreplace applies a list of find and replace rules to the text of
documents. Serialized syntax trees (.json, .yaml, .yml) are rewritten node by
node, so matches can become links, emphasis or any other node. Other files are
treated as a single run of text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if rootOpts.Debug {
				level = zerolog.DebugLevel
				zerolog.SetGlobalLevel(level)
			}
			if rootOpts.NoColor {
				color.NoColor = true
				pterm.DisableColor()
			}
			rootOpts.Logger = log.New(cmd.OutOrStdout(), level)
			cmd.SetContext(log.NewContext(cmd.Context(), rootOpts.Logger))
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, rootOpts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&rootOpts.NoColor, "no-color", false, "disable colored output")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
