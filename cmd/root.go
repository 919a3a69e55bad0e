/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"

	"github.com/fulmenhq/appxpack/pkg/buildinfo"
	"github.com/fulmenhq/appxpack/pkg/exitcode"
	"github.com/fulmenhq/appxpack/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees
// without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appxpack",
		Short: "Content-types manifest builder for AppX/OPC packages",
		Long: `Appxpack builds the [Content_Types].xml manifest that declares a content
type for every part of an AppX/OPC package: one Default rule per file
extension, with per-part Override rules for files that diverge.

Examples:
   appxpack build ./payload            # Emit [Content_Types].xml for a directory
   appxpack build ./payload --append old.xml   # Re-signing flow: append to an existing manifest
   appxpack inspect "[Content_Types].xml"      # Summarize and prettify a manifest`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("appxpack {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly
// in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(buildCmd)
	cmd.AddCommand(inspectCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags.
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
	})
}
