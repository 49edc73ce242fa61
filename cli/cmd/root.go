package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/snip-cli/snip/cli/util"
)

var (
	rootCmd *cobra.Command
	verbose bool
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snip",
		Short: "Project scaffolder",
		Long: "Creates new projects from templations: template directories and " +
			"repositories with placeholders in file names, directory names and contents",
		Example: `  $ snip create my-app -t user/repo
  $ snip describe -t user/repo
  $ snip version --short
  $ snip completion bash`,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false,
		"Verbose output")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewCreateCmd(),
		NewDescribeCmd(),
		NewCompletionCmd(),
	)
	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)
	log.SetLevel(log.InfoLevel)

	return rootCmd
}

// Execute root command.
func Execute() {
	if rootCmd == nil {
		rootCmd = NewCmdRoot()
	}
	// Errors left here come from cobra itself: unknown commands and flags.
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(util.ExitBadParameter)
	}
}
