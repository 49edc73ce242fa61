package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/snip-cli/snip/cli/describe"
	"github.com/snip-cli/snip/cli/util"
)

var describeOpts describe.DescribeOpts

// NewDescribeCmd creates a command printing the placeholders of a templation.
func NewDescribeCmd() *cobra.Command {
	describeOpts = describe.DescribeOpts{}
	var describeCmd = &cobra.Command{
		Use:     "describe [flags]",
		Aliases: []string{"inspect"},
		Short:   "Show the placeholders and the post script of a templation",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.HandleCmdErr(cmd, internalDescribeModule(cmd))
		},
		Example: `
# Show the placeholders of a GitHub templation.

    $ snip describe -t user/repo

# Show the placeholders of a local templation in a table with borders.

    $ snip describe -t ./templations/java --pretty`,
	}

	describeCmd.Flags().StringVarP(&describeOpts.Templation, "templation", "t", "",
		"Templation: a local directory, a file:/ URI, a zip URL or a GitHub user/repo")
	describeCmd.Flags().BoolVar(&describeOpts.Pretty, "pretty", false,
		"Draw table borders")
	describeCmd.Flags().StringVar(&describeOpts.GitHubAPI, "github-api", "",
		"GitHub API base URL")
	describeCmd.Flags().MarkHidden("github-api")

	describeCmd.RegisterFlagCompletionFunc("templation", completeTemplationDirs)

	return describeCmd
}

// internalDescribeModule is a default describe module.
func internalDescribeModule(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	describeOpts.Writer = cmd.OutOrStdout()
	return describe.Describe(ctx, describeOpts)
}
