package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snip-cli/snip/cli/util"
)

// completionGenerators write the completion script of a shell.
var completionGenerators = map[string]func(root *cobra.Command, out io.Writer) error{
	"bash": func(root *cobra.Command, out io.Writer) error {
		return root.GenBashCompletionV2(out, true)
	},
	"zsh": func(root *cobra.Command, out io.Writer) error {
		return root.GenZshCompletion(out)
	},
	"fish": func(root *cobra.Command, out io.Writer) error {
		return root.GenFishCompletion(out, true)
	},
}

// supportedShells returns the shells with a completion generator.
func supportedShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for shell := range completionGenerators {
		shells = append(shells, shell)
	}
	slices.Sort(shells)
	return shells
}

// NewCompletionCmd creates a new completion command.
func NewCompletionCmd() *cobra.Command {
	shells := supportedShells()
	return &cobra.Command{
		Use: "completion <SHELL_TYPE>",
		Short: fmt.Sprintf("Generate autocomplete for a specified shell: %s",
			strings.Join(shells, " | ")),
		ValidArgs: shells,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			util.HandleCmdErr(cmd, runCompletion(cmd, args[0]))
		},
		Example: `
# Enable auto-completion in current bash shell.

    $ . <(snip completion bash)`,
	}
}

// runCompletion writes the completion script of shell to the command output.
func runCompletion(cmd *cobra.Command, shell string) error {
	generate, ok := completionGenerators[shell]
	if !ok {
		return util.NewArgError(fmt.Sprintf("unsupported shell %q", shell))
	}
	return generate(cmd.Root(), cmd.OutOrStdout())
}

// completeTemplationDirs suggests local directories for the templation flag.
func completeTemplationDirs(cmd *cobra.Command, args []string,
	toComplete string,
) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
