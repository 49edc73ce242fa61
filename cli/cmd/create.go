package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/snip-cli/snip/cli/create"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/util"
)

const (
	defaultProjectVersion = "1.0.0"
	defaultNamespace      = "com.example"
)

var createCtx create_ctx.CreateCtx

// NewCreateCmd creates a project from a templation.
func NewCreateCmd() *cobra.Command {
	createCtx = create_ctx.CreateCtx{}
	var createCmd = &cobra.Command{
		Use:     "create <PROJECT_NAME> [flags]",
		Aliases: []string{"c", "scaffold"},
		Short:   "Create a new project from a templation",
		Run: func(cmd *cobra.Command, args []string) {
			util.HandleCmdErr(cmd, internalCreateModule(cmd, args))
		},
		Long: `Create a new project from a templation.

The templation is a directory, a zip archive or a GitHub repository with
placeholders in directory names, file names and file contents:
	__name_       project name
	__version_    project version
	__namespace_  project namespace, directories are nested by its dots
	__<key>_      custom placeholder set with -p <key>=<value>`,
		Example: `
# Create my-app from a GitHub repository.

    $ snip create my-app -t user/repo

# Create my-app in /projects from a local templation with a custom placeholder.

    $ snip create my-app -t ./templations/java -d /projects -n io.github.me -p domain=Person

# Create my-app from a zip archive.

    $ snip create my-app -t https://example.com/templation.zip --project-version 0.1.0`,
	}

	createCmd.Flags().StringVarP(&createCtx.Templation, "templation", "t", "",
		"Templation: a local directory, a file:/ URI, a zip URL or a GitHub user/repo")
	createCmd.Flags().StringVar(&createCtx.Templation, "template", "",
		"Alias for --templation")
	createCmd.Flags().StringVarP(&createCtx.Directory, "directory", "d", ".",
		"Directory to create the project in")
	createCmd.Flags().StringVar(&createCtx.Version, "project-version", defaultProjectVersion,
		"Project version, the value of __version_")
	createCmd.Flags().StringVarP(&createCtx.Namespace, "namespace", "n", defaultNamespace,
		"Project namespace, the value of __namespace_")
	createCmd.Flags().StringArrayVarP(&createCtx.Parameters, "parameter", "p", nil,
		"Custom placeholder. Usage: -p key=value")
	createCmd.Flags().StringVar(&createCtx.GitHubAPI, "github-api", "",
		"GitHub API base URL")
	createCmd.Flags().MarkHidden("template")
	createCmd.Flags().MarkHidden("github-api")

	createCmd.RegisterFlagCompletionFunc("templation", completeTemplationDirs)

	return createCmd
}

// internalCreateModule is a default create module.
func internalCreateModule(cmd *cobra.Command, args []string) error {
	if err := create.FillCtx(&createCtx, args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return create.Run(ctx, &createCtx, create.Opts{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
}
