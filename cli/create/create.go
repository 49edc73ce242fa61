package create

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/create/internal/steps"
	"github.com/snip-cli/snip/cli/templation"
	"github.com/snip-cli/snip/cli/util"
	"github.com/snip-cli/snip/cli/version"
)

// FillCtx fills create context.
func FillCtx(createCtx *create_ctx.CreateCtx, args []string) error {
	if len(args) == 0 {
		return util.NewArgError("missing project name argument. " +
			"Try `snip create --help` for more information")
	}
	if len(args) > 1 {
		return util.NewArgError(fmt.Sprintf("unexpected arguments: %v", args[1:]))
	}
	createCtx.ProjectName = args[0]

	if createCtx.Templation == "" {
		return util.NewArgError("missing templation. Use -t to set it")
	}
	if createCtx.Directory == "" {
		workingDir, err := os.Getwd()
		if err != nil {
			return err
		}
		createCtx.Directory = workingDir
	}
	return nil
}

// rollbackOnErr removes the project directory created by this run.
func rollbackOnErr(templateCtx *steps.TemplateCtx) {
	if templateCtx.ProjectPath != "" {
		log.Debugf("Removing %s", templateCtx.ProjectPath)
		if err := os.RemoveAll(templateCtx.ProjectPath); err != nil {
			log.Errorf("Can not delete %s: %s", templateCtx.ProjectPath, err)
		}
	}
	templateCtx.ProjectPath = ""
}

// Opts are create run settings not coming from the command line.
type Opts struct {
	// Stdout receives the report and the post script output.
	Stdout io.Writer
	// Stderr receives the post script errors.
	Stderr io.Writer
}

// Run creates a project from a templation.
func Run(ctx context.Context, createCtx *create_ctx.CreateCtx, opts Opts) error {
	if err := checkCtx(createCtx); err != nil {
		return util.InternalError("Create context check failed: %s", version.GetVersion, err)
	}

	// Every run gets its own work directory, removed whatever the outcome.
	runCtx := *createCtx
	workDir, err := os.MkdirTemp(createCtx.WorkDir, "snip-")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)
	runCtx.WorkDir = workDir

	stepsChain := []steps.Step{
		steps.FetchTemplation{Context: ctx},
		steps.LoadConfiguration{},
		steps.ResolvePlaceholders{},
		steps.CreateProjectDirectory{},
		steps.RemoveGitDirectory{},
		steps.InstantiateTemplation{},
		steps.RunPostScript{Context: ctx, Stdout: opts.Stdout, Stderr: opts.Stderr},
		steps.PrintResult{Writer: opts.Stdout},
	}

	templateCtx := steps.NewTemplateContext()
	for _, step := range stepsChain {
		if err := step.Run(&runCtx, &templateCtx); err != nil {
			rollbackOnErr(&templateCtx)
			return templation.WrapUserError(err)
		}
	}

	return nil
}

// checkCtx checks create context for validity.
func checkCtx(ctx *create_ctx.CreateCtx) error {
	if ctx.ProjectName == "" {
		return fmt.Errorf("project name is missing")
	}
	if ctx.Templation == "" {
		return fmt.Errorf("templation is missing")
	}
	return nil
}
