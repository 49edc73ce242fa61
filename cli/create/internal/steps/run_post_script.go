package steps

import (
	"context"
	"io"

	"github.com/apex/log"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/templation"
	"github.com/snip-cli/snip/cli/util"
)

// RunPostScript represents post-generation script step.
type RunPostScript struct {
	// Context bounds the commands execution.
	Context context.Context
	// Stdout and Stderr receive the commands output. Process streams are
	// used if nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the post script of the current platform. Failed commands are
// reported and do not fail the step.
func (step RunPostScript) Run(createCtx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	if templateCtx.Config == nil {
		log.Debug("No configuration. Skipping post script step.")
		return nil
	}

	executor := templation.NewScriptExecutor(templateCtx.Config.Post.Script,
		templateCtx.ProjectPath)
	if len(executor.Commands) == 0 {
		log.Debug("No post script for this platform.")
		return nil
	}
	if step.Stdout != nil {
		executor.Stdout = step.Stdout
	}
	if step.Stderr != nil {
		executor.Stderr = step.Stderr
	}
	ctx := step.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log.Infof("Executing post script in %s", templateCtx.ProjectPath)
	if failed := executor.Execute(ctx); failed > 0 {
		util.ReportFailure(executor.Stderr, "%d of %d post script commands failed",
			failed, len(executor.Commands))
	}
	return nil
}
