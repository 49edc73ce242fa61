package steps

import (
	"io"
	"os"

	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/util"
)

// PrintResult represents the final report step.
type PrintResult struct {
	// Writer is used to write the report. Stdout is used if nil.
	Writer io.Writer
}

// Run reports the created project location.
func (step PrintResult) Run(createCtx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	writer := step.Writer
	if writer == nil {
		writer = os.Stdout
	}
	util.ReportSuccess(writer, "New app created at: %s", util.Bold(templateCtx.ProjectPath))
	return nil
}
