package steps

import (
	"path/filepath"

	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/processor"
)

// InstantiateTemplation represents placeholders substitution step.
type InstantiateTemplation struct{}

// Run renames directories and files and rewrites file contents of the project.
func (InstantiateTemplation) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *TemplateCtx,
) error {
	var opts []processor.ContextOpt
	if createCtx.WorkDir != "" {
		opts = append(opts, processor.WithStagingDir(filepath.Join(createCtx.WorkDir, "staging")))
	}
	ctx, err := processor.NewContext(templateCtx.Placeholders, templateCtx.TemplationPath,
		templateCtx.ProjectPath, opts...)
	if err != nil {
		return err
	}
	return processor.Instantiate(ctx)
}
