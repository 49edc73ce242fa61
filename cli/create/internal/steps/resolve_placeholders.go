package steps

import (
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/placeholders"
)

// ResolvePlaceholders represents placeholders resolution step.
type ResolvePlaceholders struct{}

// Run resolves and validates placeholders against the templation rules.
func (ResolvePlaceholders) Run(createCtx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	opts := placeholders.Options{
		Name:       createCtx.ProjectName,
		Version:    createCtx.Version,
		Namespace:  createCtx.Namespace,
		Parameters: createCtx.Parameters,
	}
	if templateCtx.Config != nil {
		opts.Rules = templateCtx.Config.RuleSet()
	}

	resolved, err := placeholders.Resolve(opts)
	if err != nil {
		return err
	}
	templateCtx.Placeholders = resolved
	return nil
}
