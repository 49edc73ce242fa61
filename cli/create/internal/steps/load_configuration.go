package steps

import (
	"github.com/apex/log"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/templation"
)

// LoadConfiguration represents templation configuration load step.
type LoadConfiguration struct{}

// Run loads the templation configuration. Missing configuration is not an error.
func (LoadConfiguration) Run(createCtx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	config, err := templation.LoadConfig(templateCtx.TemplationPath)
	if err != nil {
		return err
	}
	if config == nil {
		log.Debug("There is no configuration in templation.")
	}
	templateCtx.Config = config
	return nil
}
