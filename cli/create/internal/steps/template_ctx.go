package steps

import (
	"github.com/snip-cli/snip/cli/placeholders"
	"github.com/snip-cli/snip/cli/templation"
)

// TemplateCtx contains the state collected while instantiating a templation.
type TemplateCtx struct {
	// TemplationPath is the root of the fetched templation.
	TemplationPath string
	// Config is the templation configuration, nil if there is none.
	Config *templation.Config
	// Placeholders are the resolved placeholders.
	Placeholders *placeholders.Placeholders
	// ProjectPath is the project directory. It is set once the directory is
	// created by this run and removed on failure.
	ProjectPath string
}

// NewTemplateContext creates new templation context.
func NewTemplateContext() TemplateCtx {
	return TemplateCtx{}
}
