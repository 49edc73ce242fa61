package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
)

// RemoveGitDirectory represents git metadata removal step.
type RemoveGitDirectory struct{}

// Run removes the `.git` directory copied with the templation, if any.
func (RemoveGitDirectory) Run(createCtx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	gitDir := filepath.Join(templateCtx.ProjectPath, ".git")
	log.Debugf("Removing %s", gitDir)
	if err := os.RemoveAll(gitDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", gitDir, err)
	}
	return nil
}
