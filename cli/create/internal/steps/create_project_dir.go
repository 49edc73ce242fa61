package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/otiai10/copy"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/util"
)

const defaultDirPermissions = os.FileMode(0755)

// CreateProjectDirectory represents project directory creation step.
type CreateProjectDirectory struct{}

// Run copies the fetched templation to the project directory.
func (CreateProjectDirectory) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *TemplateCtx,
) error {
	if createCtx.ProjectName == "" {
		return util.NewArgError("project name cannot be empty")
	}

	projectPath, err := filepath.Abs(filepath.Join(createCtx.Directory, createCtx.ProjectName))
	if err != nil {
		return err
	}
	if _, err := os.Lstat(projectPath); err == nil {
		return util.NewArgError(fmt.Sprintf("project %s already exists: %s",
			createCtx.ProjectName, projectPath))
	}

	if err := os.MkdirAll(filepath.Dir(projectPath), defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(projectPath), err)
	}
	templateCtx.ProjectPath = projectPath
	log.Infof("Creating project in %s", projectPath)
	if err := copy.Copy(templateCtx.TemplationPath, projectPath); err != nil {
		return fmt.Errorf("templation copying failed: %w", err)
	}
	if err := os.Chmod(projectPath, defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %w", projectPath, err)
	}
	return nil
}
