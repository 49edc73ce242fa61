package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/placeholders"
)

func TestInstantiateTemplation(t *testing.T) {
	source := writeTemplation(t, map[string]string{
		".snipignore":               "docs/\n",
		"src/__namespace_/App.java": "package __namespace_;",
		"__name_-__version_.txt":    "__name_ __version_",
		"docs/__name_.md":           "__name_",
	})
	project := filepath.Join(t.TempDir(), "app-name")
	require.NoError(t, copy.Copy(source, project))

	ph, err := placeholders.Resolve(placeholders.Options{
		Name: "app-name", Version: "1.0.0", Namespace: "com.example",
	})
	require.NoError(t, err)

	workDir := t.TempDir()
	createCtx := create_ctx.CreateCtx{WorkDir: workDir}
	templateCtx := TemplateCtx{
		TemplationPath: source,
		Placeholders:   ph,
		ProjectPath:    project,
	}
	require.NoError(t, InstantiateTemplation{}.Run(&createCtx, &templateCtx))

	assert.Equal(t, "package com.example;",
		readFile(t, filepath.Join(project, "src", "com", "example", "App.java")))
	assert.Equal(t, "app-name 1.0.0", readFile(t, filepath.Join(project, "app-name-1.0.0.txt")))
	assert.Equal(t, "__name_", readFile(t, filepath.Join(project, "docs", "__name_.md")))

	// Staging happens in the work directory and leaves nothing behind.
	entries, err := os.ReadDir(filepath.Join(workDir, "staging"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInstantiateTemplationWithoutPlaceholders(t *testing.T) {
	templateCtx := TemplateCtx{ProjectPath: t.TempDir()}
	assert.Error(t, InstantiateTemplation{}.Run(&create_ctx.CreateCtx{}, &templateCtx))
}
