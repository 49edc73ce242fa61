package steps

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/templation"
)

func TestFetchTemplationLocal(t *testing.T) {
	source := writeTemplation(t, map[string]string{"__name_.txt": "__name_"})
	createCtx := create_ctx.CreateCtx{
		Templation: source,
		WorkDir:    t.TempDir(),
	}
	templateCtx := NewTemplateContext()

	require.NoError(t, FetchTemplation{}.Run(&createCtx, &templateCtx))
	assert.Equal(t, filepath.Join(createCtx.WorkDir, "templation"), templateCtx.TemplationPath)
	assert.FileExists(t, filepath.Join(templateCtx.TemplationPath, "__name_.txt"))
}

func TestFetchTemplationNotFound(t *testing.T) {
	createCtx := create_ctx.CreateCtx{
		Templation: "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "missing")),
		WorkDir:    t.TempDir(),
	}
	templateCtx := NewTemplateContext()

	err := FetchTemplation{}.Run(&createCtx, &templateCtx)
	var notFound *templation.TemplationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, templateCtx.TemplationPath)
}

func TestFetchTemplationMissing(t *testing.T) {
	templateCtx := NewTemplateContext()
	require.EqualError(t, FetchTemplation{}.Run(&create_ctx.CreateCtx{}, &templateCtx),
		"templation is not set")
}
