package create

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/placeholders"
	"github.com/snip-cli/snip/cli/util"
)

func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()
	for name, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

var javaTemplation = map[string]string{
	".snipignore":                       "*.png\n",
	".snip.yml":                         "placeholders:\n  spec:\n    - name: __c_domain_\n      pattern: '[A-Z]\\w+'\n",
	".git/HEAD":                         "ref: refs/heads/main",
	"pom.xml":                           "<artifactId>__name_</artifactId><version>__version_</version>",
	"src/__namespace_/__c_domain_.java": "package __namespace_; class __c_domain_ {}",
	"logo-__name_.png":                  "__name_",
}

func newCreateCtx(t *testing.T, templation string, parameters ...string) *create_ctx.CreateCtx {
	return &create_ctx.CreateCtx{
		ProjectName: "app-name",
		Directory:   t.TempDir(),
		Version:     "1.0.0",
		Namespace:   "com.example",
		Templation:  templation,
		Parameters:  parameters,
		WorkDir:     t.TempDir(),
	}
}

func TestFillCtx(t *testing.T) {
	createCtx := create_ctx.CreateCtx{Templation: "user/repo"}
	require.NoError(t, FillCtx(&createCtx, []string{"app-name"}))
	assert.Equal(t, "app-name", createCtx.ProjectName)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, createCtx.Directory)

	createCtx = create_ctx.CreateCtx{Templation: "user/repo", Directory: "/projects"}
	require.NoError(t, FillCtx(&createCtx, []string{"app-name"}))
	assert.Equal(t, "/projects", createCtx.Directory)

	for _, tc := range []struct {
		ctx  create_ctx.CreateCtx
		args []string
	}{
		{create_ctx.CreateCtx{Templation: "user/repo"}, nil},
		{create_ctx.CreateCtx{Templation: "user/repo"}, []string{"a", "b"}},
		{create_ctx.CreateCtx{}, []string{"app-name"}},
	} {
		err := FillCtx(&tc.ctx, tc.args)
		assert.Equal(t, util.ExitBadParameter, util.ExitCode(err), "%v", err)
	}
}

func TestRunLocal(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, javaTemplation)
	createCtx := newCreateCtx(t, source, "c_domain=Person")
	var stdout bytes.Buffer

	require.NoError(t, Run(context.Background(), createCtx, Opts{Stdout: &stdout}))

	project := filepath.Join(createCtx.Directory, "app-name")
	assert.Equal(t, "<artifactId>app-name</artifactId><version>1.0.0</version>",
		readFile(t, filepath.Join(project, "pom.xml")))
	assert.Equal(t, "package com.example; class Person {}",
		readFile(t, filepath.Join(project, "src", "com", "example", "Person.java")))
	assert.Equal(t, "__name_", readFile(t, filepath.Join(project, "logo-__name_.png")))
	assert.NoDirExists(t, filepath.Join(project, ".git"))
	assert.FileExists(t, filepath.Join(project, ".snip.yml"))
	assert.Contains(t, stdout.String(), project)

	// The work directory is cleaned.
	entries, err := os.ReadDir(createCtx.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	// The source templation is untouched.
	assert.FileExists(t, filepath.Join(source, "src", "__namespace_", "__c_domain_.java"))
}

func TestRunValidationFailsBeforeWriting(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, javaTemplation)

	for name, parameters := range map[string][]string{
		"missing":  nil,
		"illegal":  {"c_domain=person"},
		"reserved": {"c_domain=Person", "name=other"},
	} {
		t.Run(name, func(t *testing.T) {
			createCtx := newCreateCtx(t, source, parameters...)
			err := Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}})
			require.Error(t, err)
			assert.Equal(t, util.ExitBadParameter, util.ExitCode(err))

			var validationErr *placeholders.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.NoDirExists(t, filepath.Join(createCtx.Directory, "app-name"))
		})
	}
}

func TestRunRollback(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"__name_.txt":  "collides",
		"app-name.txt": "existing",
	})
	createCtx := newCreateCtx(t, source)

	err := Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}})
	require.ErrorContains(t, err, "already exists")
	assert.Equal(t, util.ExitFailure, util.ExitCode(err))
	assert.NoDirExists(t, filepath.Join(createCtx.Directory, "app-name"))
}

func TestRunExistingProjectIsKept(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "__name_"})
	createCtx := newCreateCtx(t, source)
	existing := filepath.Join(createCtx.Directory, "app-name", "keep.txt")
	writeTree(t, createCtx.Directory, map[string]string{"app-name/keep.txt": "mine"})

	err := Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}})
	require.ErrorContains(t, err, "already exists")
	assert.Equal(t, util.ExitBadParameter, util.ExitCode(err))
	assert.Equal(t, "mine", readFile(t, existing))
}

func TestRunTemplationNotFound(t *testing.T) {
	createCtx := newCreateCtx(t, "file://"+filepath.ToSlash(filepath.Join(t.TempDir(), "nope")))
	err := Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}})
	require.ErrorContains(t, err, "templation not found")
	assert.Equal(t, util.ExitBadParameter, util.ExitCode(err))
}

func TestRunInvalidConfiguration(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{".snip.yml": "placeholders:\n  spec:\n    - name: x\n"})
	err := Run(context.Background(), newCreateCtx(t, source), Opts{Stdout: &bytes.Buffer{}})
	require.ErrorContains(t, err, "is not a placeholder")
	assert.Equal(t, util.ExitBadParameter, util.ExitCode(err))
}

func TestRunGitHub(t *testing.T) {
	var archive bytes.Buffer
	writer := zip.NewWriter(&archive)
	for name, content := range map[string]string{
		"user-repo-abc/README.md":         "# __name_ __version_",
		"user-repo-abc/.git/config":       "",
		"user-repo-abc/src/__name_/a.txt": "__namespace_",
	} {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/user/repo/zipball" {
			http.NotFound(w, r)
			return
		}
		w.Write(archive.Bytes())
	}))
	defer server.Close()

	createCtx := newCreateCtx(t, "user/repo")
	createCtx.GitHubAPI = server.URL
	createCtx.Client = server.Client()

	require.NoError(t, Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}}))
	project := filepath.Join(createCtx.Directory, "app-name")
	assert.Equal(t, "# app-name 1.0.0", readFile(t, filepath.Join(project, "README.md")))
	assert.Equal(t, "com.example", readFile(t, filepath.Join(project, "src", "app-name", "a.txt")))
	assert.NoDirExists(t, filepath.Join(project, ".git"))

	createCtx = newCreateCtx(t, "user/missing")
	createCtx.GitHubAPI = server.URL
	createCtx.Client = server.Client()
	err := Run(context.Background(), createCtx, Opts{Stdout: &bytes.Buffer{}})
	assert.Equal(t, util.ExitBadParameter, util.ExitCode(err))
}

func TestRunPostScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell commands")
	}
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		".snip.yml": "post:\n  script:\n    linux: ['false', 'touch __name_.done']\n" +
			"    windows: ['cmd /c exit 1']\n",
	})
	createCtx := newCreateCtx(t, source)

	require.NoError(t, Run(context.Background(), createCtx, Opts{
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}))
	// Commands run after placeholders substitution, their text is not substituted.
	assert.FileExists(t, filepath.Join(createCtx.Directory, "app-name", "__name_.done"))
}

func TestRunInvalidContext(t *testing.T) {
	err := Run(context.Background(), &create_ctx.CreateCtx{}, Opts{})
	assert.ErrorContains(t, err, "Create context check failed")
}
