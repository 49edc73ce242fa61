package processor

import (
	"fmt"
	"path/filepath"

	"github.com/snip-cli/snip/cli/ignore"
	"github.com/snip-cli/snip/cli/placeholders"
)

// Context is an immutable bundle shared by all processors of one run.
type Context struct {
	placeholders *placeholders.Placeholders
	ignore       ignore.Matcher
	template     string
	target       string
	stagingDir   string
}

// ContextOpt customizes a processing context.
type ContextOpt func(*Context)

// WithMatcher replaces the ignore list loaded from the templation.
func WithMatcher(matcher ignore.Matcher) ContextOpt {
	return func(ctx *Context) {
		ctx.ignore = matcher
	}
}

// WithStagingDir sets a directory for temporary copies of rewritten files.
// A temporary directory is created for each content processing otherwise.
func WithStagingDir(dir string) ContextOpt {
	return func(ctx *Context) {
		ctx.stagingDir = dir
	}
}

// NewContext creates a processing context. The ignore list is loaded from the
// templation root.
func NewContext(ph *placeholders.Placeholders, template, target string,
	opts ...ContextOpt,
) (*Context, error) {
	if ph == nil {
		return nil, fmt.Errorf("placeholders are not set")
	}
	if target == "" {
		return nil, fmt.Errorf("target directory is not set")
	}

	ctx := &Context{
		placeholders: ph,
		template:     template,
		target:       target,
	}
	for _, opt := range opts {
		opt(ctx)
	}

	if ctx.ignore == nil {
		spec, err := ignore.Load(filepath.Join(template, ignore.FileName))
		if err != nil {
			return nil, err
		}
		ctx.ignore = spec
	}
	return ctx, nil
}

// Placeholders returns active placeholders.
func (ctx *Context) Placeholders() *placeholders.Placeholders {
	return ctx.placeholders
}

// Ignore returns the ignore matcher.
func (ctx *Context) Ignore() ignore.Matcher {
	return ctx.ignore
}

// Template returns the templation root.
func (ctx *Context) Template() string {
	return ctx.template
}

// Target returns the root of the instantiated tree.
func (ctx *Context) Target() string {
	return ctx.target
}

// StagingDir returns the staging directory, empty if not set.
func (ctx *Context) StagingDir() string {
	return ctx.stagingDir
}

// relative returns slash-separated path relative to the target root.
func (ctx *Context) relative(path string) string {
	rel, err := filepath.Rel(ctx.target, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
