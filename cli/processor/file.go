package processor

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

type fileNameProcessor struct{}

// collectFiles returns relative paths of included regular files.
func collectFiles(ctx *Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(ctx.Target(),
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			rel := ctx.relative(path)
			if ctx.Ignore().Included(rel, false) {
				files = append(files, rel)
			}
			return nil
		})
	return files, err
}

// Process renames files with placeholder tokens in their paths. Every token
// of the path is replaced, unlike directory renaming.
func (fileNameProcessor) Process(ctx *Context) error {
	files, err := collectFiles(ctx)
	if err != nil {
		return err
	}

	ph := ctx.Placeholders()
	for _, file := range files {
		tokens := ph.TokensIn(file)
		if len(tokens) == 0 {
			continue
		}
		log.Debugf("File to process %s", file)

		renamed := file
		for _, token := range tokens {
			value, _ := ph.Value(token)
			renamed = strings.ReplaceAll(renamed, token, value)
		}
		renamed, inside := cleanRelative(renamed)
		if renamed == file {
			continue
		}
		if !inside {
			return fmt.Errorf("cannot rename %s: %s is outside of %s", file, renamed,
				ctx.Target())
		}

		src := filepath.Join(ctx.Target(), filepath.FromSlash(file))
		dst := filepath.Join(ctx.Target(), filepath.FromSlash(renamed))
		if exists(dst) {
			return fmt.Errorf("cannot rename %s: %s already exists", file, renamed)
		}
		log.Debugf("File %s will be renamed to %s", file, renamed)
		if err := move(src, dst); err != nil {
			return fmt.Errorf("failed to rename %s to %s: %w", file, renamed, err)
		}
	}
	return nil
}
