package processor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/snip-cli/snip/cli/placeholders"
)

const dirPermissions = os.FileMode(0755)

type directoryNameProcessor struct{}

// depth returns the number of separators in a slash-separated path.
func depth(path string) int {
	return strings.Count(path, "/")
}

// collectDirectories returns relative paths of directories to rename, deepest
// first. Renaming an ancestor first would invalidate the collected paths of
// its descendants.
func collectDirectories(ctx *Context) ([]string, error) {
	var folders []string
	err := filepath.WalkDir(ctx.Target(),
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() || path == ctx.Target() {
				return nil
			}
			rel := ctx.relative(path)
			if !ctx.Ignore().Folder(rel, true) {
				// Descendants contain the same ignored substring.
				return fs.SkipDir
			}
			if !ctx.Ignore().Wildcard(rel) {
				// Suffix rules do not match the descendants.
				return nil
			}
			if len(ctx.Placeholders().TokensIn(rel)) > 0 {
				log.Debugf("Folder to process %s", rel)
				folders = append(folders, rel)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(folders, func(i, j int) bool {
		return depth(folders[i]) > depth(folders[j])
	})
	return folders, nil
}

// lastToken returns the active token occurring rightmost in the path.
func lastToken(ph *placeholders.Placeholders, path string) string {
	latest, latestIdx := "", -1
	for _, token := range ph.TokensIn(path) {
		idx := strings.LastIndex(path, token)
		if idx > latestIdx || (idx == latestIdx && len(token) > len(latest)) {
			latest, latestIdx = token, idx
		}
	}
	return latest
}

// relocate moves the directory src to dst, both relative to the target root.
// An existing dst is merged with src.
func relocate(ctx *Context, src, dst string) error {
	dst, inside := cleanRelative(dst)
	if dst == src {
		return nil
	}
	if !inside {
		return fmt.Errorf("cannot move %s: %s is outside of %s", src, dst, ctx.Target())
	}

	srcPath := filepath.Join(ctx.Target(), filepath.FromSlash(src))
	dstPath := filepath.Join(ctx.Target(), filepath.FromSlash(dst))
	if !exists(dstPath) {
		log.Debugf("New directory hierarchy to create %s", dst)
		if err := move(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
		}
		return nil
	}

	log.Debugf("Directory %s already exists, merging %s into it", dst, src)
	if err := mergeDir(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to merge %s into %s: %w", src, dst, err)
	}
	return nil
}

// processNamespace replaces the namespace token with a directory tree built
// from the namespace segments: `my.namespace` becomes `my/namespace`.
func processNamespace(ctx *Context, folder string) error {
	dirTree := strings.ReplaceAll(ctx.Placeholders().Namespace(), ".", "/")
	log.Debugf("Namespace directory tree %s", dirTree)
	return relocate(ctx, folder,
		strings.ReplaceAll(folder, placeholders.NamespaceToken, dirTree))
}

// processFolder renames the directory using the rightmost token of its path.
// Other tokens of the same path are left to the processing of the
// directories they belong to.
func processFolder(ctx *Context, folder string) error {
	latest := lastToken(ctx.Placeholders(), folder)
	log.Debugf("Latest placeholder within %s: %s", folder, latest)
	value, _ := ctx.Placeholders().Value(latest)
	return relocate(ctx, folder, strings.ReplaceAll(folder, latest, value))
}

// Process renames directories with placeholder tokens in their paths.
func (directoryNameProcessor) Process(ctx *Context) error {
	folders, err := collectDirectories(ctx)
	if err != nil {
		return err
	}

	for _, folder := range folders {
		// The rightmost token decides, so `src/__namespace_/__name_` gets its
		// __name_ renamed first and the namespace is expanded with its own directory.
		if lastToken(ctx.Placeholders(), folder) == placeholders.NamespaceToken {
			err = processNamespace(ctx, folder)
		} else {
			err = processFolder(ctx, folder)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
