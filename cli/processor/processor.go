// Package processor instantiates a copied templation tree: it renames
// directories and files named after placeholders and rewrites file contents.
package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/apex/log"
	"github.com/otiai10/copy"
)

// Processor is a single instantiation phase.
type Processor interface {
	// Process applies the phase to the context target tree.
	Process(ctx *Context) error
}

// ForDirectories returns the directory names processor.
func ForDirectories() Processor {
	return directoryNameProcessor{}
}

// ForFiles returns the file names processor.
func ForFiles() Processor {
	return fileNameProcessor{}
}

// ForContent returns the file content processor.
func ForContent() Processor {
	return fileContentProcessor{}
}

// Instantiate runs directory, file name and content processors in this order.
// Each phase walks the tree left by the previous one. Already applied changes
// are not rolled back on error.
func Instantiate(ctx *Context) error {
	phases := []struct {
		name      string
		processor Processor
	}{
		{"directory names", ForDirectories()},
		{"file names", ForFiles()},
		{"file contents", ForContent()},
	}
	for _, phase := range phases {
		log.Debugf("Processing %s in %s", phase.name, ctx.Target())
		if err := phase.processor.Process(ctx); err != nil {
			return fmt.Errorf("failed to process %s: %w", phase.name, err)
		}
	}
	return nil
}

// cleanRelative cleans a slash-separated relative path and reports whether it
// stays inside the root it is relative to.
func cleanRelative(rel string) (string, bool) {
	rel = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	inside := rel != ".." && !strings.HasPrefix(rel, "../") && !filepath.IsAbs(rel)
	return rel, inside
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// move moves src to dst creating missing parent directories of dst. Moves
// across devices are performed by copying.
func move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), dirPermissions); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	log.Debugf("Cross-device move of %s to %s, copying", src, dst)
	if err = copy.Copy(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// mergeDir moves children of src into the existing directory dst and removes
// src. Existing files are never overwritten: directories of the same name are
// merged recursively, a file collision is an error.
func mergeDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if !exists(to) {
			log.Debugf("Moving %s to %s", from, to)
			if err := move(from, to); err != nil {
				return err
			}
			continue
		}
		toInfo, err := os.Stat(to)
		if err != nil {
			return err
		}
		if !entry.IsDir() || !toInfo.IsDir() {
			return fmt.Errorf("cannot move %s: %s already exists", from, to)
		}
		if err := mergeDir(from, to); err != nil {
			return err
		}
	}
	log.Debugf("Removing merged directory %s", src)
	return os.Remove(src)
}
