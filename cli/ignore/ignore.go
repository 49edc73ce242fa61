// Package ignore parses templation ignore lists and answers whether a path
// takes part in instantiation.
//
// Matching is deliberately simple: rules are substrings (or suffixes for
// wildcards) of the slash-separated path string, not path segments or globs.
// A rule `to-ignore` also excludes `not-to-ignored`.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apex/log"
)

const (
	// FileName is a name of the ignore list inside a templation.
	FileName = ".snipignore"
	// ConfigFileName is a name of the templation configuration file.
	ConfigFileName = ".snip.yml"
)

var (
	alwaysIgnoreFolders = []string{".git/"}
	alwaysIgnoreFiles   = []string{FileName, ConfigFileName}
)

// Matcher decides whether a path takes part in instantiation.
// Paths are relative to the instantiated tree root.
type Matcher interface {
	// Folder reports whether path passes the folder rules.
	Folder(path string, isDir bool) bool
	// Wildcard reports whether path passes the wildcard rules.
	Wildcard(path string) bool
	// Included reports whether path passes all the rules.
	Included(path string, isDir bool) bool
}

// Spec is a parsed ignore list.
type Spec struct {
	folders   []string
	wildcards []string
	files     []string
}

// Empty returns a spec containing only built-in rules.
func Empty() *Spec {
	return newSpec(nil)
}

func newSpec(lines []string) *Spec {
	spec := Spec{}
	for _, line := range lines {
		switch {
		case strings.HasSuffix(line, "/"):
			spec.folders = append(spec.folders, line)
		case strings.HasPrefix(line, "*."):
			spec.wildcards = append(spec.wildcards, line)
		default:
			spec.files = append(spec.files, line)
		}
	}
	spec.folders = append(spec.folders, alwaysIgnoreFolders...)
	spec.files = append(spec.files, alwaysIgnoreFiles...)
	return &spec
}

// Parse reads an ignore list. Comments and blank lines are skipped.
func Parse(reader *bufio.Scanner) (*Spec, error) {
	var lines []string
	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return newSpec(lines), nil
}

// Load loads the ignore list from path. A missing file results in a spec
// with built-in rules only.
func Load(path string) (*Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("No ignore list at %s", path)
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to open ignore list: %w", err)
	}
	defer file.Close()

	spec, err := Parse(bufio.NewScanner(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore list %s: %w", path, err)
	}
	log.Debugf("Ignore list %s: folders %v, wildcards %v, files %v", path,
		spec.folders, spec.wildcards, spec.files)
	return spec, nil
}

// Folders returns folder rules.
func (spec *Spec) Folders() []string {
	return slices.Clone(spec.folders)
}

// Wildcards returns wildcard rules.
func (spec *Spec) Wildcards() []string {
	return slices.Clone(spec.wildcards)
}

// Files returns literal rules.
func (spec *Spec) Files() []string {
	return slices.Clone(spec.files)
}

func normalize(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}

// Folder reports whether path is outside any ignored folder. For directories
// the trailing slash of a rule is not required to match.
func (spec *Spec) Folder(path string, isDir bool) bool {
	path = normalize(path)
	for _, folder := range spec.folders {
		if isDir {
			folder = strings.TrimSuffix(folder, "/")
		}
		if strings.Contains(path, folder) {
			log.Debugf("Folder rule %q ignores %s", folder, path)
			return false
		}
	}
	return true
}

// Wildcard reports whether path does not end with any wildcard suffix.
func (spec *Spec) Wildcard(path string) bool {
	path = normalize(path)
	for _, wildcard := range spec.wildcards {
		if strings.HasSuffix(path, wildcard[1:]) {
			log.Debugf("Wildcard %q ignores %s", wildcard, path)
			return false
		}
	}
	return true
}

// File reports whether path does not contain any literal rule.
func (spec *Spec) File(path string) bool {
	path = normalize(path)
	for _, file := range spec.files {
		if strings.Contains(path, file) {
			log.Debugf("File rule %q ignores %s", file, path)
			return false
		}
	}
	return true
}

// Included reports whether path passes folder, wildcard and file rules.
func (spec *Spec) Included(path string, isDir bool) bool {
	return spec.Folder(path, isDir) && spec.Wildcard(path) && spec.File(path)
}
