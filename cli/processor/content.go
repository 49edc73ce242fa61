package processor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/snip-cli/snip/cli/placeholders"
)

type fileContentProcessor struct{}

// substitute copies src to dst replacing every occurrence of token with value.
// Tokens never span lines, so the input is streamed line by line.
func substitute(src io.Reader, dst io.Writer, token, value string) error {
	reader := bufio.NewReader(src)
	writer := bufio.NewWriter(dst)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if _, werr := writer.WriteString(strings.ReplaceAll(line, token, value)); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	return writer.Flush()
}

// stagedFile is a private copy of a file being rewritten.
type stagedFile struct {
	dir  string
	path string
}

// stage copies path into the staging directory.
func stage(path, stagingDir string) (*stagedFile, error) {
	staged := &stagedFile{dir: stagingDir}
	err := staged.write(func(dst io.Writer) error {
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		return nil, err
	}
	return staged, nil
}

// write replaces the staged copy with the output of fill.
func (staged *stagedFile) write(fill func(io.Writer) error) error {
	next, err := os.CreateTemp(staged.dir, "staged-*")
	if err != nil {
		return err
	}
	if err = fill(next); err != nil {
		next.Close()
		os.Remove(next.Name())
		return err
	}
	if err = next.Close(); err != nil {
		os.Remove(next.Name())
		return err
	}
	staged.discard()
	staged.path = next.Name()
	return nil
}

// substitute applies one token to the staged copy.
func (staged *stagedFile) substitute(token, value string) error {
	return staged.write(func(dst io.Writer) error {
		src, err := os.Open(staged.path)
		if err != nil {
			return err
		}
		defer src.Close()
		return substitute(src, dst, token, value)
	})
}

// discard removes the staged copy.
func (staged *stagedFile) discard() {
	if staged.path != "" {
		os.Remove(staged.path)
		staged.path = ""
	}
}

// replaceFile atomically replaces path with the staged content, keeping the
// permissions of the original file.
func replaceFile(staged *stagedFile, path string, perm os.FileMode) error {
	src, err := os.Open(staged.path)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".snip-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err = io.Copy(tmp, src); err == nil {
		err = tmp.Chmod(perm)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
	}
	return err
}

// rewriteFile substitutes all tokens in the file content.
func rewriteFile(path, stagingDir string, ph *placeholders.Placeholders) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	staged, err := stage(path, stagingDir)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	defer staged.discard()

	for _, token := range ph.Tokens() {
		value, _ := ph.Value(token)
		if err := staged.substitute(token, value); err != nil {
			return fmt.Errorf("failed to substitute %s in %s: %w", token, path, err)
		}
	}

	if err := replaceFile(staged, path, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return nil
}

// Process rewrites the content of every included regular file. Files already
// rewritten stay rewritten if a later file fails.
func (fileContentProcessor) Process(ctx *Context) error {
	files, err := collectFiles(ctx)
	if err != nil {
		return err
	}

	stagingDir := ctx.StagingDir()
	if stagingDir == "" {
		if stagingDir, err = os.MkdirTemp("", "snip-staging-"); err != nil {
			return fmt.Errorf("failed to create staging directory: %w", err)
		}
		defer os.RemoveAll(stagingDir)
	} else if err = os.MkdirAll(stagingDir, dirPermissions); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	for _, file := range files {
		log.Debugf("File to process its content %s", file)
		if err := rewriteFile(filepath.Join(ctx.Target(), filepath.FromSlash(file)),
			stagingDir, ctx.Placeholders()); err != nil {
			return err
		}
	}
	return nil
}
