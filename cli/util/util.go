package util

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	// ExitFailure is the exit code of a failed execution.
	ExitFailure = 1
	// ExitBadParameter is the exit code of invalid command line parameters.
	ExitBadParameter = 2
)

// ArgError represents command line arguments error.
type ArgError struct {
	msg string
	err error
}

// Error returns error message.
func (e ArgError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any.
func (e ArgError) Unwrap() error {
	return e.err
}

// NewArgError creates and returns new argument error.
func NewArgError(text string) error {
	return &ArgError{msg: text}
}

// WrapArgError marks err as caused by command line arguments.
func WrapArgError(err error) error {
	if err == nil {
		return nil
	}
	return &ArgError{err: err}
}

// VersionFunc is a type of function that return
// string with current snip version.
type VersionFunc func(bool, bool) string

// InternalError shows error information, version of snip and call stack.
func InternalError(format string, f VersionFunc, err ...interface{}) error {
	errorFmt := `whoops! It looks like something is wrong with this version of snip.
Error: %s
Version: %s
Stacktrace:
%s`
	version := f(false, false)

	return fmt.Errorf(errorFmt, fmt.Sprintf(format, err...), version, debug.Stack())
}

// ParseYAML reads the YAML mapping stored at path. An empty file gives an
// empty mapping.
func ParseYAML(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return raw, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var argError *ArgError
	if errors.As(err, &argError) {
		return ExitBadParameter
	}
	return ExitFailure
}

// HandleCmdErr handles an error returned by command implementation.
// Argument errors print the command usage.
func HandleCmdErr(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	log.Error(err.Error())
	if code := ExitCode(err); code == ExitBadParameter {
		cmd.Usage()
		os.Exit(code)
	}
	os.Exit(ExitFailure)
}
