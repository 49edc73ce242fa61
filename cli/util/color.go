package util

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mgutz/ansi"
)

var (
	bold = ansi.ColorFunc("default+b")

	successTag = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Bold makes the input string bold.
func Bold(s string) string {
	return bold(s)
}

// ReportSuccess prints a success line of the reporter.
func ReportSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, " > > %s %s\n", successTag("[SUCCESS]"), fmt.Sprintf(format, args...))
}

// ReportFailure prints a failure line of the reporter.
func ReportFailure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, " > > %s %s\n", failureTag("[FAILURE]"), fmt.Sprintf(format, args...))
}
