package util

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

var (
	spinnerPicture    = spinner.CharSets[9]
	spinnerUpdateTime = 100 * time.Millisecond
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// WithSpinner runs fn showing a spinner with prefix until fn returns. The
// spinner is shown only when stdout is a terminal.
func WithSpinner(prefix string, fn func() error) error {
	if !isTerminal() {
		return fn()
	}

	s := spinner.New(spinnerPicture, spinnerUpdateTime)
	if prefix != "" {
		s.Prefix = fmt.Sprintf("%s ", strings.TrimSpace(prefix))
	}
	s.Start()
	defer s.Stop()

	return fn()
}
