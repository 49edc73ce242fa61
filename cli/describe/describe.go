// Package describe prints the placeholders and the post script a templation
// expects.
package describe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/snip-cli/snip/cli/placeholders"
	"github.com/snip-cli/snip/cli/templation"
	"github.com/snip-cli/snip/cli/util"
)

const (
	sourceBuiltin  = "built-in"
	sourceRequired = "-p, required"
	sourceOptional = "-p, optional"
)

// DescribeOpts contains describe settings.
type DescribeOpts struct {
	// Templation is a templation location.
	Templation string
	// WorkDir is a parent of the temporary fetch directory.
	WorkDir string
	// GitHubAPI is the GitHub API base URL.
	GitHubAPI string
	// Client is the HTTP client for remote templations.
	Client *http.Client
	// Pretty draws the table borders.
	Pretty bool
	// Writer receives the description.
	Writer io.Writer
}

// builtinRows returns the rows of placeholders every templation has.
func builtinRows() []table.Row {
	return []table.Row{
		{placeholders.NameToken, sourceBuiltin, placeholders.ValuePattern.String(),
			"project name"},
		{placeholders.VersionToken, sourceBuiltin, placeholders.ValuePattern.String(),
			"project version"},
		{placeholders.NamespaceToken, sourceBuiltin, placeholders.ValuePattern.String(),
			"project namespace"},
	}
}

// Render writes the placeholders table and the post script of cfg.
// A nil cfg describes a templation without configuration.
func Render(w io.Writer, cfg *templation.Config, goos string, pretty bool) {
	ts := table.NewWriter()
	ts.SetOutputMirror(w)
	ts.AppendHeader(table.Row{"PLACEHOLDER", "SOURCE", "PATTERN", "LABEL"})
	ts.AppendRows(builtinRows())

	if cfg != nil {
		source := sourceOptional
		if cfg.IsStrict() {
			source = sourceRequired
		}
		for _, rule := range cfg.Placeholders.Spec {
			ts.AppendRow(table.Row{rule.Name, source, rule.Pattern, rule.Label})
		}
	}

	if pretty {
		ts.SetStyle(table.StyleRounded)
	} else {
		ts.Style().Options.DrawBorder = false
		ts.Style().Options.SeparateColumns = false
		ts.Style().Options.SeparateHeader = false
	}
	ts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	ts.Render()

	var commands []string
	if cfg != nil {
		commands = cfg.Post.Script.CommandsFor(goos)
	}
	if len(commands) == 0 {
		fmt.Fprintf(w, "\nNo post script for %s.\n", goos)
		return
	}
	fmt.Fprintf(w, "\nPost script for %s:\n", goos)
	for _, command := range commands {
		fmt.Fprintf(w, "  %s\n", strings.TrimSpace(command))
	}
}

// Describe fetches the templation and writes its description.
func Describe(ctx context.Context, opts DescribeOpts) error {
	if opts.Templation == "" {
		return util.NewArgError("missing templation. Use -t to set it")
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	workDir, err := os.MkdirTemp(opts.WorkDir, "snip-")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	fetcher, err := templation.NewFetcher(ctx, opts.Templation, templation.FetcherOpts{
		WorkDir:   workDir,
		GitHubAPI: opts.GitHubAPI,
		Client:    opts.Client,
	})
	if err != nil {
		return templation.WrapUserError(err)
	}
	var path string
	fetch := func() error {
		path, err = fetcher.Fetch(ctx)
		return err
	}
	if fetcher.IsRemote() {
		err = util.WithSpinner("Downloading", fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return err
	}

	cfg, err := templation.LoadConfig(path)
	if err != nil {
		return templation.WrapUserError(err)
	}
	Render(opts.Writer, cfg, runtime.GOOS, opts.Pretty)
	return nil
}
