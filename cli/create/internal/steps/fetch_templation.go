package steps

import (
	"context"
	"errors"

	"github.com/apex/log"
	create_ctx "github.com/snip-cli/snip/cli/create/context"
	"github.com/snip-cli/snip/cli/templation"
	"github.com/snip-cli/snip/cli/util"
)

// FetchTemplation represents templation fetch step.
type FetchTemplation struct {
	// Context bounds remote requests.
	Context context.Context
}

// Run fetches the templation into the work directory.
func (step FetchTemplation) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *TemplateCtx,
) error {
	if createCtx.Templation == "" {
		return errors.New("templation is not set")
	}
	ctx := step.Context
	if ctx == nil {
		ctx = context.Background()
	}

	fetcher, err := templation.NewFetcher(ctx, createCtx.Templation, templation.FetcherOpts{
		WorkDir:   createCtx.WorkDir,
		GitHubAPI: createCtx.GitHubAPI,
		Client:    createCtx.Client,
	})
	if err != nil {
		return err
	}
	var path string
	fetch := func() error {
		path, err = fetcher.Fetch(ctx)
		return err
	}
	if fetcher.IsRemote() {
		log.Infof("Downloading templation %s", fetcher.URL())
		err = util.WithSpinner("Downloading", fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return err
	}
	log.Debugf("Templation %s fetched to %s", createCtx.Templation, path)
	templateCtx.TemplationPath = path
	return nil
}
