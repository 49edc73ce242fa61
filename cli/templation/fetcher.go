// Package templation fetches templations and handles their configuration and
// post-generation scripts.
package templation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/avast/retry-go"
	"github.com/codeclysm/extract/v3"
	"github.com/google/uuid"
	"github.com/otiai10/copy"

	"github.com/snip-cli/snip/cli/util"
)

const (
	// DefaultGitHubAPI is the GitHub API used to resolve `user/repo` locations.
	DefaultGitHubAPI = "https://api.github.com"
	// DefaultAttempts is the number of attempts of every remote request.
	DefaultAttempts = 3

	defaultDelay = 500 * time.Millisecond
	dirPerms     = os.FileMode(0755)
)

var (
	localLocation  = regexp.MustCompile(`^file:/.+$`)
	remoteLocation = regexp.MustCompile(`^https?://.+$`)
	// unsafeNameChars are replaced in names derived from locations.
	unsafeNameChars = regexp.MustCompile(`[^\w.\-]+`)
)

// FetcherOpts contains fetcher settings.
type FetcherOpts struct {
	// WorkDir is a directory the templation is materialized in.
	WorkDir string
	// GitHubAPI is the GitHub API base URL. DefaultGitHubAPI is used if empty.
	GitHubAPI string
	// Client is the HTTP client for remote templations. http.DefaultClient is
	// used if nil.
	Client *http.Client
	// Attempts is the number of attempts of every remote request.
	// DefaultAttempts is used if zero.
	Attempts uint
	// Delay is the base delay between attempts.
	Delay time.Duration
}

// Fetcher materializes a templation in a work directory.
type Fetcher struct {
	location string
	// local is a local templation directory.
	local string
	// remote is a zip archive URL.
	remote string
	opts   FetcherOpts
}

// localPath returns the local directory of location, if location is local.
func localPath(location string) (string, bool, error) {
	if localLocation.MatchString(location) {
		uri, err := url.Parse(location)
		if err != nil {
			return "", true, err
		}
		return filepath.FromSlash(uri.Path), true, nil
	}
	if util.IsDir(location) {
		return location, true, nil
	}
	return "", false, nil
}

// NewFetcher classifies the templation location and checks it exists:
// `file:/` URIs and existing directories are local, `http(s)://` URLs are
// remote zip archives and anything else is a GitHub `user/repo` repository.
func NewFetcher(ctx context.Context, location string, opts FetcherOpts) (*Fetcher, error) {
	if opts.GitHubAPI == "" {
		opts.GitHubAPI = DefaultGitHubAPI
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Attempts == 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Delay == 0 {
		opts.Delay = defaultDelay
	}
	fetcher := &Fetcher{location: location, opts: opts}

	local, isLocal, err := localPath(location)
	if isLocal {
		if err != nil {
			return nil, &TemplationNotFoundError{Location: location, Err: err}
		}
		if !util.IsDir(local) {
			return nil, &TemplationNotFoundError{Location: location}
		}
		if local, err = filepath.Abs(local); err != nil {
			return nil, err
		}
		log.Debugf("Using templation from local at %s", local)
		fetcher.local = local
		return fetcher, nil
	}

	if remoteLocation.MatchString(location) {
		fetcher.remote = location
		log.Debugf("Templation from custom URL %s", location)
	} else {
		fetcher.remote = fmt.Sprintf("%s/repos/%s/zipball",
			strings.TrimSuffix(opts.GitHubAPI, "/"), strings.Trim(location, "/"))
		log.Debugf("Templation from GitHub %s", fetcher.remote)
	}

	if err := fetcher.probe(ctx); err != nil {
		return nil, err
	}
	return fetcher, nil
}

// IsRemote reports whether the templation is downloaded.
func (fetcher *Fetcher) IsRemote() bool {
	return fetcher.remote != ""
}

// URL returns the archive URL of a remote templation.
func (fetcher *Fetcher) URL() string {
	return fetcher.remote
}

// retry runs fn with the fetcher retry policy.
func (fetcher *Fetcher) retry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(fetcher.opts.Attempts),
		retry.Delay(fetcher.opts.Delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debugf("Attempt %d for %s failed: %s", n+1, fetcher.remote, err)
		}))
}

// probe checks the remote templation responds to HEAD with 200. Network
// errors are retried, unexpected statuses are not.
func (fetcher *Fetcher) probe(ctx context.Context) error {
	var notFound error
	err := fetcher.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, fetcher.remote, nil)
		if err != nil {
			notFound = err
			return retry.Unrecoverable(err)
		}
		resp, err := fetcher.opts.Client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			notFound = fmt.Errorf("unexpected HTTP status %q", resp.Status)
			return retry.Unrecoverable(notFound)
		}
		return nil
	})
	if notFound != nil {
		return &TemplationNotFoundError{Location: fetcher.location, Err: notFound}
	}
	if err != nil {
		return &TemplationNotFoundError{Location: fetcher.location, Err: err}
	}
	return nil
}

// download saves the remote archive to path.
func (fetcher *Fetcher) download(ctx context.Context, path string) error {
	return fetcher.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetcher.remote, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		resp, err := fetcher.opts.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected HTTP status %q", resp.Status)
		}

		archive, err := os.Create(path)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		_, err = io.Copy(archive, resp.Body)
		if closeErr := archive.Close(); err == nil {
			err = closeErr
		}
		return err
	})
}

// topLevelDir returns the single directory an archive was extracted to, or
// dir itself if the archive has no single root directory.
func topLevelDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

// fetchRemote downloads and extracts the templation archive.
func (fetcher *Fetcher) fetchRemote(ctx context.Context) (string, error) {
	archivePath := filepath.Join(fetcher.opts.WorkDir, uuid.New().String()+".zip")
	log.Debugf("Downloading the remote templation %s to %s", fetcher.remote, archivePath)
	if err := fetcher.download(ctx, archivePath); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", fetcher.remote, err)
	}
	defer os.Remove(archivePath)

	archive, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	extracted := filepath.Join(fetcher.opts.WorkDir,
		unsafeNameChars.ReplaceAllString(fetcher.location, "-"))
	if err := extract.Archive(ctx, archive, extracted,
		func(name string) string { return name }); err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", fetcher.remote, err)
	}

	root, err := topLevelDir(extracted)
	if err != nil {
		return "", err
	}
	log.Debugf("Templation downloaded at %s", root)
	return root, nil
}

// fetchLocal copies the local templation to the work directory.
func (fetcher *Fetcher) fetchLocal() (string, error) {
	target := filepath.Join(fetcher.opts.WorkDir, filepath.Base(fetcher.local))
	if err := copy.Copy(fetcher.local, target); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", fetcher.local, err)
	}
	log.Debugf("Templation copied to %s", target)
	return target, nil
}

// Fetch materializes the templation under the work directory and returns its
// root directory.
func (fetcher *Fetcher) Fetch(ctx context.Context) (string, error) {
	if fetcher.opts.WorkDir == "" {
		return "", errors.New("work directory is not set")
	}
	if err := os.MkdirAll(fetcher.opts.WorkDir, dirPerms); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	if fetcher.IsRemote() {
		return fetcher.fetchRemote(ctx)
	}
	return fetcher.fetchLocal()
}
