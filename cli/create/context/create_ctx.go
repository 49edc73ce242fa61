package create_ctx

import "net/http"

// CreateCtx contains information for creating projects from templations.
type CreateCtx struct {
	// ProjectName is the name of the project to create. It is also the name
	// of the project directory.
	ProjectName string
	// Directory is the path where the project directory is created.
	Directory string
	// Version is the initial project version.
	Version string
	// Namespace is the project namespace, e.g. `com.example`.
	Namespace string
	// Templation is the templation location: a local directory, a `file:/`
	// URI, a zip archive URL or a GitHub `user/repo`.
	Templation string
	// Parameters are custom placeholder definitions in `key=value` form.
	Parameters []string
	// WorkDir is a scratch directory for the fetched templation.
	WorkDir string
	// GitHubAPI overrides the GitHub API base URL.
	GitHubAPI string
	// Client is the HTTP client for remote templations.
	Client *http.Client
}
