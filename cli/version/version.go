// Package version reports the snip build version.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	goVersion "github.com/hashicorp/go-version"
)

const (
	unknownVersion = "<unknown>"
	cliTitle       = "snip"
)

// Get the value of this variables at build time.
// See magefile for more details.
var (
	gitTag       string
	gitCommit    string
	versionLabel string
)

// normalize turns a git tag like `v1.2.0` into `1.2.0`. Tags that are not
// versions are kept as is.
func normalize(tag string) string {
	if tag == "" {
		return unknownVersion
	}
	parsed, err := goVersion.NewVersion(tag)
	if err != nil {
		return tag
	}
	segments := make([]string, 0, len(parsed.Segments()))
	for _, num := range parsed.Segments() {
		segments = append(segments, strconv.Itoa(num))
	}
	version := strings.Join(segments, ".")
	if pre := parsed.Prerelease(); pre != "" {
		version += "-" + pre
	}
	return version
}

// format builds the version string from build information.
func format(tag, commit, label string, showShort, needCommit bool) string {
	version := normalize(tag)
	if tag != "" && label != "" {
		version = fmt.Sprintf("%s/%s", version, label)
	}

	switch {
	case needCommit:
		return fmt.Sprintf("%s.%s", version, commit)
	case showShort:
		return version
	}
	return fmt.Sprintf("%s version %s, %s/%s. commit: %s",
		cliTitle, version, runtime.GOOS, runtime.GOARCH, commit)
}

// GetVersion return string with snip version info.
func GetVersion(showShort bool, needCommit bool) string {
	return format(gitTag, gitCommit, versionLabel, showShort, needCommit)
}
