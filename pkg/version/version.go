// Package version reports the build version of vlist.
package version

import "github.com/Masterminds/semver/v3"

// devVersion is reported when no valid version was injected at build time.
const devVersion = "0.0.0-dev"

// Set via -ldflags "-X github.com/rshade/vlist/pkg/version.version=...".
//
//nolint:gochecknoglobals // Build-time injection target.
var (
	version   = devVersion
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version. A value injected at build time that is
// not valid semver is replaced by the development version.
func GetVersion() string {
	if !IsValid(version) {
		return devVersion
	}
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsValid reports whether v parses as a semantic version. A leading "v" is allowed.
func IsValid(v string) bool {
	_, err := semver.NewVersion(v)
	return err == nil
}
