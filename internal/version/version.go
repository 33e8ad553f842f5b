// Package version reports the build of conpane.
package version

import "runtime/debug"

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/abdullathedruid/conpane/internal/version.GitSHA=$(git rev-parse --short HEAD)"
var (
	// GitSHA is the git commit SHA (short form) at build time.
	GitSHA = "dev"
	// Version is the release tag, if any.
	Version = ""
)

// Short returns a short version string suitable for display.
func Short() string {
	if Version != "" {
		return Version
	}
	if GitSHA == "dev" {
		if rev := vcsRevision(); rev != "" {
			return rev
		}
	}
	return GitSHA
}

// String returns the version line printed by --version.
func String() string {
	if Version != "" && GitSHA != "dev" {
		return Version + " (" + GitSHA + ")"
	}
	return Short()
}

// vcsRevision returns the short commit stamped by the go tool, if any.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
