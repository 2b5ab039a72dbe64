package common

import (
	"os"
	"strings"
)

// Version information, set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// GetVersion returns the application version. Falls back to the
// .version file when no ldflags version was injected.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	data, err := os.ReadFile(".version")
	if err != nil {
		return Version
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return Version
	}
	return v
}

// GetBuild returns the build timestamp.
func GetBuild() string {
	return BuildTime
}

// GetGitCommit returns the git commit hash.
func GetGitCommit() string {
	return GitCommit
}
