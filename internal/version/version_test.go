package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(commit, built, goVersion string) {
		GitCommit, BuildTime, GoVersion = commit, built, goVersion
	}(GitCommit, BuildTime, GoVersion)

	GitCommit, BuildTime = "", ""
	assert.Equal(t, Version, String())
	assert.Equal(t, Version, ShortString())

	GitCommit = "0123456789abcdef"
	BuildTime = "2026-01-02T03:04:05Z"
	GoVersion = "go1.24.0"
	assert.Equal(t, Version+" (commit: 01234567, built: 2026-01-02T03:04:05Z, go1.24.0)", String())

	GitCommit = "abc"
	assert.Contains(t, String(), "commit: abc,")
}
