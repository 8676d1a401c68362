package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString_DefaultsToVersionOnly(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, BuildTime)
	require.NotEmpty(t, GitCommit)
	if GitCommit == "unknown" && BuildTime == "unknown" {
		require.Equal(t, Version, String())
	}
}

func TestString_WithBuildMetadata(t *testing.T) {
	oldV, oldC, oldT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldT })

	Version, GitCommit, BuildTime = "v1.2.0", "abc123", "2026-01-02"
	require.Equal(t, "v1.2.0 (commit abc123, built 2026-01-02)", String())
}
