package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	Version, Commit, Date = "1.2.0", "abc123", "2026-01-02"
	assert.Equal(t, "wiko version 1.2.0 (commit: abc123, built: 2026-01-02)", String())
}
