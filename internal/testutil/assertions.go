package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks the log output within a BuildResult for a
// fragment, usually one of the pipeline milestone messages. Matching
// on the message text keeps scenarios resilient to attribute changes.
func AssertLogged(t *testing.T, result *BuildResult, fragment string) {
	t.Helper()

	require.True(t,
		strings.Contains(result.LogOutput, fragment),
		"expected log output to contain %q", fragment,
	)
}
