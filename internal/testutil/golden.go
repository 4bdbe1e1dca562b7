package testutil

import (
	"flag"
	"os"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "rewrite golden files with the current output")

// RequireGolden compares got against the golden file at path and fails
// with a unified diff on mismatch. Running the tests with -update
// rewrites the file instead of comparing.
func RequireGolden(t *testing.T, path, got string) {
	t.Helper()

	if *update {
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "missing golden file %s (run with -update to create it)", path)
	if string(want) == got {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(got),
		FromFile: path,
		ToFile:   "got",
		Context:  3,
	})
	require.NoError(t, err)
	t.Fatalf("output does not match %s:\n%s", path, diff)
}
