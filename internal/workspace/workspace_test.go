package workspace

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/builder"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/fsutil"
	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/preprocess"
	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/shapes/w"
)

func TestInitScaffoldsWorkspace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frame")

	created, err := Init(dir)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.FileExists(t, filepath.Join(dir, "model.osmg.hcl"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir)
	require.NoError(t, err)

	_, err = Init(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestInitStarterModelBuilds(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	files, err := fsutil.Discover(dir)
	require.NoError(t, err)
	parsed, err := hcl.NewLoader().Load(ctx, files...)
	require.NoError(t, err)
	def, err := hcl.NewConverter().Convert(ctx, parsed)
	require.NoError(t, err)

	reg := registry.New()
	(&w.Module{}).Register(reg)
	result, err := builder.New(reg).Build(ctx, def)
	require.NoError(t, err)

	assert.Len(t, result.Building.Columns(), 4)
	assert.Len(t, result.Building.Beams(), 4)
	require.NotNil(t, result.Preprocess)

	require.NoError(t, preprocess.Run(ctx, result.Building, *result.Preprocess))
	masses := result.Building.LevelMasses()
	require.Len(t, masses, 2)
	assert.Greater(t, masses[1], 0.0)
}

func TestDoctorHealthyWorkspace(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir)
	require.NoError(t, err)

	checks := Doctor(context.Background(), dir)
	require.Len(t, checks, 4)
	for _, c := range checks {
		assert.True(t, c.Passed(), "check %s failed: %v", c.Name, c.Err)
	}
}

func TestDoctorFlagsEmptyWorkspace(t *testing.T) {
	checks := Doctor(context.Background(), t.TempDir())

	var failed []string
	for _, c := range checks {
		if !c.Passed() {
			failed = append(failed, c.Name)
		}
	}
	assert.Equal(t, []string{"model files"}, failed)
}

// repoFile reads a file at the repository root.
func repoFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", name))
	require.NoError(t, err)
	return string(data)
}

func TestReadmeInstallationMatchesModule(t *testing.T) {
	readme := repoFile(t, "README.md")
	gomod := repoFile(t, "go.mod")

	idx := strings.Index(readme, "## Installation")
	require.GreaterOrEqual(t, idx, 0, "README must carry an Installation section")
	install := readme[idx:]

	modPath := regexp.MustCompile(`(?m)^module (.+)$`).FindStringSubmatch(gomod)
	require.Len(t, modPath, 2)
	assert.Contains(t, install, modPath[1], "README must state the module path")

	goVersion := regexp.MustCompile(`(?m)^go (\S+)$`).FindStringSubmatch(gomod)
	require.Len(t, goVersion, 2)
	assert.Contains(t, install, "Go "+goVersion[1], "README must state the pinned Go release")

	steps := []string{
		"1. Install the Go toolchain",
		"2. No environment activation",
		"3. Run `go mod download`",
		"4. Run `go install",
		"5. Install OpenSees",
		"6. For development",
	}
	pos := -1
	for _, step := range steps {
		at := strings.Index(install, step)
		require.GreaterOrEqual(t, at, 0, "missing installation step %q", step)
		assert.Greater(t, at, pos, "installation step %q out of order", step)
		pos = at
	}
}
