package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("model {}\n"), 0o644))
	return path
}

func TestDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	tower := writeFile(t, dir, "tower.osmg.hcl")
	garage := writeFile(t, dir, filepath.Join("frames", "garage.osmg.hcl"))
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "loader.hcl")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{garage, tower}, files)
}

func TestDiscoverExplicitFile(t *testing.T) {
	dir := t.TempDir()
	tower := writeFile(t, dir, "tower.osmg.hcl")

	files, err := Discover(tower)
	require.NoError(t, err)
	assert.Equal(t, []string{tower}, files)
}

func TestDiscoverRejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	notes := writeFile(t, dir, "notes.txt")

	_, err := Discover(notes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a model file")
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nowhere"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error discovering model files")
}

func TestDiscoverDeduplicates(t *testing.T) {
	dir := t.TempDir()
	tower := writeFile(t, dir, "tower.osmg.hcl")

	files, err := Discover(dir, tower, tower)
	require.NoError(t, err)
	assert.Equal(t, []string{tower}, files)
}

func TestDiscoverPattern(t *testing.T) {
	dir := t.TempDir()
	garage := writeFile(t, dir, filepath.Join("frames", "garage.osmg.hcl"))
	writeFile(t, dir, filepath.Join("frames", "sketch.txt"))

	files, err := Discover(filepath.Join(dir, "**", "*.osmg.hcl"))
	require.NoError(t, err)
	assert.Equal(t, []string{garage}, files)
}
