package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/shapes/w"
)

const watchtowerModel = `
model {
  description = "watchtower"
}

material "steel" {
  preset = "A992Fy50"
}

level "base" {
  elevation = 0
  restraint = "fixed"
}

level "roof" {
  elevation = 120
}

gridline "A" {
  start = [0, 0]
  end   = [240, 0]
}

gridline "B" {
  start = [0, 240]
  end   = [240, 240]
}

gridline "g1" {
  start = [0, 0]
  end   = [0, 240]
}

gridline "g2" {
  start = [240, 0]
  end   = [240, 240]
}

section "W24X94" {
  family   = "W"
  material = material.steel
  source   = "aisc"
}

columns "posts" {
  section = section.W24X94
}

beams "girders" {
  section = section.W24X94
}

surface_load "roof_dl" {
  magnitude = 0.003
}
`

func testRegistry() *registry.Registry {
	r := registry.New()
	(&w.Module{}).Register(r)
	return r
}

func writeWorkspace(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tower.osmg.hcl"), []byte(src), 0o644))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	resolved, err := NewConfig(cfg)
	require.NoError(t, err)

	var logBuf, outBuf bytes.Buffer
	return New(&logBuf, &outBuf, resolved, testRegistry()), &logBuf, &outBuf
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	_, err := NewConfig(Config{LogLevel: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = NewConfig(Config{LogFormat: "xml"})
	assert.ErrorContains(t, err, "invalid log format")

	_, err = NewConfig(Config{ExportFormat: "dxf"})
	assert.ErrorContains(t, err, "invalid export format")
}

func TestNewPanicsWithoutRegistry(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	assert.Panics(t, func() {
		New(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	})
}

func TestNewPanicsOnManifestMismatch(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)

	// A handler without a manifest fails the parity check.
	r := registry.New()
	r.RegisterShape("W", &registry.ShapeHandler{
		NewInput: func() any { return new(w.Input) },
	})
	assert.Panics(t, func() {
		New(&bytes.Buffer{}, &bytes.Buffer{}, cfg, r)
	})
}

func TestRunAssemblesModel(t *testing.T) {
	dir := writeWorkspace(t, watchtowerModel)
	a, logBuf, _ := newTestApp(t, Config{Paths: []string{dir}})

	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "watchtower", result.Description)
	assert.Len(t, result.Building.Levels.List(), 2)
	assert.Len(t, result.Building.Columns(), 4)
	assert.Len(t, result.Building.Beams(), 4)
	assert.Contains(t, logBuf.String(), "🏁 Build complete.")

	// No preprocess block and no flag, so no parent node appears.
	roof, err := result.Building.Levels.Get("roof")
	require.NoError(t, err)
	assert.Nil(t, roof.ParentNode)
}

func TestRunForcedPreprocess(t *testing.T) {
	dir := writeWorkspace(t, watchtowerModel)
	a, _, _ := newTestApp(t, Config{Paths: []string{dir}, Preprocess: true})

	result, err := a.Run(context.Background())
	require.NoError(t, err)

	roof, err := result.Building.Levels.Get("roof")
	require.NoError(t, err)
	require.NotNil(t, roof.ParentNode)
	assert.Greater(t, roof.ParentNode.Mass[0], 0.0)
}

func TestRunExportsTclToFile(t *testing.T) {
	dir := writeWorkspace(t, watchtowerModel)
	out := filepath.Join(t.TempDir(), "model.tcl")
	a, _, _ := newTestApp(t, Config{
		Paths:        []string{dir},
		ExportFormat: "tcl",
		ExportPath:   out,
	})

	_, err := a.Run(context.Background())
	require.NoError(t, err)

	script, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(script), "# watchtower")
	assert.Contains(t, string(script), "model BasicBuilder -ndm 3 -ndf 6")
	assert.Contains(t, string(script), "element elasticBeamColumn")
}

func TestRunExportsJSONToWriter(t *testing.T) {
	dir := writeWorkspace(t, watchtowerModel)
	a, _, outBuf := newTestApp(t, Config{
		Paths:        []string{dir},
		ExportFormat: "json",
	})

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, json.Valid(outBuf.Bytes()), "export should be valid JSON")
}

func TestRunNoModelFiles(t *testing.T) {
	a, _, _ := newTestApp(t, Config{Paths: []string{t.TempDir()}})

	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model files")
}

func TestWatchRoot(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"frames", "frames"},
		{"frames/tower.osmg.hcl", "frames/tower.osmg.hcl"},
		{"*.osmg.hcl", "."},
		{"**/*.osmg.hcl", "."},
		{"frames/**/*.osmg.hcl", "frames"},
		{"frames/sub/*.osmg.hcl", "frames/sub"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, watchRoot(tc.pattern), "pattern %q", tc.pattern)
	}
}
