// Package testutil provides a harness for running full model builds
// in tests, plus helpers for asserting on their logs and exports.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/builder"
	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/shapes/hss"
	"github.com/osmg/osmg/shapes/rect"
	"github.com/osmg/osmg/shapes/w"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// BuildResult holds the outcomes of a harness build.
type BuildResult struct {
	// Result is the builder output, nil when the build failed.
	Result *builder.Result
	// LogOutput is everything the app logged during the run.
	LogOutput string
	// Output is what the app wrote to its output writer, typically
	// an export streamed to stdout.
	Output string
	// Dir is the temporary workspace the model files were written to.
	Dir string
	// Err is the error returned by Run, if any.
	Err error
}

// RunBuild materializes the given model files in a temporary directory
// and runs a full build over them with debug logging. Map keys are
// paths relative to the workspace root, so nested names create
// subdirectories.
func RunBuild(t *testing.T, files map[string]string) *BuildResult {
	t.Helper()
	return RunBuildWithConfig(t, files, app.Config{})
}

// RunBuildWithConfig is RunBuild with control over the app config. The
// harness owns Paths, LogLevel and LogFormat; everything else is the
// caller's. A relative ExportPath is resolved against the workspace so
// scenarios can use bare file names.
func RunBuildWithConfig(t *testing.T, files map[string]string, cfg app.Config) *BuildResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.ExportPath != "" && !filepath.IsAbs(cfg.ExportPath) {
		cfg.ExportPath = filepath.Join(dir, cfg.ExportPath)
	}
	cfg.Paths = []string{dir}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	resolved, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// Each run gets an isolated registry so scenarios cannot leak
	// handlers into each other through the process-wide default.
	reg := registry.New()
	(&w.Module{}).Register(reg)
	(&hss.Module{}).Register(reg)
	(&rect.Module{}).Register(reg)

	logBuf := &SafeBuffer{}
	var out bytes.Buffer
	result, runErr := app.New(logBuf, &out, resolved, reg).Run(context.Background())

	if os.Getenv("OSMG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuf.String())
	}

	return &BuildResult{
		Result:    result,
		LogOutput: logBuf.String(),
		Output:    out.String(),
		Dir:       dir,
		Err:       runErr,
	}
}
