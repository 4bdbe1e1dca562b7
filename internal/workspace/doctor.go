package workspace

import (
	"context"
	"fmt"
	"go/version"
	"os"
	"runtime"

	"github.com/osmg/osmg/internal/fsutil"
	"github.com/osmg/osmg/internal/section"
)

// minGoVersion is the toolchain the module's go directive pins.
const minGoVersion = "go1.24"

// Check is the outcome of a single doctor probe.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// Passed reports whether the probe succeeded.
func (c Check) Passed() bool {
	return c.Err == nil
}

// Doctor probes everything a build in dir needs: the Go runtime, model
// files, the embedded shape database and write access. It returns one
// Check per probe so callers can render them.
func Doctor(ctx context.Context, dir string) []Check {
	return []Check{
		goRuntime(),
		modelFiles(dir),
		shapeDatabase(),
		writable(dir),
	}
}

func goRuntime() Check {
	c := Check{Name: "go runtime", Detail: runtime.Version()}
	lang := version.Lang(runtime.Version())
	if lang == "" {
		// Development toolchains do not parse as release versions.
		return c
	}
	if version.Compare(lang, minGoVersion) < 0 {
		c.Err = fmt.Errorf("built with %s, need %s or newer", runtime.Version(), minGoVersion)
	}
	return c
}

func modelFiles(dir string) Check {
	c := Check{Name: "model files"}
	files, err := fsutil.Discover(dir)
	if err != nil {
		c.Err = err
		return c
	}
	if len(files) == 0 {
		c.Err = fmt.Errorf("no *%s files under %s", fsutil.ModelExt, dir)
		return c
	}
	c.Detail = fmt.Sprintf("%d file(s)", len(files))
	return c
}

func shapeDatabase() Check {
	c := Check{Name: "shape database"}
	db, err := section.Embedded()
	if err != nil {
		c.Err = err
		return c
	}
	c.Detail = fmt.Sprintf("%d embedded AISC labels", len(db.Labels()))
	return c
}

func writable(dir string) Check {
	c := Check{Name: "workspace writable", Detail: dir}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		c.Err = err
		return c
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		c.Err = err
		return c
	}
	if err := os.Remove(name); err != nil {
		c.Err = err
	}
	return c
}
