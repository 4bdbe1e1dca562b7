package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/osmg/osmg/internal/builder"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/export"
	"github.com/osmg/osmg/internal/fsutil"
	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/preprocess"
)

// Run executes one full pipeline pass: discover model files, load and
// convert them, assemble the building, preprocess when asked for, and
// export when a format is configured.
func (a *App) Run(ctx context.Context) (*builder.Result, error) {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("🚀 Assembling model.", "paths", a.cfg.Paths)

	files, err := fsutil.Discover(a.cfg.Paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no model files (*%s) found in %v", fsutil.ModelExt, a.cfg.Paths)
	}
	logger.Debug("Model files discovered.", "count", len(files))

	parsed, err := hcl.NewLoader().Load(ctx, files...)
	if err != nil {
		return nil, err
	}
	def, err := hcl.NewConverter().Convert(ctx, parsed)
	if err != nil {
		return nil, err
	}

	result, err := builder.New(a.reg).Build(ctx, def)
	if err != nil {
		return nil, err
	}

	if opts, ok := a.preprocessOptions(result); ok {
		logger.Debug("Preprocessing building.", "floor_slabs", opts.FloorSlabs, "self_weight", opts.SelfWeight)
		if err := preprocess.Run(ctx, result.Building, opts); err != nil {
			return nil, fmt.Errorf("preprocessing failed: %w", err)
		}
	}

	if a.cfg.ExportFormat != "" {
		if err := a.export(result); err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		logger.Debug("Model exported.", "format", a.cfg.ExportFormat, "path", a.cfg.ExportPath)
	}

	logger.Info("🏁 Build complete.",
		"levels", len(result.Building.Levels.List()),
		"elements", len(result.Building.FrameElements()),
		"nodes", len(result.Building.AllNodes()),
	)
	return result, nil
}

// preprocessOptions decides whether the preparation stage runs. A
// preprocess block in the model wins; the Preprocess flag forces a run
// with default options when the model has none.
func (a *App) preprocessOptions(result *builder.Result) (preprocess.Options, bool) {
	if result.Preprocess != nil {
		return *result.Preprocess, true
	}
	if a.cfg.Preprocess {
		return preprocess.Options{FloorSlabs: true, SelfWeight: true}, true
	}
	return preprocess.Options{}, false
}

func (a *App) export(result *builder.Result) (err error) {
	w := a.outW
	if a.cfg.ExportPath != "" {
		f, cerr := os.Create(a.cfg.ExportPath)
		if cerr != nil {
			return fmt.Errorf("error creating export file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return writeExport(w, result, a.cfg.ExportFormat)
}

func writeExport(w io.Writer, result *builder.Result, format string) error {
	switch format {
	case "tcl":
		var header []string
		if result.Description != "" {
			header = append(header, result.Description)
		}
		return export.WriteTcl(w, result.Building, export.TclOptions{Header: header})
	case "json":
		return export.WriteJSON(w, result.Building, export.JSONOptions{})
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
