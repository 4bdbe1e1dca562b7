package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader
// interface.
type Loader struct{}

// NewLoader creates a new HCL model file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every given model file. Each run uses a fresh parser so
// stale file contents never leak between runs in watch mode.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*schema.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	parser := hclparse.NewParser()
	files := make([]*schema.File, 0, len(paths))

	for _, path := range paths {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse model file %s: %w", path, diags)
		}

		root := &schema.File{Path: path}
		diags = gohcl.DecodeBody(hclFile.Body, nil, root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode model file %s: %w", path, diags)
		}
		files = append(files, root)
	}

	logger.Debug("HCL loading complete.", "file_count", len(files))
	return files, nil
}
