package config

import (
	"context"

	"github.com/osmg/osmg/internal/schema"
)

// Loader is the interface for a format-specific model file loader.
type Loader interface {
	// Load reads the model files at the given paths and parses each
	// into its raw schema form.
	Load(ctx context.Context, paths ...string) ([]*schema.File, error)
}

// Converter is the interface for turning raw schema files into the
// format-agnostic definition. It merges files, checks block name
// uniqueness and extracts the depends_on meta-argument.
type Converter interface {
	Convert(ctx context.Context, files []*schema.File) (*Definition, error)
}
