package app

import "fmt"

// Config holds everything a run needs, resolved from command-line flags.
type Config struct {
	// Paths name model files, directories to search recursively, or glob
	// patterns. Empty means the current directory.
	Paths []string

	LogLevel  string // debug, info, warn or error
	LogFormat string // text or json

	// Preprocess forces the analysis preparation stage even when the
	// model has no preprocess block.
	Preprocess bool

	// ExportFormat selects a writer, tcl or json. Empty disables export.
	ExportFormat string

	// ExportPath is the export destination. Empty writes to the app's
	// output writer.
	ExportPath string
}

// NewConfig validates cfg, applies defaults and returns it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}

	switch cfg.ExportFormat {
	case "", "tcl", "json":
	default:
		return nil, fmt.Errorf("invalid export format %q: must be tcl or json", cfg.ExportFormat)
	}

	return &cfg, nil
}
