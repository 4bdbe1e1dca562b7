// Package config defines the format-agnostic configuration model for a
// building definition, along with the core interfaces (Loader,
// Converter) for loading and interpreting model files.
//
// The `config.Definition` is the single source of truth for the `dag`
// and `builder` packages. Concrete implementations of the interfaces
// live in the `hcl` package.
package config
