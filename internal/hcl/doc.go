// Package hcl is the HCL-specific implementation of the config loading
// seam. The Loader parses model files into their raw schema form, the
// Converter merges them into a config.Definition, and DecodeArgs binds
// block arguments to Go structs once the builder evaluates them.
package hcl
