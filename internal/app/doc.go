// Package app contains the core application logic. It wires the pipeline
// stages (discovery, loading, assembly, preprocessing, export) behind a
// single Run entrypoint, decoupled from any specific command surface.
package app
