package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/section"
)

// ShapeHandler holds the compiled Go parts of a shape family generator.
type ShapeHandler struct {
	// NewInput returns a fresh instance of the family's input struct,
	// whose `osmg:` tags name the database properties it consumes.
	NewInput func() any
	// Generate builds a section from a populated input struct.
	Generate func(name string, mat *material.Material, input any) (*section.Section, error)
}

// Module is the interface a shapes package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered shape handlers and manifests for a
// single application instance.
type Registry struct {
	mu        sync.RWMutex
	shapes    map[string]*ShapeHandler
	manifests map[string]*manifestSource
}

// manifestSource is an embedded manifest kept unparsed until validation.
type manifestSource struct {
	filename string
	src      []byte
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		shapes:    make(map[string]*ShapeHandler),
		manifests: make(map[string]*manifestSource),
	}
}

// RegisterShape registers the generator for a shape family.
func (r *Registry) RegisterShape(family string, handler *ShapeHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shapes[family]; exists {
		panic(fmt.Sprintf("shape handler for family '%s' already registered", family))
	}
	slog.Debug("Registering shape handler.", "family", family)
	r.shapes[family] = handler
}

// RegisterManifest registers the embedded manifest source describing a
// shape family's properties. Parsing happens during validation.
func (r *Registry) RegisterManifest(family, filename string, src []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.manifests[family]; exists {
		panic(fmt.Sprintf("manifest for family '%s' already registered", family))
	}
	slog.Debug("Registering shape manifest.", "family", family, "file", filename)
	r.manifests[family] = &manifestSource{filename: filename, src: src}
}

// Shape looks up the handler for a shape family.
func (r *Registry) Shape(family string) (*ShapeHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.shapes[family]
	if !ok {
		return nil, fmt.Errorf("no shape handler registered for family %q", family)
	}
	return h, nil
}

// Families returns the registered family names sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.shapes))
	for family := range r.shapes {
		out = append(out, family)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = New()

// Default returns the process-wide registry that shapes packages hook
// into from their init functions.
func Default() *Registry {
	return defaultRegistry
}
