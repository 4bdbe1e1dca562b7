// Package addr provides the structured representation of block
// addresses, based on the canonical format `kind.name`.
//
// Addresses identify configuration blocks throughout the pipeline: the
// depends_on meta-argument, the dependency graph, builder diagnostics
// and the evaluator's export keys all speak addresses.
package addr

import (
	"fmt"
	"regexp"
	"strings"
)

// Block kinds, in the order they appear in a typical model definition.
const (
	KindModel       = "model"
	KindMaterial    = "material"
	KindLevel       = "level"
	KindGridLine    = "gridline"
	KindGridImport  = "grid_import"
	KindSection     = "section"
	KindColumns     = "columns"
	KindBeams       = "beams"
	KindSurfaceLoad = "surface_load"
	KindPreprocess  = "preprocess"
)

// Kinds lists every known block kind.
var Kinds = []string{
	KindModel,
	KindMaterial,
	KindLevel,
	KindGridLine,
	KindGridImport,
	KindSection,
	KindColumns,
	KindBeams,
	KindSurfaceLoad,
	KindPreprocess,
}

// nameRegex is used to validate the name part of an address.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Address is the structured representation of a unique block
// identifier.
type Address struct {
	Kind string
	Name string
}

// New builds an address from its parts without validation.
func New(kind, name string) Address {
	return Address{Kind: kind, Name: name}
}

// ValidKind reports whether kind is a known block kind.
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ValidName reports whether name is usable as the name part of an
// address.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// Parse creates an Address by parsing its canonical string
// representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("address cannot be empty")
	}

	kind, name, ok := strings.Cut(raw, ".")
	if !ok {
		return Address{}, fmt.Errorf("invalid address format: %q (want kind.name)", raw)
	}
	if !ValidKind(kind) {
		return Address{}, fmt.Errorf("unknown block kind %q in address %q", kind, raw)
	}
	if !nameRegex.MatchString(name) {
		return Address{}, fmt.Errorf("invalid block name %q in address %q", name, raw)
	}

	return Address{Kind: kind, Name: name}, nil
}

// String serializes the Address into its canonical string
// representation.
func (a Address) String() string {
	return a.Kind + "." + a.Name
}
