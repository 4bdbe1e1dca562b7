// Package schema declares the HCL surface of model files. The structs
// here carry `hcl:` tags mirroring the file format one to one; each
// block keeps its body opaque so the converter can pull the attributes
// out as lazy expressions.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// LabeledBlock is a top-level block that carries a name label, e.g.
// `material "steel" { ... }`.
type LabeledBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// BareBlock is a top-level block without a label, e.g. `model { ... }`.
type BareBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// File represents the top-level structure of a single model file,
// containing every block kind the format knows. There is no catch-all
// remainder: a block kind the format does not know is a decode error,
// so typos surface instead of being dropped.
type File struct {
	Model        *BareBlock      `hcl:"model,block"`
	Materials    []*LabeledBlock `hcl:"material,block"`
	Levels       []*LabeledBlock `hcl:"level,block"`
	GridLines    []*LabeledBlock `hcl:"gridline,block"`
	GridImports  []*BareBlock    `hcl:"grid_import,block"`
	Sections     []*LabeledBlock `hcl:"section,block"`
	Columns      []*LabeledBlock `hcl:"columns,block"`
	Beams        []*LabeledBlock `hcl:"beams,block"`
	SurfaceLoads []*LabeledBlock `hcl:"surface_load,block"`
	Preprocess   *BareBlock      `hcl:"preprocess,block"`

	// Path is the file the blocks came from, set by the loader. It is
	// not part of the HCL surface.
	Path string
}
