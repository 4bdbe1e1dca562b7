// Package workspace scaffolds and checks model workspaces.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterModel = `model {
  description = "starter frame"
}

material "steel" {
  preset = "A992Fy50"
}

level "base" {
  elevation = 0
  restraint = "fixed"
}

level "1" {
  elevation = 144
}

gridline "A" {
  start = [0, 0]
  end   = [360, 0]
}

gridline "B" {
  start = [0, 360]
  end   = [360, 360]
}

gridline "1" {
  start = [0, 0]
  end   = [0, 360]
}

gridline "2" {
  start = [360, 0]
  end   = [360, 360]
}

section "W24X94" {
  family   = "W"
  material = material.steel
  source   = "aisc"
}

section "W18X35" {
  family   = "W"
  material = material.steel
  source   = "aisc"
}

columns "gravity" {
  section = section.W24X94
}

beams "floor" {
  section = section.W18X35
}

surface_load "floor_dl" {
  magnitude = 0.347222
}

preprocess {
  floor_slabs = true
  self_weight = true
}
`

const starterReadme = `# Model workspace

Model definitions live in *.osmg.hcl files. Useful commands:

    osmg build            # assemble and summarize
    osmg report           # full model report
    osmg preprocess       # level mass table
    osmg export --format tcl --out model.tcl

The exported Tcl script runs under OpenSees.
`

// Init scaffolds a model workspace at dir: a starter model definition
// and a README. It refuses to overwrite existing files and returns the
// paths it created.
func Init(dir string) ([]string, error) {
	files := []struct {
		name    string
		content string
	}{
		{"model.osmg.hcl", starterModel},
		{"README.md", starterReadme},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating workspace directory: %w", err)
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("error writing %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}
