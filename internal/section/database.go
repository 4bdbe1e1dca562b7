package section

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound reports a shape label with no row in the database.
var ErrNotFound = errors.New("shape not found in database")

//go:embed aisc.json
var embedded embed.FS

// Database is a shape table: label to property to value.
type Database struct {
	rows map[string]map[string]float64
}

// Format identifies the serialization of a shape database.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// LoadDatabase parses a shape table from r in the given format. JSON
// and YAML tables share the same layout.
func LoadDatabase(r io.Reader, format Format) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading shape database: %w", err)
	}

	rows := make(map[string]map[string]float64)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parsing shape database: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parsing shape database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown shape database format %q", format)
	}
	return &Database{rows: rows}, nil
}

// OpenDatabase loads a shape table from a file, picking the format from
// the extension (.json, .yaml, .yml).
func OpenDatabase(path string) (*Database, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("shape database %s: unsupported extension", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shape database: %w", err)
	}
	defer f.Close()

	db, err := LoadDatabase(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

var loadEmbedded = sync.OnceValues(func() (*Database, error) {
	f, err := embedded.Open("aisc.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDatabase(f, FormatJSON)
})

// Embedded returns the compiled-in AISC shape table subset.
func Embedded() (*Database, error) {
	return loadEmbedded()
}

// Row returns the property row for a shape label.
func (d *Database) Row(label string) (map[string]float64, error) {
	row, ok := d.rows[label]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, label)
	}
	return row, nil
}

// Labels returns all shape labels sorted.
func (d *Database) Labels() []string {
	out := make([]string, 0, len(d.rows))
	for label := range d.rows {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
