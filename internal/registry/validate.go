package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	hclv2 "github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/hcl"
)

// manifestFile is the top-level structure of an embedded shape manifest.
type manifestFile struct {
	ShapeFamily *shapeFamilyManifest `hcl:"shape_family,block"`
}

// shapeFamilyManifest declares the public property surface of a family.
type shapeFamilyManifest struct {
	Family      string              `hcl:"family,label"`
	Description string              `hcl:"description,optional"`
	Properties  []*propertyManifest `hcl:"property,block"`
}

// propertyManifest declares one database property the generator reads.
type propertyManifest struct {
	Name string           `hcl:"name,label"`
	Type hclv2.Expression `hcl:"type"`
}

// ValidateParity performs a strict parity check between manifests and
// Go code. Every family must have both a handler and a manifest, the
// property sets must match, and the declared types must equal the types
// implied by the Go input struct fields.
func (r *Registry) ValidateParity(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []string

	families := make([]string, 0, len(r.shapes))
	for family := range r.shapes {
		families = append(families, family)
	}
	sort.Strings(families)

	orphaned := make([]string, 0, len(r.manifests))
	for family := range r.manifests {
		if _, ok := r.shapes[family]; !ok {
			orphaned = append(orphaned, family)
		}
	}
	sort.Strings(orphaned)
	for _, family := range orphaned {
		errs = append(errs, fmt.Sprintf("family '%s': manifest registered but no shape handler", family))
	}

	for _, family := range families {
		src, ok := r.manifests[family]
		if !ok {
			errs = append(errs, fmt.Sprintf("family '%s': shape handler registered but no manifest", family))
			continue
		}

		declared, err := parseManifest(family, src)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}

		handler := r.shapes[family]
		goInputs, err := inputFields(handler.NewInput())
		if err != nil {
			errs = append(errs, fmt.Sprintf("family '%s': %v", family, err))
			continue
		}

		goNames := make([]string, 0, len(goInputs))
		for name := range goInputs {
			goNames = append(goNames, name)
		}
		sort.Strings(goNames)
		for _, name := range goNames {
			if _, ok := declared[name]; !ok {
				errs = append(errs, fmt.Sprintf("family '%s': Go input struct reads property '%s' which is not declared in the manifest", family, name))
			}
		}
		for _, name := range sortedPropNames(declared) {
			declaredType := declared[name]
			goField, ok := goInputs[name]
			if !ok {
				errs = append(errs, fmt.Sprintf("family '%s': manifest declares property '%s' which is not read by the Go input struct", family, name))
				continue
			}
			if declaredType.Equals(cty.DynamicPseudoType) {
				logger.Warn("Manifest property declared as 'any' disables type checking.", "family", family, "property", name)
				continue
			}

			goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("family '%s', property '%s': could not imply cty type from Go field type %s: %v", family, name, goField.Type, err))
				continue
			}
			if !declaredType.Equals(goFieldType) {
				errs = append(errs, fmt.Sprintf("family '%s', property '%s': type mismatch. Manifest declares '%s' but Go field '%s' implies '%s'",
					family, name, declaredType.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shape registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Shape registry validation passed.", "family_count", len(families))
	return nil
}

// parseManifest parses an embedded manifest and returns its declared
// property types.
func parseManifest(family string, src *manifestSource) (map[string]cty.Type, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src.src, src.filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("family '%s': failed to parse manifest %s: %s", family, src.filename, diags)
	}

	var root manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("family '%s': failed to decode manifest %s: %s", family, src.filename, diags)
	}
	if root.ShapeFamily == nil {
		return nil, fmt.Errorf("family '%s': manifest %s has no shape_family block", family, src.filename)
	}
	if root.ShapeFamily.Family != family {
		return nil, fmt.Errorf("family '%s': manifest %s declares family '%s'", family, src.filename, root.ShapeFamily.Family)
	}

	declared := make(map[string]cty.Type, len(root.ShapeFamily.Properties))
	for _, prop := range root.ShapeFamily.Properties {
		ty, err := hcl.TypeExprToCtyType(prop.Type)
		if err != nil {
			return nil, fmt.Errorf("family '%s', property '%s': %w", family, prop.Name, err)
		}
		declared[prop.Name] = ty
	}
	return declared, nil
}

// inputFields maps the `osmg:` tagged fields of an input struct.
func inputFields(input any) (map[string]reflect.StructField, error) {
	if input == nil {
		return nil, fmt.Errorf("NewInput returned nil")
	}
	inputType := reflect.TypeOf(input)
	if inputType.Kind() == reflect.Ptr {
		inputType = inputType.Elem()
	}
	if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("NewInput must return a struct, got %s", inputType.Kind())
	}

	fields := make(map[string]reflect.StructField)
	for i := 0; i < inputType.NumField(); i++ {
		field := inputType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("osmg")
		tagName := strings.Split(tag, ",")[0]
		if tagName != "" && tagName != "-" {
			fields[tagName] = field
		}
	}
	return fields, nil
}

func sortedPropNames(declared map[string]cty.Type) []string {
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
