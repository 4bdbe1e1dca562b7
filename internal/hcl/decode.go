package hcl

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeArgs evaluates block arguments and binds them to the fields of
// target, driven by `osmg:"name"` struct tags. Fields may carry a
// `default:"..."` tag or the `,optional` flag; a field with neither is
// a required argument. Arguments that match no field are an error.
func DecodeArgs(args map[string]hcl.Expression, evalCtx *hcl.EvalContext, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	known := make(map[string]bool, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)

		if !fieldDef.IsExported() || !fieldVal.CanSet() {
			continue
		}

		tag := fieldDef.Tag.Get("osmg")
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "" || name == "-" {
			continue
		}
		optional := len(parts) > 1 && parts[1] == "optional"
		known[name] = true

		expr, provided := args[name]
		if !provided {
			if raw, ok := fieldDef.Tag.Lookup("default"); ok {
				if err := applyDefault(raw, fieldVal, name); err != nil {
					return err
				}
				continue
			}
			if optional {
				continue
			}
			return fmt.Errorf("missing required argument %q", name)
		}

		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate argument %q: %w", name, diags)
		}
		if err := decodeValue(val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode argument %q: %w", name, err)
		}
	}

	var unknown []string
	for name := range args {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		name := unknown[0]
		return fmt.Errorf("unsupported argument %q at %s", name, args[name].Range())
	}

	return nil
}

// decodeValue populates a Go value from an evaluated cty value. The
// target's implied cty type drives the conversion, so tuples become
// lists, objects become maps or cty-tagged structs, and numbers unify.
func decodeValue(val cty.Value, goVal any) error {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	goType := reflect.ValueOf(goVal).Elem().Type()
	implied, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
	if err != nil {
		return fmt.Errorf("cannot imply type for %s: %w", goType.String(), err)
	}

	converted, err := convert.Convert(val, implied)
	if err != nil {
		return fmt.Errorf("cannot convert value of type %s to %s: %w",
			val.Type().FriendlyName(), implied.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, goVal)
}

// applyDefault parses a default tag into a struct field.
func applyDefault(raw string, fieldVal reflect.Value, name string) error {
	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid default %q for argument %q: %w", raw, name, err)
		}
		fieldVal.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid default %q for argument %q: %w", raw, name, err)
		}
		fieldVal.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid default %q for argument %q: %w", raw, name, err)
		}
		fieldVal.SetInt(n)
	default:
		return fmt.Errorf("argument %q: default values are only supported for strings, numbers and booleans", name)
	}
	return nil
}
