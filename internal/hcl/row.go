package hcl

import (
	"fmt"
	"reflect"
	"strings"
)

// DecodeRow binds a shape database row to the fields of target, using
// the same `osmg:"name"` tag convention as DecodeArgs. Every tagged
// field must be a float64 and must be present in the row unless marked
// optional.
func DecodeRow(row map[string]float64, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

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

		if fieldVal.Kind() != reflect.Float64 {
			return fmt.Errorf("shape property %q must bind to a float64 field, not %s",
				name, fieldVal.Kind())
		}

		v, ok := row[name]
		if !ok {
			if optional {
				continue
			}
			return fmt.Errorf("shape property %q missing", name)
		}
		fieldVal.SetFloat(v)
	}

	return nil
}
