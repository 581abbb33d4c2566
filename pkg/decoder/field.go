package decoder

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type field struct {
	name     string
	index    []int
	typ      reflect.Type
	required bool
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var fieldCache sync.Map // map[reflect.Type][]field

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fieldsOf returns the decodable fields of a struct type, with the fields of
// embedded structs promoted
func fieldsOf(t reflect.Type) []field {
	if fields, exists := fieldCache.Load(t); exists {
		return fields.([]field)
	}
	fields, _ := fieldCache.LoadOrStore(t, dominantFields(typeFields(t, nil)))
	return fields.([]field)
}

// hasRequired reports whether t is a struct with a required field
func hasRequired(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	return slices.ContainsFunc(fieldsOf(t), func(f field) bool {
		return f.required
	})
}

func typeFields(t reflect.Type, index []int) []field {
	var result []field
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fieldIndex := append(slices.Clone(index), i)

		// Promote the fields of untagged embedded structs
		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if !sf.IsExported() {
					continue
				}
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				result = append(result, typeFields(ft, fieldIndex)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		result = append(result, field{
			name:     name,
			index:    fieldIndex,
			typ:      sf.Type,
			required: slices.Contains(strings.Split(opts, ","), "required"),
		})
	}
	return result
}

// dominantFields drops promoted fields which are shadowed by a field of the
// same name at a shallower depth
func dominantFields(fields []field) []field {
	depth := make(map[string]int, len(fields))
	for _, f := range fields {
		if d, exists := depth[f.name]; !exists || len(f.index) < d {
			depth[f.name] = len(f.index)
		}
	}
	return slices.DeleteFunc(fields, func(f field) bool {
		return len(f.index) > depth[f.name]
	})
}

// fieldByIndex returns the field at index, allocating embedded pointers
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
