/*
decoder implements a JSON decoder which records the path to the value
which failed to decode. It follows the rules of encoding/json for struct
tags, pointers, slices and maps, and adds the "required" tag option for
fields which must be present:

	type Event struct {
		Type     string `json:"type,required"`
		Sequence uint64 `json:"sequence_number,required"`
	}

Interface types are decoded when registered with RegisterUnion, by
selecting the concrete type from a discriminator key.
*/
package decoder

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type decodeState struct {
	raw  []byte
	path []string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	nullLiteral       = []byte("null")
	unmarshalerType   = reflect.TypeFor[json.Unmarshaler]()
	textUnmarshalType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Decode returns the value of type T decoded from data. On error the zero
// value is returned with an *Error.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := DecodeInto(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeInto decodes data into v, which needs to be a non-nil pointer.
// The error returned is always an *Error.
func DecodeInto(data []byte, v any) error {
	d := &decodeState{raw: data}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return d.errorf(ErrTypeMismatch, "decode target must be a non-nil pointer, got %T", v)
	}
	if !json.Valid(data) {
		var discard any
		return d.errorf(ErrSyntax, "%v", json.Unmarshal(data, &discard))
	}
	return d.value(bytes.TrimSpace(data), rv.Elem())
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - VALUES

func (d *decodeState) value(data []byte, v reflect.Value) error {
	null := bytes.Equal(data, nullLiteral)

	// Pointers are allocated on demand, and null sets them to nil
	if v.Kind() == reflect.Pointer {
		if null {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return d.value(data, v.Elem())
	}

	// Types which decode themselves
	if v.CanAddr() {
		if pt := v.Addr().Type(); pt.Implements(unmarshalerType) {
			if err := v.Addr().Interface().(json.Unmarshaler).UnmarshalJSON(data); err != nil {
				return d.wrap(err)
			}
			return nil
		} else if pt.Implements(textUnmarshalType) {
			return d.leaf(data, v)
		}
	}

	// Unions and structs with required fields need an object, and null
	// leaves any other value unchanged
	if null {
		if isUnion(v.Type()) || hasRequired(v.Type()) {
			return d.mismatch("object", data)
		}
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return d.object(data, v)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return d.leaf(data, v)
		}
		return d.array(data, v)
	case reflect.Array:
		return d.array(data, v)
	case reflect.Map:
		return d.mapping(data, v)
	case reflect.Interface:
		if v.NumMethod() == 0 {
			return d.leaf(data, v)
		}
		return d.union(data, v)
	default:
		return d.leaf(data, v)
	}
}

func (d *decodeState) object(data []byte, v reflect.Value) error {
	if kindOf(data) != "object" {
		return d.mismatch("object", data)
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return d.wrap(err)
	}
	for _, f := range fieldsOf(v.Type()) {
		raw, exists := members[f.name]
		null := exists && bytes.Equal(raw, nullLiteral)
		d.push(f.name)
		switch {
		case !exists && f.required:
			return d.fail(ErrMissingField)
		case !exists:
			// Absent optional fields are left unchanged
		case null && f.required && f.typ.Kind() != reflect.Pointer:
			// Required fields are only nullable when they are pointers
			return d.errorf(ErrMissingField, "null")
		case null && f.typ.Kind() != reflect.Pointer:
			// Optional fields are left unchanged
		default:
			if err := d.value(raw, fieldByIndex(v, f.index)); err != nil {
				return err
			}
		}
		d.pop()
	}
	return nil
}

func (d *decodeState) array(data []byte, v reflect.Value) error {
	if kindOf(data) != "array" {
		return d.mismatch("array", data)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return d.wrap(err)
	}
	if v.Kind() == reflect.Slice {
		v.Set(reflect.MakeSlice(v.Type(), len(items), len(items)))
	}
	for i, item := range items {
		if i >= v.Len() {
			break
		}
		d.push(indexSegment(i))
		if err := d.value(item, v.Index(i)); err != nil {
			return err
		}
		d.pop()
	}

	// Zero any remaining array elements
	for i := len(items); i < v.Len(); i++ {
		v.Index(i).SetZero()
	}
	return nil
}

func (d *decodeState) mapping(data []byte, v reflect.Value) error {
	t := v.Type()
	if t.Key().Kind() != reflect.String {
		return d.leaf(data, v)
	}
	if kindOf(data) != "object" {
		return d.mismatch("object", data)
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return d.wrap(err)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(t, len(members)))
	}

	// Keys are visited in order, so the same document always reports the same path
	for _, key := range slices.Sorted(maps.Keys(members)) {
		d.push(key)
		elem := reflect.New(t.Elem()).Elem()
		if err := d.value(members[key], elem); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
		d.pop()
	}
	return nil
}

func (d *decodeState) union(data []byte, v reflect.Value) error {
	u, exists := lookupUnion(v.Type())
	if !exists {
		return d.errorf(ErrTypeMismatch, "no variants registered for %v", v.Type())
	}
	if kindOf(data) != "object" {
		return d.mismatch("object", data)
	}
	name, err := Discriminator(data, u.key)
	if err != nil {
		return d.wrap(err)
	}
	t, exists := u.variants[name]
	if !exists {
		d.push(u.key)
		return d.errorf(ErrUnknownVariant, "%q", name)
	}
	ptr := reflect.New(t)
	if err := d.value(data, ptr.Elem()); err != nil {
		return err
	}
	v.Set(ptr)
	return nil
}

func (d *decodeState) leaf(data []byte, v reflect.Value) error {
	target := v
	if !v.CanAddr() {
		target = reflect.New(v.Type()).Elem()
	}
	if err := json.Unmarshal(data, target.Addr().Interface()); err != nil {
		return d.wrap(err)
	}
	if !v.CanAddr() {
		v.Set(target)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - PATH AND ERRORS

func (d *decodeState) push(segment string) {
	d.path = append(d.path, segment)
}

func (d *decodeState) pop() {
	d.path = d.path[:len(d.path)-1]
}

func (d *decodeState) pathString() string {
	var path string
	for _, segment := range d.path {
		path = joinPath(path, segment)
	}
	return path
}

func (d *decodeState) fail(cause error) *Error {
	return &Error{Path: d.pathString(), Cause: cause, Raw: string(d.raw)}
}

func (d *decodeState) errorf(cause error, format string, args ...any) *Error {
	return d.fail(fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...)))
}

func (d *decodeState) mismatch(expected string, data []byte) *Error {
	return d.errorf(ErrTypeMismatch, "expected %s, got %s", expected, kindOf(data))
}

// wrap converts an error from encoding/json or an Unmarshaler into an
// *Error at the current path
func (d *decodeState) wrap(err error) error {
	var decodeErr *Error
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &decodeErr):
		return &Error{Path: joinPath(d.pathString(), decodeErr.Path), Cause: decodeErr.Cause, Raw: string(d.raw)}
	case errors.As(err, &typeErr):
		return d.errorf(ErrTypeMismatch, "expected %v, got %s", typeErr.Type, typeErr.Value)
	case errors.As(err, &syntaxErr):
		return d.errorf(ErrSyntax, "%v", syntaxErr)
	default:
		return d.fail(err)
	}
}

// kindOf returns the JSON kind of a valid, trimmed JSON value
func kindOf(data []byte) string {
	if len(data) == 0 {
		return "nothing"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
