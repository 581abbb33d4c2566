package decoder

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type union struct {
	key      string
	variants map[string]reflect.Type
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var unions sync.Map // map[reflect.Type]*union

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterUnion registers the concrete types for interface type T. When a
// value of type T is decoded, the string member key selects the variant,
// and an unknown or missing value is an error at that key. Each variant is a
// nil pointer to a struct which implements T, for example:
//
//	decoder.RegisterUnion[Shape]("type", map[string]Shape{
//		"circle": (*Circle)(nil),
//		"square": (*Square)(nil),
//	})
func RegisterUnion[T any](key string, variants map[string]T) {
	it := reflect.TypeFor[T]()
	if it.Kind() != reflect.Interface {
		panic(fmt.Sprintf("RegisterUnion: %v is not an interface", it))
	}
	u := &union{key: key, variants: make(map[string]reflect.Type, len(variants))}
	for name, variant := range variants {
		t := reflect.TypeOf(variant)
		if t == nil || t.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("RegisterUnion: variant %q of %v is not a pointer", name, it))
		}
		u.variants[name] = t.Elem()
	}
	unions.Store(it, u)
}

// Variants returns the sorted discriminator values registered for T
func Variants[T any]() []string {
	u, exists := lookupUnion(reflect.TypeFor[T]())
	if !exists {
		return nil
	}
	return slices.Sorted(maps.Keys(u.variants))
}

// Discriminator returns the string value of key in the JSON object data
func Discriminator(data []byte, key string) (string, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return "", &Error{Cause: fmt.Errorf("%w: expected object, got %s", ErrTypeMismatch, kindOf(data)), Raw: string(data)}
	}
	raw, exists := members[key]
	if !exists {
		return "", &Error{Path: key, Cause: ErrMissingField, Raw: string(data)}
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &Error{Path: key, Cause: fmt.Errorf("%w: expected string, got %s", ErrTypeMismatch, kindOf(raw)), Raw: string(data)}
	}
	return value, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// isUnion reports whether t is an interface which needs a variant
func isUnion(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() > 0
}

func lookupUnion(t reflect.Type) (*union, bool) {
	if u, exists := unions.Load(t); exists {
		return u.(*union), true
	}
	return nil, false
}
