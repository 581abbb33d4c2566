package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Enum decodes the JSON string data into v, returning an ErrUnknownVariant
// error if the string is not one of values. It is intended to be called
// from UnmarshalJSON:
//
//	func (s *Status) UnmarshalJSON(data []byte) error {
//		return decoder.Enum(data, s, StatusOpen, StatusClosed)
//	}
func Enum[T ~string](data []byte, v *T, values ...T) error {
	data = bytes.TrimSpace(data)
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &Error{Cause: fmt.Errorf("%w: expected string, got %s", ErrTypeMismatch, kindOf(data)), Raw: string(data)}
	}
	if !slices.Contains(values, T(str)) {
		return &Error{Cause: fmt.Errorf("%w: %q", ErrUnknownVariant, str), Raw: string(data)}
	}
	*v = T(str)
	return nil
}
