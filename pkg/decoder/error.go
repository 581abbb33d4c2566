package decoder

import (
	"errors"
	"fmt"
	"strings"

	// Packages
	responses "github.com/mutablelogic/go-responses"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Error records where in a JSON document decoding failed. Path is the
// dotted and bracketed location of the failing value (for example
// "response.output[2].status") and is empty when the document itself
// could not be decoded. Raw is the complete payload which was being
// decoded.
type Error struct {
	Path  string
	Cause error
	Raw   string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrMissingField   = errors.New("missing field")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrSyntax         = errors.New("syntax error")
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", responses.ErrSchemaMismatch, e.Cause)
	}
	return fmt.Sprintf("%v at %q: %v", responses.ErrSchemaMismatch, e.Path, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports true for responses.ErrSchemaMismatch, so callers can test the
// category without unwrapping to the cause
func (e *Error) Is(target error) bool {
	return target == responses.ErrSchemaMismatch
}

// Rebase returns err with its path placed under prefix. Errors which are not
// decode errors are returned as a decode error at prefix.
func Rebase(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Path: joinPath(prefix, e.Path), Cause: e.Cause, Raw: e.Raw}
	}
	return &Error{Path: prefix, Cause: err}
}

// Field returns a path made from object keys and array indexes, in the
// same format used by Error.Path
func Field(elems ...any) string {
	var path string
	for _, elem := range elems {
		switch v := elem.(type) {
		case int:
			path = joinPath(path, indexSegment(v))
		default:
			path = joinPath(path, fmt.Sprint(v))
		}
	}
	return path
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func indexSegment(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case strings.HasPrefix(path, "["):
		return prefix + path
	default:
		return prefix + "." + path
	}
}
