package responses

import (
	"fmt"
	"net/http"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrInternalServerError
	ErrTransport
	ErrTruncated
	ErrMalformedFrame
	ErrSchemaMismatch
	ErrAPI
	ErrUnexpectedResponse
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// APIError is returned when the server responds with a non-2xx status and
// a body which decodes as an error envelope
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
	Type    string `json:"type,omitempty"`
}

// UnexpectedResponseError is returned when the server responds with a
// non-2xx status and a body which is not an error envelope
type UnexpectedResponseError struct {
	Status int
	Body   string
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInternalServerError:
		return "internal server error"
	case ErrTransport:
		return "transport error"
	case ErrTruncated:
		return "stream ended with incomplete data"
	case ErrMalformedFrame:
		return "malformed frame"
	case ErrSchemaMismatch:
		return "schema mismatch"
	case ErrAPI:
		return "api error"
	case ErrUnexpectedResponse:
		return "unexpected response"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

func (e *APIError) Error() string {
	var str strings.Builder
	str.WriteString(ErrAPI.Error())
	if e.Status != 0 {
		fmt.Fprintf(&str, " (status %d)", e.Status)
	}
	if e.Code != "" {
		str.WriteString(": ")
		str.WriteString(e.Code)
	}
	if e.Message != "" {
		str.WriteString(": ")
		str.WriteString(e.Message)
	}
	return str.String()
}

// Unwrap returns ErrAPI, so that errors.Is(err, ErrAPI) is true
func (e *APIError) Unwrap() error {
	return ErrAPI
}

// StatusText returns the HTTP status text for the error
func (e *APIError) StatusText() string {
	return http.StatusText(e.Status)
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%v: status %d, body %q", ErrUnexpectedResponse, e.Status, e.Body)
}

// Unwrap returns ErrUnexpectedResponse, so that
// errors.Is(err, ErrUnexpectedResponse) is true
func (e *UnexpectedResponseError) Unwrap() error {
	return ErrUnexpectedResponse
}
