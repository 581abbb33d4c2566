package openai

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// The error body, either at the top level or under "error". Code needs to
// be present but may be null.
type errorBody struct {
	Code    *string `json:"code,required"`
	Message string  `json:"message,required"`
	Param   *string `json:"param"`
	Type    string  `json:"type"`
}

type errorEnvelope struct {
	Error *errorBody `json:"error,required"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Error bodies larger than this are truncated
	maxErrorBody = 1 << 20
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ResponseError reads the body of a response which is not a success, and
// returns an *APIError when it holds an error envelope, or an
// *UnexpectedResponseError otherwise. The body is not closed.
func ResponseError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%w: %w", responses.ErrTransport, err)
	}
	return DecodeError(resp.StatusCode, data)
}

// DecodeError returns an *APIError when data is an error envelope, or an
// *UnexpectedResponseError otherwise
func DecodeError(status int, data []byte) error {
	if envelope, err := decoder.Decode[errorEnvelope](data); err == nil && envelope.Error != nil {
		return newAPIError(status, *envelope.Error)
	} else if body, err := decoder.Decode[errorBody](data); err == nil {
		return newAPIError(status, body)
	}
	return &responses.UnexpectedResponseError{
		Status: status,
		Body:   string(data),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newAPIError(status int, body errorBody) *responses.APIError {
	return &responses.APIError{
		Status:  status,
		Code:    types.Value(body.Code),
		Message: body.Message,
		Param:   types.Value(body.Param),
		Type:    body.Type,
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// decodePath returns the path of a decode error, for logging
func decodePath(err error) string {
	var decodeErr *decoder.Error
	if errors.As(err, &decodeErr) {
		return decodeErr.Path
	}
	return ""
}
