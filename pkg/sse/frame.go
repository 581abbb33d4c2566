package sse

import (
	"errors"
	"strings"

	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	unicode "golang.org/x/text/encoding/unicode"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DataPrefix = "data: "
	Sentinel   = "[DONE]"
)

var (
	// ErrDone is returned by DecodeFrame for the end of stream sentinel
	ErrDone = errors.New("done")

	// ErrSkip is returned by DecodeFrame for frames without data, such
	// as comments and keep-alives
	ErrSkip = errors.New("skip")
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Payload returns the data of a frame. Each line with the data prefix is
// trimmed and the results are joined without a separator. Other lines are
// ignored. Invalid UTF-8 is replaced rather than rejected.
func Payload(frame []byte) string {
	var payload strings.Builder
	for line := range strings.Lines(lossy(frame)) {
		line = strings.TrimRight(line, "\r\n")
		if data, ok := strings.CutPrefix(line, DataPrefix); ok {
			payload.WriteString(strings.TrimSpace(data))
		}
	}
	return payload.String()
}

// DecodeFrame returns the value of type T decoded from the payload of a
// frame. It returns ErrDone for the sentinel, ErrSkip for an empty
// payload, and a *decoder.Error when the payload does not decode.
func DecodeFrame[T any](frame []byte) (T, error) {
	var zero T
	switch payload := Payload(frame); payload {
	case "":
		return zero, ErrSkip
	case Sentinel:
		return zero, ErrDone
	default:
		return decoder.Decode[T]([]byte(payload))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func lossy(data []byte) string {
	if text, err := unicode.UTF8.NewDecoder().Bytes(data); err == nil {
		return string(text)
	}
	return strings.ToValidUTF8(string(data), "�")
}
