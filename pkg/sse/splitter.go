/*
sse splits a server-sent event stream into frames, and decodes the
data lines of each frame into a payload.
*/
package sse

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	// Packages
	responses "github.com/mutablelogic/go-responses"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Splitter reads chunks from a source and returns complete frames, each
// terminated by a blank line. It is not safe for concurrent use.
type Splitter struct {
	src   io.Reader
	buf   []byte
	chunk []byte
	scan  int   // offset in buf to resume searching for a terminator
	err   error // error returned by the source
	max   int
}

// Opt is an option for a Splitter
type Opt func(*Splitter)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultChunkSize    = 4 * 1024
	DefaultMaxFrameSize = 16 * 1024 * 1024
)

var (
	terminator = []byte("\n\n")
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewSplitter returns a splitter which reads from src
func NewSplitter(src io.Reader, opts ...Opt) *Splitter {
	s := &Splitter{
		src:   src,
		chunk: make([]byte, DefaultChunkSize),
		max:   DefaultMaxFrameSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithChunkSize sets the maximum number of bytes requested from the source
// on each read
func WithChunkSize(n int) Opt {
	return func(s *Splitter) {
		if n > 0 {
			s.chunk = make([]byte, n)
		}
	}
}

// WithMaxFrameSize sets the size at which an unterminated frame is
// considered malformed. Zero removes the limit.
func WithMaxFrameSize(n int) Opt {
	return func(s *Splitter) {
		if n >= 0 {
			s.max = n
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Next returns the next frame including its terminator. It returns io.EOF
// when the source ends on a frame boundary, responses.ErrTruncated when the
// source ends part way through a frame, and an error wrapping
// responses.ErrTransport when the source fails.
func (s *Splitter) Next() ([]byte, error) {
	for {
		if i := bytes.Index(s.buf[s.scan:], terminator); i >= 0 {
			end := s.scan + i + len(terminator)
			frame := bytes.Clone(s.buf[:end])
			s.buf = s.buf[:copy(s.buf, s.buf[end:])]
			s.scan = 0
			return frame, nil
		}

		// A terminator split across reads starts in the last byte
		s.scan = max(0, len(s.buf)-len(terminator)+1)
		if s.max > 0 && len(s.buf) > s.max {
			return nil, responses.ErrMalformedFrame.Withf("no frame terminator in %d bytes", len(s.buf))
		}

		// Return the source error once the buffer is drained
		if s.err != nil {
			return nil, s.end()
		}
		n, err := s.src.Read(s.chunk)
		s.buf = append(s.buf, s.chunk[:n]...)
		if err != nil {
			s.err = err
		}
	}
}

// Buffered returns the number of bytes read from the source which are not
// yet part of a returned frame
func (s *Splitter) Buffered() int {
	return len(s.buf)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Splitter) end() error {
	switch {
	case !errors.Is(s.err, io.EOF):
		return fmt.Errorf("%w: %w", responses.ErrTransport, s.err)
	case len(s.buf) > 0:
		return responses.ErrTruncated.Withf("%d bytes after the last frame", len(s.buf))
	default:
		return io.EOF
	}
}
