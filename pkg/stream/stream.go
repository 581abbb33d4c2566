/*
stream implements a lazy, single-consumer sequence of events decoded from
a server-sent event body. Events are pulled with Next, or ranged over
with All:

	for event, err := range s.All() {
		if err != nil {
			return err
		}
		...
	}

A stream is not restartable. It ends after the end of stream sentinel,
the end of the body, or the first error, and Close releases the body at
any point.
*/
package stream

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	sse "github.com/mutablelogic/go-responses/pkg/sse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// DecodeFunc decodes a single frame, and returns sse.ErrSkip for frames
// without a payload and sse.ErrDone for the sentinel
type DecodeFunc[T any] func(frame []byte) (T, error)

// Stream is a sequence of values of type T read from a body
type Stream[T any] struct {
	sync.Mutex
	body     io.ReadCloser
	splitter *sse.Splitter
	decode   DecodeFunc[T]
	logger   *slog.Logger
	state    State
	once     sync.Once
	closeErr error
}

// State is the lifecycle state of a stream
type State uint

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Streaming State = iota // Reading events
	Completed              // Sentinel or end of body on a frame boundary
	Errored                // Transport or decode error
	Truncated              // Body ended part way through a frame
	Closed                 // Closed by the consumer while streaming
)

var (
	// Done is returned by Next when there are no more events
	Done = errors.New("end of stream")

	// ErrClosed is returned by Next after the stream was closed by
	// the consumer
	ErrClosed = errors.New("stream closed")
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a stream which reads frames from body and decodes each one
// with decode. The stream owns the body.
func New[T any](body io.ReadCloser, decode DecodeFunc[T], opts ...Opt) *Stream[T] {
	o := applyOpts(opts...)
	return &Stream[T]{
		body:     body,
		splitter: sse.NewSplitter(body, o.splitter...),
		decode:   decode,
		logger:   o.logger,
	}
}

// Close releases the body. Subsequent calls to Next return ErrClosed if
// the stream had not already ended. It is safe to call Close more than
// once, and from a goroutine other than the consumer.
func (s *Stream[T]) Close() error {
	s.Lock()
	if s.state == Streaming {
		s.state = Closed
	}
	s.Unlock()
	return s.release()
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s State) String() string {
	switch s {
	case Streaming:
		return "streaming"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	case Truncated:
		return "truncated"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// State returns the current state of the stream
func (s *Stream[T]) State() State {
	s.Lock()
	defer s.Unlock()
	return s.state
}

// Next blocks until the next value is available. It returns Done once the
// stream has ended, and returns any error exactly once, after which the
// stream has ended.
func (s *Stream[T]) Next() (T, error) {
	var zero T
	for {
		switch s.State() {
		case Streaming:
			// Continue
		case Closed:
			return zero, ErrClosed
		default:
			return zero, Done
		}

		// Read the next frame
		frame, err := s.splitter.Next()
		if err != nil {
			return zero, s.fail(err)
		}

		// Decode the frame, skipping frames without data
		value, err := s.decode(frame)
		switch {
		case err == nil:
			return value, nil
		case errors.Is(err, sse.ErrSkip):
			s.logger.Debug("skip frame", "bytes", len(frame))
		case errors.Is(err, sse.ErrDone):
			s.end(Completed)
			return zero, Done
		default:
			return zero, s.fail(err)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fail ends the stream with the state which corresponds to err, and returns
// the error for the consumer
func (s *Stream[T]) fail(err error) error {
	// Reads fail when the body is closed underneath them
	if s.State() == Closed {
		return ErrClosed
	}

	var decodeErr *decoder.Error
	switch {
	case errors.Is(err, io.EOF):
		s.end(Completed)
		return Done
	case errors.Is(err, responses.ErrTruncated):
		s.logger.Warn("stream truncated", "error", err)
		s.end(Truncated)
	case errors.As(err, &decodeErr):
		s.logger.Warn("decode failed", "path", decodeErr.Path, "error", decodeErr.Cause, "payload", decodeErr.Raw)
		s.end(Errored)
	default:
		s.logger.Warn("stream failed", "error", err)
		s.end(Errored)
	}
	return err
}

func (s *Stream[T]) end(state State) {
	s.Lock()
	if s.state == Streaming {
		s.state = state
	}
	s.Unlock()
	s.release()
}

func (s *Stream[T]) release() error {
	s.once.Do(func() {
		if s.body != nil {
			s.closeErr = s.body.Close()
		}
	})
	return s.closeErr
}
