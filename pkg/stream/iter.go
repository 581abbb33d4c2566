package stream

import (
	"context"
	"errors"
	"iter"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is a value or an error received from a channel
type Result[T any] struct {
	Value T
	Err   error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// All returns an iterator over the remaining values. An error is yielded
// at most once, and ends the iteration. The stream is closed when the
// iteration ends, including when the loop body breaks early.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for {
			value, err := s.Next()
			if errors.Is(err, Done) {
				return
			}
			if !yield(value, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Channel returns a channel which receives the remaining values, and is
// closed when the stream ends. Cancelling the context closes the stream.
func (s *Stream[T]) Channel(ctx context.Context) <-chan Result[T] {
	ch := make(chan Result[T])
	stop := context.AfterFunc(ctx, func() {
		s.Close()
	})
	go func() {
		defer close(ch)
		defer stop()
		for value, err := range s.All() {
			select {
			case ch <- Result[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Collect returns all remaining values, or the values received before the
// first error together with that error
func Collect[T any](s *Stream[T]) ([]T, error) {
	var result []T
	for value, err := range s.All() {
		if err != nil {
			return result, err
		}
		result = append(result, value)
	}
	return result, nil
}
