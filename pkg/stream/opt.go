package stream

import (
	"log/slog"

	// Packages
	sse "github.com/mutablelogic/go-responses/pkg/sse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt configures a Stream created with New
type Opt func(*opts)

type opts struct {
	logger   *slog.Logger
	splitter []sse.Opt
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger which receives skipped frames at debug level,
// and failures with their decode path at warning level. By default nothing
// is logged.
func WithLogger(logger *slog.Logger) Opt {
	return func(o *opts) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxFrameSize sets the size at which an unterminated frame fails the
// stream
func WithMaxFrameSize(n int) Opt {
	return func(o *opts) {
		o.splitter = append(o.splitter, sse.WithMaxFrameSize(n))
	}
}

// WithChunkSize sets the size of each read from the body
func WithChunkSize(n int) Opt {
	return func(o *opts) {
		o.splitter = append(o.splitter, sse.WithChunkSize(n))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt ...Opt) *opts {
	o := &opts{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range opt {
		fn(o)
	}
	return o
}
