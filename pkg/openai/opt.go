package openai

import (
	"log/slog"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	responses "github.com/mutablelogic/go-responses"
	stream "github.com/mutablelogic/go-responses/pkg/stream"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt configures a Client created with New
type Opt func(*opts) error

type opts struct {
	endpoint     string
	transport    Transport
	client       []client.ClientOpt
	tracer       trace.Tracer
	logger       *slog.Logger
	organization string
	project      string
	stream       []stream.Opt
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptEndpoint sets the API endpoint, which defaults to
// "https://api.openai.com/v1"
func OptEndpoint(endpoint string) Opt {
	return func(o *opts) error {
		if endpoint = strings.TrimSpace(endpoint); endpoint == "" {
			return responses.ErrBadParameter.With("empty endpoint")
		}
		o.endpoint = strings.TrimSuffix(endpoint, "/")
		return nil
	}
}

// OptTransport replaces the HTTP transport. The API key, endpoint,
// organization and project are then the concern of the transport.
func OptTransport(transport Transport) Opt {
	return func(o *opts) error {
		if transport == nil {
			return responses.ErrBadParameter.With("nil transport")
		}
		o.transport = transport
		return nil
	}
}

// OptHTTPClient passes options to the underlying HTTP client, for example
// client.OptTrace or client.OptTimeout
func OptHTTPClient(clientOpts ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.client = append(o.client, clientOpts...)
		return nil
	}
}

// OptTracer sets the tracer which records a span for each request
func OptTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// OptLogger sets the logger for requests and stream events. By default
// nothing is logged.
func OptLogger(logger *slog.Logger) Opt {
	return func(o *opts) error {
		if logger == nil {
			return responses.ErrBadParameter.With("nil logger")
		}
		o.logger = logger
		return nil
	}
}

// OptOrganization sets the organization which requests are billed to
func OptOrganization(id string) Opt {
	return func(o *opts) error {
		o.organization = strings.TrimSpace(id)
		return nil
	}
}

// OptProject sets the project which requests are billed to
func OptProject(id string) Opt {
	return func(o *opts) error {
		o.project = strings.TrimSpace(id)
		return nil
	}
}

// OptMaxFrameSize sets the largest event a stream accepts
func OptMaxFrameSize(n int) Opt {
	return func(o *opts) error {
		if n <= 0 {
			return responses.ErrBadParameter.Withf("invalid frame size %d", n)
		}
		o.stream = append(o.stream, stream.WithMaxFrameSize(n))
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt ...Opt) (*opts, error) {
	o := &opts{
		endpoint: endPoint,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, fn := range opt {
		if err := fn(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
