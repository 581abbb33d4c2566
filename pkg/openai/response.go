package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	httpclient "github.com/mutablelogic/go-responses/pkg/httpclient"
	opt "github.com/mutablelogic/go-responses/pkg/opt"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
	sse "github.com/mutablelogic/go-responses/pkg/sse"
	stream "github.com/mutablelogic/go-responses/pkg/stream"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Events is a stream of response events
type Events = stream.Stream[schema.StreamEvent]

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateResponse creates a model response and waits for it to complete
func (c *Client) CreateResponse(ctx context.Context, params schema.ResponseCreateParams) (result *schema.Response, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "CreateResponse",
		attribute.String("request", types.Stringify(params)),
	)
	defer func() { endSpan(err) }()

	params.Stream = types.Ptr(false)
	return do[schema.Response](ctx, c, httpclient.Request{
		Method: http.MethodPost,
		Path:   []string{"responses"},
		Body:   params,
	})
}

// CreateResponseStream creates a model response and returns its events as
// soon as the response headers are received
func (c *Client) CreateResponseStream(ctx context.Context, params schema.ResponseCreateParams) (result *Events, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "CreateResponseStream",
		attribute.String("request", types.Stringify(params)),
	)
	defer func() { endSpan(err) }()

	params.Stream = types.Ptr(true)
	return c.doStream(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   []string{"responses"},
		Body:   params,
	})
}

// RetrieveResponse returns a response. The opt.WithInclude option adds
// output data to the response.
func (c *Client) RetrieveResponse(ctx context.Context, id string, opts ...opt.Opt) (result *schema.Response, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "RetrieveResponse",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	} else if err := validateId(id); err != nil {
		return nil, err
	}
	return do[schema.Response](ctx, c, httpclient.Request{
		Method: http.MethodGet,
		Path:   []string{"responses", id},
		Query:  o.Query(opt.Include),
	})
}

// RetrieveResponseStream returns the events of a background response. The
// opt.WithStartingAfter option resumes the stream after an event sequence
// number.
func (c *Client) RetrieveResponseStream(ctx context.Context, id string, opts ...opt.Opt) (result *Events, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "RetrieveResponseStream",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	} else if err := validateId(id); err != nil {
		return nil, err
	}
	query := o.Query(opt.Include, opt.StartingAfter)
	query.Set(opt.Stream, "true")
	return c.doStream(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   []string{"responses", id},
		Query:  query,
	})
}

// DeleteResponse deletes a stored response
func (c *Client) DeleteResponse(ctx context.Context, id string) (err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "DeleteResponse",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	if err := validateId(id); err != nil {
		return err
	}
	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   []string{"responses", id},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.logger.DebugContext(ctx, "response", "method", http.MethodDelete, "id", id, "status", resp.StatusCode)
	if !isSuccess(resp.StatusCode) {
		return ResponseError(resp)
	}
	return nil
}

// CancelResponse cancels a background response, and returns it
func (c *Client) CancelResponse(ctx context.Context, id string) (result *schema.Response, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "CancelResponse",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	if err := validateId(id); err != nil {
		return nil, err
	}
	return do[schema.Response](ctx, c, httpclient.Request{
		Method: http.MethodPost,
		Path:   []string{"responses", id, "cancel"},
	})
}

// ListInputItems returns a page of the items which were input to a
// response. The page is set with opt.WithLimit, opt.WithOrder,
// opt.WithAfter and opt.WithBefore.
func (c *Client) ListInputItems(ctx context.Context, id string, opts ...opt.Opt) (result *schema.ResponseItemsPage, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "ListInputItems",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	} else if err := validateId(id); err != nil {
		return nil, err
	}
	return do[schema.ResponseItemsPage](ctx, c, httpclient.Request{
		Method: http.MethodGet,
		Path:   []string{"responses", id, "input_items"},
		Query:  o.Query(opt.Include, opt.Limit, opt.Order, opt.After, opt.Before),
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// do sends a request and decodes a successful body as T
func do[T any](ctx context.Context, c *Client, req httpclient.Request) (*T, error) {
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	c.logger.DebugContext(ctx, "response", "method", req.Method, "path", strings.Join(req.Path, "/"), "status", resp.StatusCode)

	// Map a failure status to an error
	if !isSuccess(resp.StatusCode) {
		return nil, ResponseError(resp)
	}

	// Decode the body
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", responses.ErrTransport, err)
	}
	result, err := decoder.Decode[T](data)
	if errors.Is(err, decoder.ErrSyntax) {
		// Not JSON at all
		return nil, &responses.UnexpectedResponseError{Status: resp.StatusCode, Body: string(data)}
	} else if err != nil {
		c.logger.WarnContext(ctx, "decode", "path", decodePath(err), "error", err)
		return nil, err
	}
	return &result, nil
}

// doStream sends a request and returns the body as a stream of events.
// No events are read before returning.
func (c *Client) doStream(ctx context.Context, req httpclient.Request) (*Events, error) {
	req.Accept = client.ContentTypeTextStream
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "response", "method", req.Method, "path", strings.Join(req.Path, "/"), "status", resp.StatusCode)

	// A failure status, or a single JSON body in place of events
	if !isSuccess(resp.StatusCode) || httpclient.IsJSON(resp) {
		defer resp.Body.Close()
		return nil, ResponseError(resp)
	}

	// Return the stream, which owns the body
	return stream.New(resp.Body, sse.DecodeFrame[schema.StreamEvent], c.stream...), nil
}

func validateId(id string) error {
	if id = strings.TrimSpace(id); id == "" {
		return responses.ErrBadParameter.With("missing id")
	} else if strings.ContainsAny(id, "/?#") {
		return responses.ErrBadParameter.Withf("invalid id %q", id)
	}
	return nil
}
