/*
openai implements a client for the OpenAI Responses API
https://platform.openai.com/docs/api-reference/responses

Responses are created, retrieved, cancelled and deleted with the methods
of Client. The streaming variants return a stream of events as soon as the
response headers are received:

	stream, err := client.CreateResponseStream(ctx, params)
	if err != nil {
		return err
	}
	defer stream.Close()
	for event, err := range stream.All() {
		...
	}
*/
package openai

import (
	"context"
	"log/slog"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpclient "github.com/mutablelogic/go-responses/pkg/httpclient"
	stream "github.com/mutablelogic/go-responses/pkg/stream"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Transport sends a request and returns the response for any status code.
// The body of the response is closed by the caller.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*http.Response, error)
}

// Client is safe for concurrent use. Each stream it returns has a single
// consumer.
type Client struct {
	transport Transport
	tracer    trace.Tracer
	logger    *slog.Logger
	stream    []stream.Opt
}

var _ Transport = (*httpclient.Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint   = "https://api.openai.com/v1"
	tracerName = "github.com/mutablelogic/go-responses/pkg/openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client with an API key
func New(apiKey string, opts ...Opt) (*Client, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Create the transport
	transport := o.transport
	if transport == nil {
		clientOpts := o.client
		if o.tracer != nil {
			clientOpts = append(clientOpts, client.OptTracer(o.tracer))
		}
		httpClient, err := httpclient.New(o.endpoint, apiKey, clientOpts...)
		if err != nil {
			return nil, err
		}
		httpClient.SetHeader(httpclient.HeaderOrganization, o.organization)
		httpClient.SetHeader(httpclient.HeaderProject, o.project)
		transport = httpClient
	}

	// Set defaults
	c := &Client{
		transport: transport,
		tracer:    o.tracer,
		logger:    o.logger,
		stream:    append(o.stream, stream.WithLogger(o.logger)),
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	// Return the client
	return c, nil
}
