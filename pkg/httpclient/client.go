/*
httpclient sends requests to a Responses API endpoint and returns the raw
HTTP response, leaving the body for the caller to read in full or consume
as an event stream.
*/
package httpclient

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	// Packages
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-client"
	responses "github.com/mutablelogic/go-responses"
	version "github.com/mutablelogic/go-responses/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client sends requests with a bearer token, using the http.Client of the
// embedded go-client
type Client struct {
	*client.Client
	endpoint *url.URL
	token    client.Token
	header   http.Header
}

// Request describes a single call. Path segments are joined to
// the endpoint. A nil Body sends no body.
type Request struct {
	Method string
	Path   []string
	Query  url.Values
	Body   any
	Accept string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	HeaderRequestId    = "X-Client-Request-Id"
	HeaderOrganization = "OpenAI-Organization"
	HeaderProject      = "OpenAI-Project"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the endpoint, for example
// "https://api.openai.com/v1". The token is sent with every request when
// not empty.
func New(endpoint string, token string, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	if u, err := url.Parse(endpoint); err != nil {
		return nil, responses.ErrBadParameter.Withf("endpoint: %v", err)
	} else if u.Scheme == "" || u.Host == "" {
		return nil, responses.ErrBadParameter.Withf("endpoint: %q", endpoint)
	} else {
		c.endpoint = u
	}
	if token != "" {
		c.token = client.Token{Scheme: client.Bearer, Value: token}
	}
	c.header = make(http.Header)

	// Streams are open for as long as the model generates, so no timeout
	// is set unless the caller asks for one
	defaults := []client.ClientOpt{
		client.OptEndpoint(endpoint),
		client.OptUserAgent(version.UserAgent()),
		client.OptTimeout(0),
	}
	if httpClient, err := client.New(append(defaults, opts...)...); err != nil {
		return nil, err
	} else {
		c.Client = httpClient
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SetHeader sets a header which is sent with every request, or removes it
// when the value is empty. It is not safe to call once requests are in
// flight.
func (c *Client) SetHeader(key, value string) {
	if value == "" {
		c.header.Del(key)
	} else {
		c.header.Set(key, value)
	}
}

// URL returns the URL for a request with path segments and query
func (c *Client) URL(path []string, query url.Values) *url.URL {
	u := c.endpoint.JoinPath(path...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

// Do sends the request and returns the response for any status code. The
// caller closes the body. A failure to encode the body is ErrBadParameter,
// and a failure to send the request or receive the headers is
// ErrTransport.
func (c *Client) Do(ctx context.Context, r Request) (*http.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", responses.ErrTransport, err)
	}
	return resp, nil
}

// IsEventStream returns true if the content type of the response is an
// event stream
func IsEventStream(resp *http.Response) bool {
	return mediaType(resp) == client.ContentTypeTextStream
}

// IsJSON returns true if the content type of the response is JSON
func IsJSON(resp *http.Response) bool {
	return mediaType(resp) == client.ContentTypeJson
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	accept := r.Accept
	if accept == "" {
		accept = client.ContentTypeJson
	}

	// Build the request, with a JSON body if there is one
	var req *http.Request
	if r.Body != nil {
		payload, err := client.NewJSONRequestEx(method, r.Body, accept)
		if err != nil {
			return nil, responses.ErrBadParameter.With(err)
		}
		req, err = http.NewRequestWithContext(ctx, payload.Method(), c.URL(r.Path, r.Query).String(), payload)
		if err != nil {
			return nil, responses.ErrBadParameter.With(err)
		}
		req.Header.Set("Content-Type", client.ContentTypeJson)
	} else if request, err := http.NewRequestWithContext(ctx, method, c.URL(r.Path, r.Query).String(), nil); err != nil {
		return nil, responses.ErrBadParameter.With(err)
	} else {
		req = request
	}

	// Set headers
	for key := range c.header {
		req.Header.Set(key, c.header.Get(key))
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderRequestId, uuid.NewString())
	if c.token.Scheme != "" && c.token.Value != "" {
		req.Header.Set("Authorization", c.token.String())
	}

	// Return the request
	return req, nil
}

func mediaType(resp *http.Response) string {
	if mimetype, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		return mimetype
	}
	return ""
}
