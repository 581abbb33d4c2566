package openai

import (
	"context"
	"net/http"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	responses "github.com/mutablelogic/go-responses"
	httpclient "github.com/mutablelogic/go-responses/pkg/httpclient"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateChatCompletion creates a chat completion with the older chat
// completions API. Streaming is not supported, and the stream parameter
// is always sent as false.
func (c *Client) CreateChatCompletion(ctx context.Context, params schema.ChatCompletionParams) (result *schema.ChatCompletion, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "CreateChatCompletion",
		attribute.String("request", types.Stringify(params)),
	)
	defer func() { endSpan(err) }()

	if len(params.Messages) == 0 {
		return nil, responses.ErrBadParameter.With("missing messages")
	}
	params.Stream = types.Ptr(false)
	return do[schema.ChatCompletion](ctx, c, httpclient.Request{
		Method: http.MethodPost,
		Path:   []string{"chat", "completions"},
		Body:   params,
	})
}
