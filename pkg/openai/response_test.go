package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	openai "github.com/mutablelogic/go-responses/pkg/openai"
	opt "github.com/mutablelogic/go-responses/pkg/opt"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
	stream "github.com/mutablelogic/go-responses/pkg/stream"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// newClient returns a client for a test server with the given handler
func newClient(t *testing.T, handler http.HandlerFunc, opts ...openai.Opt) *openai.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := openai.New("sk-test", append([]openai.Opt{openai.OptEndpoint(server.URL + "/v1")}, opts...)...)
	require.NoError(t, err)
	return c
}

// reply writes a status and body with a content type
func reply(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func newParams() schema.ResponseCreateParams {
	return schema.ResponseCreateParams{
		Model: "gpt-4.1",
		Input: schema.NewTextInput("Say hello"),
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_response_001(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	body := fixture(t, "response.json")

	// Create a response, and check the stream flag is forced off
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/v1/responses", r.URL.Path)
		assert.Equal("Bearer sk-test", r.Header.Get("Authorization"))
		var params map[string]any
		assert.NoError(json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(false, params["stream"])
		assert.Equal("Say hello", params["input"])
		reply(w, http.StatusOK, "application/json", body)
	})

	params := newParams()
	params.Stream = nil
	response, err := c.CreateResponse(context.Background(), params)
	require.NoError(err)
	assert.Equal("resp_67ccd2bed1ec8190b14f964abc0542670bb6a6b452d3795b", response.Id)
	assert.Equal(schema.StatusCompleted, response.Status)
	assert.Len(response.Output, 3)

	// The caller's parameters are not changed
	assert.Nil(params.Stream)
}

func Test_response_002(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	body := fixture(t, "stream.txt")

	// Create a streamed response
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("text/event-stream", r.Header.Get("Accept"))
		var params map[string]any
		assert.NoError(json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(true, params["stream"])
		reply(w, http.StatusOK, "text/event-stream; charset=utf-8", body)
	})

	events, err := c.CreateResponseStream(context.Background(), newParams())
	require.NoError(err)
	defer events.Close()
	assert.Equal(stream.Streaming, events.State())

	var text strings.Builder
	var completed *schema.CompletedEvent
	for event, err := range events.All() {
		require.NoError(err)
		switch event := event.(type) {
		case *schema.OutputTextDeltaEvent:
			text.WriteString(event.Delta)
		case *schema.CompletedEvent:
			completed = event
		}
	}
	assert.Equal("Hi there!", text.String())
	require.NotNil(completed)
	assert.Equal("Hi there!", completed.Response.TextOutput())
	assert.Equal(stream.Completed, events.State())
}

func Test_response_003(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	body := fixture(t, "response.json")

	// Retrieve, with include and without the stream options
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodGet, r.Method)
		assert.Equal("/v1/responses/resp_1", r.URL.Path)
		assert.Equal([]string{"file_search_call.results"}, r.URL.Query()["include[]"])
		assert.False(r.URL.Query().Has("stream"))
		assert.False(r.URL.Query().Has("starting_after"))
		reply(w, http.StatusOK, "application/json", body)
	})

	response, err := c.RetrieveResponse(context.Background(), "resp_1", opt.WithInclude(schema.IncludeFileSearchResults), opt.WithStartingAfter(3))
	require.NoError(err)
	assert.NotEmpty(response.Id)

	// Identifiers are checked before a request is made
	_, err = c.RetrieveResponse(context.Background(), " ")
	assert.ErrorIs(err, responses.ErrBadParameter)
	_, err = c.RetrieveResponse(context.Background(), "resp_1/cancel")
	assert.ErrorIs(err, responses.ErrBadParameter)

	// As are the options
	_, err = c.RetrieveResponse(context.Background(), "resp_1", opt.WithInclude(""))
	assert.ErrorIs(err, responses.ErrBadParameter)
}

func Test_response_004(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	body := fixture(t, "stream.txt")

	// Resume a background response after the fourth event
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodGet, r.Method)
		assert.Equal("/v1/responses/resp_1", r.URL.Path)
		assert.Equal("true", r.URL.Query().Get("stream"))
		assert.Equal("3", r.URL.Query().Get("starting_after"))
		reply(w, http.StatusOK, "text/event-stream", body[strings.Index(body, "event: response.output_text.delta\ndata: {\"type\":\"response.output_text.delta\",\"sequence_number\":4"):])
	})

	events, err := c.RetrieveResponseStream(context.Background(), "resp_1", opt.WithStartingAfter(3))
	require.NoError(err)
	result, err := stream.Collect(events)
	require.NoError(err)
	require.Len(result, 3)
	assert.Equal(uint64(4), result[0].Sequence())
	assert.Equal(schema.EventCompleted, result[2].EventType())
}

func Test_response_005(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	body := fixture(t, "response.json")

	// Delete, cancel and list input items
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/responses/resp_1":
			reply(w, http.StatusOK, "application/json", `{"id":"resp_1","object":"response.deleted","deleted":true}`)
		case r.Method == http.MethodDelete:
			reply(w, http.StatusNotFound, "application/json", `{"error":{"message":"No response found","type":"invalid_request_error","param":null,"code":null}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/responses/resp_1/cancel":
			data, _ := io.ReadAll(r.Body)
			assert.Empty(data)
			reply(w, http.StatusOK, "application/json", body)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/responses/resp_1/input_items":
			assert.Equal("2", r.URL.Query().Get("limit"))
			assert.Equal("asc", r.URL.Query().Get("order"))
			assert.Equal("msg_0", r.URL.Query().Get("after"))
			reply(w, http.StatusOK, "application/json", `{"object":"list","data":[
				{"id":"msg_1","type":"message","role":"user","status":"completed","content":[{"type":"input_text","text":"Say hello"}]},
				{"id":"fco_1","type":"function_call_output","call_id":"call_1","output":"{}"}
			],"first_id":"msg_1","last_id":"fco_1","has_more":true}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusTeapot)
		}
	})

	require.NoError(c.DeleteResponse(context.Background(), "resp_1"))

	err := c.DeleteResponse(context.Background(), "resp_2")
	var apiErr *responses.APIError
	if assert.ErrorAs(err, &apiErr) {
		assert.Equal(http.StatusNotFound, apiErr.Status)
		assert.Equal("No response found", apiErr.Message)
		assert.Equal("invalid_request_error", apiErr.Type)
		assert.Empty(apiErr.Code)
	}

	response, err := c.CancelResponse(context.Background(), "resp_1")
	require.NoError(err)
	assert.NotEmpty(response.Output)

	page, err := c.ListInputItems(context.Background(), "resp_1", opt.WithLimit(2), opt.WithOrder("asc"), opt.WithAfter("msg_0"))
	require.NoError(err)
	require.Len(page.Data, 2)
	assert.True(page.HasMore)
	assert.Equal(schema.ItemFunctionCallOutput, page.Data[1].ItemType())
}

func Test_response_006(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		api    bool
	}{
		{"flat", http.StatusTooManyRequests, `{"code":"rate_limit_exceeded","message":"slow down"}`, true},
		{"wrapped", http.StatusTooManyRequests, `{"error":{"code":"rate_limit_exceeded","message":"slow down","type":"requests"}}`, true},
		{"not json", http.StatusBadGateway, `not json`, false},
		{"no message", http.StatusInternalServerError, `{"code":"server_error"}`, false},
		{"no code", http.StatusTooManyRequests, `{"message":"slow down"}`, false},
		{"null error", http.StatusTooManyRequests, `{"error":null}`, false},
		{"empty", http.StatusServiceUnavailable, ``, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				reply(w, test.status, "application/json", test.body)
			})

			// The same mapping applies to a single body and to a stream
			_, err := c.CreateResponse(context.Background(), newParams())
			_, streamErr := c.CreateResponseStream(context.Background(), newParams())
			for _, err := range []error{err, streamErr} {
				if test.api {
					var apiErr *responses.APIError
					if assert.ErrorAs(err, &apiErr) {
						assert.Equal(test.status, apiErr.Status)
						assert.Equal("rate_limit_exceeded", apiErr.Code)
						assert.Equal("slow down", apiErr.Message)
					}
					assert.ErrorIs(err, responses.ErrAPI)
				} else {
					var unexpected *responses.UnexpectedResponseError
					if assert.ErrorAs(err, &unexpected) {
						assert.Equal(test.status, unexpected.Status)
						assert.Equal(test.body, unexpected.Body)
					}
					assert.ErrorIs(err, responses.ErrUnexpectedResponse)
				}
			}
		})
	}
}

func Test_response_007(t *testing.T) {
	assert := assert.New(t)

	// A successful status with a JSON body where events were expected
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "application/json; charset=utf-8", `{"error":{"code":"invalid_prompt","message":"bad prompt"}}`)
	})
	events, err := c.CreateResponseStream(context.Background(), newParams())
	assert.Nil(events)
	var apiErr *responses.APIError
	if assert.ErrorAs(err, &apiErr) {
		assert.Equal(http.StatusOK, apiErr.Status)
		assert.Equal("invalid_prompt", apiErr.Code)
	}
}

func Test_response_008(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A body which does not match the schema keeps the decode path
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "application/json", `{"id":"resp_1","object":"response","created_at":1,"model":"m","output":[{"type":"message","role":"assistant","status":"done","content":[]}]}`)
	})
	response, err := c.CreateResponse(context.Background(), newParams())
	assert.Nil(response)
	require.Error(err)
	assert.ErrorIs(err, responses.ErrSchemaMismatch)
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("output[0].status", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrUnknownVariant)
	}

	// A body which is not JSON is an unexpected response
	c = newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "text/html", `<html>gateway</html>`)
	})
	_, err = c.CreateResponse(context.Background(), newParams())
	var unexpected *responses.UnexpectedResponseError
	if assert.ErrorAs(err, &unexpected) {
		assert.Equal(http.StatusOK, unexpected.Status)
		assert.Equal(`<html>gateway</html>`, unexpected.Body)
	}
}

func Test_response_009(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// An unknown event type ends the stream with an error at "type"
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "text/event-stream", ""+
			"data: {\"type\":\"response.in_progress\",\"sequence_number\":0,\"response\":{\"id\":\"r\",\"object\":\"response\",\"created_at\":1,\"model\":\"m\",\"output\":[]}}\n\n"+
			": keep-alive\n\n"+
			"data: {\"type\":\"response.teleported\",\"sequence_number\":1}\n\n"+
			"data: {\"type\":\"response.audio.done\",\"sequence_number\":2}\n\n"+
			"data: [DONE]\n\n")
	})
	events, err := c.CreateResponseStream(context.Background(), newParams())
	require.NoError(err)
	defer events.Close()

	event, err := events.Next()
	require.NoError(err)
	assert.Equal(schema.EventInProgress, event.EventType())

	_, err = events.Next()
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("type", decodeErr.Path)
		assert.Equal(`{"type":"response.teleported","sequence_number":1}`, decodeErr.Raw)
	}
	assert.ErrorIs(err, responses.ErrSchemaMismatch)
	assert.Equal(stream.Errored, events.State())

	// Nothing follows the error
	_, err = events.Next()
	assert.ErrorIs(err, stream.Done)
}

func Test_response_010(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A stream which ends part way through an event
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "text/event-stream", "data: {\"type\":\"response.audio.done\",\"sequence_number\":0}\n\ndata: {\"type\":\"x\"")
	})
	events, err := c.CreateResponseStream(context.Background(), newParams())
	require.NoError(err)
	result, err := stream.Collect(events)
	assert.Len(result, 1)
	assert.ErrorIs(err, responses.ErrTruncated)
	assert.Equal(stream.Truncated, events.State())
}

func Test_response_011(t *testing.T) {
	assert := assert.New(t)
	body := fixture(t, "stream.txt")

	// Independent streams on one client do not interfere
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "text/event-stream", body)
	})

	const n = 16
	texts := make([]string, n)
	var group errgroup.Group
	for i := range n {
		group.Go(func() error {
			events, err := c.CreateResponseStream(context.Background(), newParams())
			if err != nil {
				return err
			}
			defer events.Close()
			var text strings.Builder
			var sequence uint64
			for event, err := range events.All() {
				if err != nil {
					return err
				}
				if event.Sequence() != sequence {
					return fmt.Errorf("stream %d: event %d out of order", i, event.Sequence())
				}
				sequence++
				if delta, ok := event.(*schema.OutputTextDeltaEvent); ok {
					text.WriteString(delta.Delta)
				}
			}
			texts[i] = text.String()
			return nil
		})
	}
	assert.NoError(group.Wait())
	for _, text := range texts {
		assert.Equal("Hi there!", text)
	}
}

func Test_response_012(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Closing a stream part way through releases the body
	release := make(chan struct{})
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "data: {\"type\":\"response.audio.done\",\"sequence_number\":0}\n\n")
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	events, err := c.CreateResponseStream(context.Background(), newParams())
	require.NoError(err)
	_, err = events.Next()
	require.NoError(err)
	assert.NoError(events.Close())
	assert.Equal(stream.Closed, events.State())
	_, err = events.Next()
	assert.True(errors.Is(err, stream.ErrClosed))
}
