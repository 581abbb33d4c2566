package schema_test

import (
	"encoding/json"
	"os"
	"testing"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func loadResponse(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/response.json")
	require.NoError(t, err)
	return data
}

func TestDecodeResponse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	response, err := decoder.Decode[schema.Response](loadResponse(t))
	require.NoError(err)

	assert.Equal("resp_67ccd2bed1ec8190b14f964abc0542670bb6a6b452d3795b", response.Id)
	assert.Equal("response", response.Object)
	assert.Equal(int64(1741476542), response.CreatedAt)
	assert.Equal(schema.StatusCompleted, response.Status)
	assert.Nil(response.Error)
	assert.Nil(response.Instructions)
	assert.Equal(schema.TierDefault, response.ServiceTier)
	assert.Equal(schema.TruncationDisabled, response.Truncation)

	// Output items are typed by their discriminator
	require.Len(response.Output, 3)
	assert.IsType(&schema.Reasoning{}, response.Output[0])
	assert.IsType(&schema.Message{}, response.Output[1])
	assert.IsType(&schema.FunctionCall{}, response.Output[2])

	message := response.Output[1].(*schema.Message)
	assert.Equal(schema.RoleAssistant, message.Role)
	require.Len(message.Content.Parts, 1)
	text, ok := message.Content.Parts[0].(*schema.OutputText)
	require.True(ok)
	require.Len(text.Annotations, 1)
	citation, ok := text.Annotations[0].(*schema.URLCitation)
	require.True(ok)
	assert.Equal("https://example.com/unicorns", citation.URL)

	// Tools and tool choice
	require.Len(response.Tools, 2)
	function, ok := response.Tools[0].(*schema.FunctionTool)
	require.True(ok)
	assert.Equal("get_weather", function.Name)
	require.NotNil(function.Parameters)
	assert.Equal("object", function.Parameters.Type)
	assert.Equal(schema.ToolWebSearchPreview, response.Tools[1].ToolType())
	require.NotNil(response.ToolChoice)
	assert.Equal(schema.ToolChoiceAuto, response.ToolChoice.Option)

	// Usage
	require.NotNil(response.Usage)
	assert.Equal(uint64(123), response.Usage.TotalTokens)
	assert.Equal(uint64(12), response.Usage.OutputTokensDetails.ReasoningTokens)
}

func TestResponseTextOutput(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	response, err := decoder.Decode[schema.Response](loadResponse(t))
	require.NoError(err)
	assert.Equal("In a peaceful grove beneath a silver moon, a unicorn named Lumina discovered a hidden pool.", response.TextOutput())
	assert.Empty(response.Refusal())

	// The aggregated text takes precedence
	response.OutputText = "aggregated"
	assert.Equal("aggregated", response.TextOutput())
}

func TestResponseFunctionCalls(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	response, err := decoder.Decode[schema.Response](loadResponse(t))
	require.NoError(err)

	calls := response.FunctionCalls()
	require.Len(calls, 1)
	assert.Equal("call_12345xyz", calls[0].CallId)

	args, err := schema.ParseArguments[struct {
		Location string `json:"location,required"`
	}](calls[0])
	require.NoError(err)
	assert.Equal("Paris, France", args.Location)

	// Arguments which are missing a required field
	_, err = schema.ParseArguments[struct {
		Unit string `json:"unit,required"`
	}](calls[0])
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("unit", decodeErr.Path)
	}
}

func TestDecodeResponseErrors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var doc map[string]any
	require.NoError(json.Unmarshal(loadResponse(t), &doc))
	mutate := func(fn func(map[string]any)) []byte {
		var clone map[string]any
		data, _ := json.Marshal(doc)
		require.NoError(json.Unmarshal(data, &clone))
		fn(clone)
		data, err := json.Marshal(clone)
		require.NoError(err)
		return data
	}

	tests := []struct {
		name string
		data []byte
		path string
		err  error
	}{
		{"missing id", mutate(func(m map[string]any) { delete(m, "id") }), "id", decoder.ErrMissingField},
		{"bad status", mutate(func(m map[string]any) {
			m["output"].([]any)[1].(map[string]any)["status"] = "sleeping"
		}), "output[1].status", decoder.ErrUnknownVariant},
		{"bad item", mutate(func(m map[string]any) {
			m["output"].([]any)[2].(map[string]any)["type"] = "teleport_call"
		}), "output[2].type", decoder.ErrUnknownVariant},
		{"bad text", mutate(func(m map[string]any) {
			m["output"].([]any)[1].(map[string]any)["content"].([]any)[0].(map[string]any)["text"] = 42
		}), "output[1].content[0].text", decoder.ErrTypeMismatch},
		{"bad tool choice", mutate(func(m map[string]any) { m["tool_choice"] = "sometimes" }), "tool_choice", decoder.ErrUnknownVariant},
		{"bad usage", mutate(func(m map[string]any) { m["usage"].(map[string]any)["total_tokens"] = "many" }), "usage.total_tokens", decoder.ErrTypeMismatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := decoder.Decode[schema.Response](test.data)
			var decodeErr *decoder.Error
			if assert.ErrorAs(err, &decodeErr) {
				assert.Equal(test.path, decodeErr.Path)
				assert.Equal(string(test.data), decodeErr.Raw)
			}
			assert.ErrorIs(err, test.err)
			assert.ErrorIs(err, responses.ErrSchemaMismatch)
		})
	}
}

func TestParseOutput(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	type Weather struct {
		City        string  `json:"city,required"`
		Temperature float64 `json:"temperature"`
	}

	format, err := schema.NewJSONSchemaFormat[Weather]("weather")
	require.NoError(err)
	require.NotNil(format.Format)
	assert.Equal(schema.FormatJSONSchema, format.Format.Type)
	assert.Equal("object", format.Format.Schema.Type)
	assert.Contains(format.Format.Schema.Properties, "city")

	response := &schema.Response{
		Output: []schema.Item{
			&schema.Message{
				Type:    schema.ItemMessage,
				Role:    schema.RoleAssistant,
				Content: schema.NewParts(&schema.OutputText{Type: schema.ContentOutputText, Text: `{"city":"Berlin","temperature":21.5}`}),
			},
		},
	}
	weather, err := schema.ParseOutput[Weather](response)
	require.NoError(err)
	assert.Equal(Weather{City: "Berlin", Temperature: 21.5}, weather)
}
