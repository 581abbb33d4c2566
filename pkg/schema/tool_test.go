package schema_test

import (
	"encoding/json"
	"testing"

	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestToolChoice(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		choice schema.ToolChoice
		json   string
	}{
		{schema.ToolChoice{Option: schema.ToolChoiceRequired}, `"required"`},
		{schema.ToolChoiceHosted(schema.ToolFileSearch), `{"type":"file_search"}`},
		{schema.ToolChoiceFunction("get_weather"), `{"type":"function","name":"get_weather"}`},
	}
	for _, test := range tests {
		data, err := json.Marshal(test.choice)
		if assert.NoError(err) {
			assert.JSONEq(test.json, string(data))
		}
		choice, err := decoder.Decode[schema.ToolChoice]([]byte(test.json))
		if assert.NoError(err) {
			assert.Equal(test.choice, choice)
		}
	}

	// A function choice needs a name
	_, err := decoder.Decode[schema.ToolChoice]([]byte(`{"type":"function"}`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("name", decodeErr.Path)
	}
	assert.ErrorIs(err, decoder.ErrMissingField)
}

func TestNewFunctionFor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	type Location struct {
		City    string `json:"city" jsonschema:"the name of the city"`
		Country string `json:"country,omitempty"`
	}
	tool, err := schema.NewFunctionFor[Location]("get_weather", "Get the weather")
	require.NoError(err)
	assert.Equal(schema.ToolFunction, tool.ToolType())
	require.NotNil(tool.Strict)
	assert.True(*tool.Strict)
	require.NotNil(tool.Parameters)
	assert.Equal("object", tool.Parameters.Type)
	assert.Contains(tool.Parameters.Properties, "city")
	assert.Contains(tool.Parameters.Required, "city")

	// The tool decodes back through the tool union
	data, err := json.Marshal(tool)
	require.NoError(err)
	decoded, err := decoder.Decode[schema.Tool](data)
	require.NoError(err)
	function, ok := decoded.(*schema.FunctionTool)
	require.True(ok)
	assert.Equal("get_weather", function.Name)
	assert.Equal("Get the weather", function.Description)
}

func TestHostedTools(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tools, err := decoder.Decode[[]schema.Tool]([]byte(`[
		{"type":"mcp","server_label":"deepwiki","server_url":"https://mcp.deepwiki.com/mcp","allowed_tools":["ask_question"],"require_approval":"never"},
		{"type":"mcp","server_label":"docs","server_url":"https://example.com/mcp","allowed_tools":{"tool_names":["search"]},"require_approval":{"always":{"tool_names":["delete"]}}},
		{"type":"code_interpreter","container":"cntr_123"},
		{"type":"code_interpreter","container":{"type":"auto","file_ids":["file_1"]}},
		{"type":"web_search_preview_2025_03_11"},
		{"type":"computer_use_preview","display_width":1024,"display_height":768,"environment":"browser"},
		{"type":"local_shell"}
	]`))
	require.NoError(err)
	require.Len(tools, 7)

	mcp := tools[0].(*schema.McpTool)
	assert.Equal([]string{"ask_question"}, mcp.AllowedTools.Names)
	assert.Equal("never", mcp.RequireApproval.Mode)

	mcp = tools[1].(*schema.McpTool)
	require.NotNil(mcp.AllowedTools.Filter)
	assert.Equal([]string{"search"}, mcp.AllowedTools.Filter.ToolNames)
	require.NotNil(mcp.RequireApproval.Always)
	assert.Equal([]string{"delete"}, mcp.RequireApproval.Always.ToolNames)

	assert.Equal("cntr_123", tools[2].(*schema.CodeInterpreterTool).Container.Id)
	auto := tools[3].(*schema.CodeInterpreterTool).Container.Auto
	require.NotNil(auto)
	assert.Equal([]string{"file_1"}, auto.FileIds)

	assert.Equal(schema.ToolWebSearchPreview20250311, tools[4].ToolType())
	assert.Equal(schema.EnvironmentBrowser, tools[5].(*schema.ComputerTool).Environment)
	assert.Equal(schema.ToolLocalShell, tools[6].ToolType())

	// The string or object forms are written back the same way
	data, err := json.Marshal(tools[:4])
	require.NoError(err)
	assert.JSONEq(`[
		{"type":"mcp","server_label":"deepwiki","server_url":"https://mcp.deepwiki.com/mcp","allowed_tools":["ask_question"],"require_approval":"never"},
		{"type":"mcp","server_label":"docs","server_url":"https://example.com/mcp","allowed_tools":{"tool_names":["search"]},"require_approval":{"always":{"tool_names":["delete"]}}},
		{"type":"code_interpreter","container":"cntr_123"},
		{"type":"code_interpreter","container":{"type":"auto","file_ids":["file_1"]}}
	]`, string(data))
}

func TestToolErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := decoder.Decode[[]schema.Tool]([]byte(`[{"type":"local_shell"},{"type":"computer_use_preview","display_width":1,"display_height":1,"environment":"amiga"}]`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("[1].environment", decodeErr.Path)
	}
	assert.ErrorIs(err, decoder.ErrUnknownVariant)

	_, err = decoder.Decode[schema.Tool]([]byte(`{"type":"file_search"}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("vector_store_ids", decodeErr.Path)
	}
	assert.ErrorIs(err, decoder.ErrMissingField)
}
