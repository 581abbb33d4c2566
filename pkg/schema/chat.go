package schema

import (
	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatMessage is a message in a chat completion
type ChatMessage struct {
	Role    string `json:"role,required"`
	Content string `json:"content"`
}

// ChatCompletionParams are the parameters to create a chat completion. The
// stream flag is always false.
type ChatCompletionParams struct {
	Model          string              `json:"model"`
	Messages       []ChatMessage       `json:"messages"`
	Temperature    *float64            `json:"temperature,omitempty"`
	TopP           *float64            `json:"top_p,omitempty"`
	MaxTokens      *uint64             `json:"max_tokens,omitempty"`
	Stream         *bool               `json:"stream,omitempty"`
	ResponseFormat *ChatResponseFormat `json:"response_format,omitempty"`
}

// ChatResponseFormat is either any JSON object or JSON which conforms to
// a schema
type ChatResponseFormat struct {
	Type       string          `json:"type"` // json_object or json_schema
	JSONSchema *ChatJSONSchema `json:"json_schema,omitempty"`
}

type ChatJSONSchema struct {
	Name   string             `json:"name"`
	Schema *jsonschema.Schema `json:"schema"`
	Strict *bool              `json:"strict,omitempty"`
}

// ChatCompletion is the result of a chat completion
type ChatCompletion struct {
	Id      string       `json:"id,required"`
	Object  string       `json:"object"` // chat.completion
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices,required"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

type ChatChoice struct {
	Index        uint        `json:"index"`
	Message      ChatMessage `json:"message,required"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type ChatUsage struct {
	PromptTokens     uint64 `json:"prompt_tokens"`
	CompletionTokens uint64 `json:"completion_tokens"`
	TotalTokens      uint64 `json:"total_tokens"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewChatJSONSchemaFormat returns a strict response format with the schema
// inferred from the fields of T
func NewChatJSONSchemaFormat[T any](name string) (*ChatResponseFormat, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	return &ChatResponseFormat{
		Type: FormatJSONSchema,
		JSONSchema: &ChatJSONSchema{
			Name:   name,
			Schema: schema,
			Strict: types.Ptr(true),
		},
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c ChatCompletion) String() string {
	return types.Stringify(c)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the content of the first choice, or an empty string
func (c *ChatCompletion) Text() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}
