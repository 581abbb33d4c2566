package schema

import (
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Response is a model response
type Response struct {
	Id                 string             `json:"id,required"`
	Object             string             `json:"object,required"` // response
	CreatedAt          int64              `json:"created_at,required"`
	Model              string             `json:"model,required"`
	Status             ItemStatus         `json:"status,omitempty"`
	Output             []Item             `json:"output,required"`
	OutputText         string             `json:"output_text,omitempty"`
	Error              *ResponseError     `json:"error,omitempty"`
	IncompleteDetails  *IncompleteDetails `json:"incomplete_details,omitempty"`
	Instructions       *Instructions      `json:"instructions,omitempty"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
	ParallelToolCalls  bool               `json:"parallel_tool_calls"`
	Temperature        *float64           `json:"temperature,omitempty"`
	TopP               *float64           `json:"top_p,omitempty"`
	ToolChoice         *ToolChoice        `json:"tool_choice,omitempty"`
	Tools              []Tool             `json:"tools"`
	Background         *bool              `json:"background,omitempty"`
	MaxOutputTokens    *uint64            `json:"max_output_tokens,omitempty"`
	PreviousResponseId string             `json:"previous_response_id,omitempty"`
	Prompt             *Prompt            `json:"prompt,omitempty"`
	Reasoning          json.RawMessage    `json:"reasoning,omitempty"`
	ServiceTier        ServiceTier        `json:"service_tier,omitempty"`
	Text               *TextConfig        `json:"text,omitempty"`
	Truncation         TruncationStrategy `json:"truncation,omitempty"`
	Usage              *Usage             `json:"usage,omitempty"`
	User               string             `json:"user,omitempty"`
}

// ResponseError is an error reported when the model fails to generate
// a response
type ResponseError struct {
	Code    ErrorCode `json:"code,required"`
	Message string    `json:"message,required"`
}

// IncompleteDetails is why a response is incomplete
type IncompleteDetails struct {
	Reason IncompleteReason `json:"reason,omitempty"`
}

// Usage is the token usage of a response
type Usage struct {
	InputTokens         uint64              `json:"input_tokens"`
	InputTokensDetails  InputTokensDetails  `json:"input_tokens_details"`
	OutputTokens        uint64              `json:"output_tokens"`
	OutputTokensDetails OutputTokensDetails `json:"output_tokens_details"`
	TotalTokens         uint64              `json:"total_tokens"`
}

type InputTokensDetails struct {
	CachedTokens uint64 `json:"cached_tokens"`
}

type OutputTokensDetails struct {
	ReasoningTokens uint64 `json:"reasoning_tokens"`
}

// Instructions are either text or a list of input items
type Instructions struct {
	Text  string
	Items []Item
}

// Prompt refers to a prompt template and its variables
type Prompt struct {
	Id        string                    `json:"id,required"`
	Variables map[string]PromptVariable `json:"variables,omitempty"`
	Version   string                    `json:"version,omitempty"`
}

// PromptVariable is either text or an input text, image or file
type PromptVariable struct {
	Text    string
	Content Content
}

// TextConfig configures the format of text output
type TextConfig struct {
	Format *TextFormat `json:"format,omitempty"`
}

// TextFormat is plain text, any JSON object, or JSON which conforms to
// a schema
type TextFormat struct {
	Type        string             `json:"type,required"` // text, json_object or json_schema
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Schema      *jsonschema.Schema `json:"schema,omitempty"`
	Strict      *bool              `json:"strict,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Text format types
const (
	FormatText       = "text"
	FormatJSONObject = "json_object"
	FormatJSONSchema = "json_schema"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewJSONSchemaFormat returns a strict text format with the schema
// inferred from the fields of T
func NewJSONSchemaFormat[T any](name string) (*TextConfig, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	return &TextConfig{Format: &TextFormat{
		Type:   FormatJSONSchema,
		Name:   name,
		Schema: schema,
		Strict: types.Ptr(true),
	}}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Response) String() string {
	return types.Stringify(r)
}

func (u Usage) String() string {
	return types.Stringify(u)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// TextOutput returns the text output of the response. If the server
// provided the aggregated output text it is returned, otherwise the text
// parts of all output messages are concatenated.
func (r *Response) TextOutput() string {
	if r.OutputText != "" {
		return r.OutputText
	}
	var str strings.Builder
	for _, item := range r.Output {
		if message, ok := item.(*Message); ok {
			str.WriteString(message.Content.String())
		}
	}
	return str.String()
}

// Refusal returns the first refusal in the output messages, or an empty
// string
func (r *Response) Refusal() string {
	for _, item := range r.Output {
		message, ok := item.(*Message)
		if !ok {
			continue
		}
		for _, part := range message.Content.Parts {
			if refusal, ok := part.(*Refusal); ok {
				return refusal.Refusal
			}
		}
	}
	return ""
}

// FunctionCalls returns the function calls in the output
func (r *Response) FunctionCalls() []*FunctionCall {
	var result []*FunctionCall
	for _, item := range r.Output {
		if call, ok := item.(*FunctionCall); ok {
			result = append(result, call)
		}
	}
	return result
}

// ParseOutput decodes the text output of a response into T, for responses
// requested with a JSON schema text format
func ParseOutput[T any](r *Response) (T, error) {
	return decoder.Decode[T]([]byte(r.TextOutput()))
}

// ParseArguments decodes the arguments of a function call into T
func ParseArguments[T any](call *FunctionCall) (T, error) {
	return decoder.Decode[T]([]byte(call.Arguments))
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (i Instructions) MarshalJSON() ([]byte, error) {
	if i.Items == nil {
		return json.Marshal(i.Text)
	}
	return json.Marshal(i.Items)
}

func (i *Instructions) UnmarshalJSON(data []byte) error {
	*i = Instructions{}
	if isString(data) {
		return decoder.DecodeInto(data, &i.Text)
	}
	return decoder.DecodeInto(data, &i.Items)
}

func (v PromptVariable) MarshalJSON() ([]byte, error) {
	if v.Content == nil {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Content)
}

func (v *PromptVariable) UnmarshalJSON(data []byte) error {
	*v = PromptVariable{}
	if isString(data) {
		return decoder.DecodeInto(data, &v.Text)
	}
	return decoder.DecodeInto(data, &v.Content)
}
