package schema

import (
	"encoding/json"

	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ResponseCreateParams are the parameters to create a response. The stream
// flag is set by the client according to the operation.
type ResponseCreateParams struct {
	Model              string             `json:"model,omitempty"`
	Input              *ResponseInput     `json:"input,omitempty"`
	Instructions       string             `json:"instructions,omitempty"`
	Background         *bool              `json:"background,omitempty"`
	Include            []Includable       `json:"include,omitempty"`
	MaxOutputTokens    *uint64            `json:"max_output_tokens,omitempty"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
	ParallelToolCalls  *bool              `json:"parallel_tool_calls,omitempty"`
	PreviousResponseId string             `json:"previous_response_id,omitempty"`
	Prompt             *Prompt            `json:"prompt,omitempty"`
	Reasoning          json.RawMessage    `json:"reasoning,omitempty"`
	ServiceTier        ServiceTier        `json:"service_tier,omitempty"`
	Store              *bool              `json:"store,omitempty"`
	Stream             *bool              `json:"stream,omitempty"`
	Temperature        *float64           `json:"temperature,omitempty"`
	Text               *TextConfig        `json:"text,omitempty"`
	ToolChoice         *ToolChoice        `json:"tool_choice,omitempty"`
	Tools              []Tool             `json:"tools,omitempty"`
	TopP               *float64           `json:"top_p,omitempty"`
	Truncation         TruncationStrategy `json:"truncation,omitempty"`
	User               string             `json:"user,omitempty"`
}

// ResponseInput is either text or a list of input items
type ResponseInput struct {
	Text  string
	Items []Item
}

// ResponseItemsPage is a page of input items for a response
type ResponseItemsPage struct {
	Object  string `json:"object"` // list
	Data    []Item `json:"data,required"`
	FirstId string `json:"first_id,omitempty"`
	LastId  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTextInput returns input which is plain text
func NewTextInput(text string) *ResponseInput {
	return &ResponseInput{Text: text}
}

// NewItemsInput returns input which is a list of items
func NewItemsInput(items ...Item) *ResponseInput {
	if items == nil {
		items = []Item{}
	}
	return &ResponseInput{Items: items}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p ResponseCreateParams) String() string {
	return types.Stringify(p)
}

func (p ResponseItemsPage) String() string {
	return types.Stringify(p)
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (i ResponseInput) MarshalJSON() ([]byte, error) {
	if i.Items == nil {
		return json.Marshal(i.Text)
	}
	return json.Marshal(i.Items)
}

func (i *ResponseInput) UnmarshalJSON(data []byte) error {
	*i = ResponseInput{}
	if isString(data) {
		return decoder.DecodeInto(data, &i.Text)
	}
	return decoder.DecodeInto(data, &i.Items)
}
