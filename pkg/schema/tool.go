package schema

import (
	"bytes"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a tool the model may call, selected by its "type"
type Tool interface {
	ToolType() string
}

// FunctionTool is a function defined by the caller
type FunctionTool struct {
	Type        string             `json:"type"`
	Name        string             `json:"name,required"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
	Strict      *bool              `json:"strict,omitempty"`
}

// FileSearchTool searches uploaded files in vector stores
type FileSearchTool struct {
	Type           string          `json:"type"`
	VectorStoreIds []string        `json:"vector_store_ids,required"`
	Filters        json.RawMessage `json:"filters,omitempty"`
	MaxNumResults  uint            `json:"max_num_results,omitempty"`
	RankingOptions *RankingOptions `json:"ranking_options,omitempty"`
}

type RankingOptions struct {
	Ranker         string   `json:"ranker,omitempty"`
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
}

// WebSearchTool searches the internet. The type is either
// "web_search_preview" or "web_search_preview_2025_03_11".
type WebSearchTool struct {
	Type              string        `json:"type"`
	SearchContextSize string        `json:"search_context_size,omitempty"` // low, medium or high
	UserLocation      *UserLocation `json:"user_location,omitempty"`
}

type UserLocation struct {
	Type     string `json:"type"` // approximate
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ComputerTool controls a virtual computer
type ComputerTool struct {
	Type          string              `json:"type"`
	DisplayWidth  float64             `json:"display_width,required"`
	DisplayHeight float64             `json:"display_height,required"`
	Environment   ComputerEnvironment `json:"environment,required"`
}

// McpTool gives the model access to a remote MCP server
type McpTool struct {
	Type              string            `json:"type"`
	ServerLabel       string            `json:"server_label,required"`
	ServerURL         string            `json:"server_url,required"`
	ServerDescription string            `json:"server_description,omitempty"`
	AllowedTools      *McpAllowedTools  `json:"allowed_tools,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
	RequireApproval   *McpApproval      `json:"require_approval,omitempty"`
}

// McpAllowedTools is either a list of tool names or a filter
type McpAllowedTools struct {
	Names  []string
	Filter *McpToolFilter
}

// McpApproval is either "always", "never" or filters for each
type McpApproval struct {
	Mode   string         `json:"-"`
	Always *McpToolFilter `json:"always,omitempty"`
	Never  *McpToolFilter `json:"never,omitempty"`
}

type McpToolFilter struct {
	ToolNames []string `json:"tool_names,omitempty"`
}

// CodeInterpreterTool runs code in a container
type CodeInterpreterTool struct {
	Type      string                   `json:"type"`
	Container CodeInterpreterContainer `json:"container,required"`
}

// CodeInterpreterContainer is either a container identifier or a request
// for a new container
type CodeInterpreterContainer struct {
	Id   string
	Auto *CodeInterpreterAuto
}

type CodeInterpreterAuto struct {
	Type    string   `json:"type"` // auto
	FileIds []string `json:"file_ids,omitempty"`
}

// ImageGenerationTool generates images
type ImageGenerationTool struct {
	Type              string     `json:"type"`
	Background        string     `json:"background,omitempty"`
	InputImageMask    *ImageMask `json:"input_image_mask,omitempty"`
	Model             string     `json:"model,omitempty"`
	Moderation        string     `json:"moderation,omitempty"`
	OutputCompression *uint      `json:"output_compression,omitempty"`
	OutputFormat      string     `json:"output_format,omitempty"`
	PartialImages     *uint      `json:"partial_images,omitempty"`
	Quality           string     `json:"quality,omitempty"`
	Size              string     `json:"size,omitempty"`
}

type ImageMask struct {
	FileId   string `json:"file_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// LocalShellTool runs shell commands on the caller's machine
type LocalShellTool struct {
	Type string `json:"type"`
}

// ToolChoice is either an option, a hosted tool type, or a named function
type ToolChoice struct {
	Option ToolChoiceOption
	Type   string
	Name   string
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Tool types
const (
	ToolFunction                 = "function"
	ToolFileSearch               = "file_search"
	ToolWebSearchPreview         = "web_search_preview"
	ToolWebSearchPreview20250311 = "web_search_preview_2025_03_11"
	ToolComputerUsePreview       = "computer_use_preview"
	ToolMcp                      = "mcp"
	ToolCodeInterpreter          = "code_interpreter"
	ToolImageGeneration          = "image_generation"
	ToolLocalShell               = "local_shell"
)

func init() {
	decoder.RegisterUnion("type", map[string]Tool{
		ToolFunction:                 (*FunctionTool)(nil),
		ToolFileSearch:               (*FileSearchTool)(nil),
		ToolWebSearchPreview:         (*WebSearchTool)(nil),
		ToolWebSearchPreview20250311: (*WebSearchTool)(nil),
		ToolComputerUsePreview:       (*ComputerTool)(nil),
		ToolMcp:                      (*McpTool)(nil),
		ToolCodeInterpreter:          (*CodeInterpreterTool)(nil),
		ToolImageGeneration:          (*ImageGenerationTool)(nil),
		ToolLocalShell:               (*LocalShellTool)(nil),
	})
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFunction returns a function tool with the given parameters schema
func NewFunction(name, description string, parameters *jsonschema.Schema) *FunctionTool {
	return &FunctionTool{
		Type:        ToolFunction,
		Name:        name,
		Description: description,
		Parameters:  parameters,
	}
}

// NewFunctionFor returns a strict function tool with the parameters schema
// inferred from the fields of T
func NewFunctionFor[T any](name, description string) (*FunctionTool, error) {
	parameters, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	tool := NewFunction(name, description, parameters)
	tool.Strict = types.Ptr(true)
	return tool, nil
}

// NewWebSearch returns a web search tool
func NewWebSearch() *WebSearchTool {
	return &WebSearchTool{Type: ToolWebSearchPreview}
}

// NewFileSearch returns a file search tool for the given vector stores
func NewFileSearch(vectorStoreIds ...string) *FileSearchTool {
	return &FileSearchTool{Type: ToolFileSearch, VectorStoreIds: vectorStoreIds}
}

// ToolChoiceFunction returns a tool choice which forces a function call
func ToolChoiceFunction(name string) ToolChoice {
	return ToolChoice{Type: ToolFunction, Name: name}
}

// ToolChoiceHosted returns a tool choice which forces a hosted tool
func ToolChoiceHosted(toolType string) ToolChoice {
	return ToolChoice{Type: toolType}
}

////////////////////////////////////////////////////////////////////////////////
// TOOL TYPES

func (*FunctionTool) ToolType() string        { return ToolFunction }
func (*FileSearchTool) ToolType() string      { return ToolFileSearch }
func (*ComputerTool) ToolType() string        { return ToolComputerUsePreview }
func (*McpTool) ToolType() string             { return ToolMcp }
func (*CodeInterpreterTool) ToolType() string { return ToolCodeInterpreter }
func (*ImageGenerationTool) ToolType() string { return ToolImageGeneration }
func (*LocalShellTool) ToolType() string      { return ToolLocalShell }

func (t *WebSearchTool) ToolType() string {
	if t.Type == ToolWebSearchPreview20250311 {
		return t.Type
	}
	return ToolWebSearchPreview
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Option != "" {
		return json.Marshal(t.Option)
	}
	return json.Marshal(toolChoiceObject{Type: t.Type, Name: t.Name})
}

func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	*t = ToolChoice{}
	if isString(data) {
		return decoder.DecodeInto(data, &t.Option)
	}
	var v toolChoiceObject
	if err := decoder.DecodeInto(data, &v); err != nil {
		return err
	}
	if v.Type == ToolFunction && v.Name == "" {
		return &decoder.Error{Path: "name", Cause: decoder.ErrMissingField, Raw: string(data)}
	}
	t.Type, t.Name = v.Type, v.Name
	return nil
}

func (a McpAllowedTools) MarshalJSON() ([]byte, error) {
	if a.Filter != nil {
		return json.Marshal(a.Filter)
	}
	return json.Marshal(a.Names)
}

func (a *McpAllowedTools) UnmarshalJSON(data []byte) error {
	*a = McpAllowedTools{}
	if data = bytes.TrimSpace(data); len(data) > 0 && data[0] == '[' {
		return decoder.DecodeInto(data, &a.Names)
	}
	return decoder.DecodeInto(data, &a.Filter)
}

func (a McpApproval) MarshalJSON() ([]byte, error) {
	if a.Mode != "" {
		return json.Marshal(a.Mode)
	}
	type filters McpApproval
	return json.Marshal(filters(a))
}

func (a *McpApproval) UnmarshalJSON(data []byte) error {
	*a = McpApproval{}
	if isString(data) {
		return decoder.DecodeInto(data, &a.Mode)
	}
	type filters McpApproval
	return decoder.DecodeInto(data, (*filters)(a))
}

func (c CodeInterpreterContainer) MarshalJSON() ([]byte, error) {
	if c.Auto != nil {
		return json.Marshal(c.Auto)
	}
	return json.Marshal(c.Id)
}

func (c *CodeInterpreterContainer) UnmarshalJSON(data []byte) error {
	*c = CodeInterpreterContainer{}
	if isString(data) {
		return decoder.DecodeInto(data, &c.Id)
	}
	return decoder.DecodeInto(data, &c.Auto)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

type toolChoiceObject struct {
	Type string `json:"type,required"`
	Name string `json:"name,omitempty"`
}

func isString(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '"'
}
