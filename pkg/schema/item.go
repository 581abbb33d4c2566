package schema

import (
	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Item is an input or output item of a response, selected by its "type"
type Item interface {
	ItemType() string
}

// Message is a message to or from the model. Input messages have no
// identifier or status.
type Message struct {
	Type    string         `json:"type,omitempty"`
	Id      string         `json:"id,omitempty"`
	Role    MessageRole    `json:"role,required"`
	Status  ItemStatus     `json:"status,omitempty"`
	Content MessageContent `json:"content,required"`
}

// FileSearchCall is the results of a file search
type FileSearchCall struct {
	Type    string             `json:"type"`
	Id      string             `json:"id,required"`
	Queries []string           `json:"queries"`
	Status  ItemStatus         `json:"status,omitempty"`
	Results []FileSearchResult `json:"results,omitempty"`
}

type FileSearchResult struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	FileId     string         `json:"file_id,omitempty"`
	Filename   string         `json:"filename,omitempty"`
	Score      *float64       `json:"score,omitempty"`
	Text       string         `json:"text,omitempty"`
}

// FunctionCall is a call by the model to a caller-defined function
type FunctionCall struct {
	Type      string     `json:"type"`
	Id        string     `json:"id,omitempty"`
	CallId    string     `json:"call_id,required"`
	Name      string     `json:"name,required"`
	Arguments string     `json:"arguments,required"` // JSON encoded
	Status    ItemStatus `json:"status,omitempty"`
}

// FunctionCallOutput is the result of a function call, returned to the model
type FunctionCallOutput struct {
	Type   string     `json:"type"`
	Id     string     `json:"id,omitempty"`
	CallId string     `json:"call_id,required"`
	Output string     `json:"output,required"`
	Status ItemStatus `json:"status,omitempty"`
}

// WebSearchCall is the results of a web search
type WebSearchCall struct {
	Type   string     `json:"type"`
	Id     string     `json:"id,required"`
	Status ItemStatus `json:"status,omitempty"`
}

// ComputerCall is an action on a virtual computer
type ComputerCall struct {
	Type                string         `json:"type"`
	Id                  string         `json:"id,required"`
	CallId              string         `json:"call_id,required"`
	Action              ComputerAction `json:"action,required"`
	PendingSafetyChecks []SafetyCheck  `json:"pending_safety_checks"`
	Status              ItemStatus     `json:"status,omitempty"`
}

// ComputerCallOutput is a screenshot returned to the model after a
// computer action
type ComputerCallOutput struct {
	Type                     string             `json:"type"`
	Id                       string             `json:"id,omitempty"`
	CallId                   string             `json:"call_id,required"`
	Output                   ComputerScreenshot `json:"output,required"`
	AcknowledgedSafetyChecks []SafetyCheck      `json:"acknowledged_safety_checks,omitempty"`
	Status                   ItemStatus         `json:"status,omitempty"`
}

type SafetyCheck struct {
	Id      string `json:"id,required"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type ComputerScreenshot struct {
	Type     string `json:"type"` // computer_screenshot
	FileId   string `json:"file_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Reasoning is the chain of thought of a reasoning model
type Reasoning struct {
	Type             string             `json:"type"`
	Id               string             `json:"id,required"`
	Summary          []ReasoningSummary `json:"summary"`
	EncryptedContent string             `json:"encrypted_content,omitempty"`
	Status           ItemStatus         `json:"status,omitempty"`
}

type ReasoningSummary struct {
	Type string `json:"type"` // summary_text
	Text string `json:"text"`
}

// ImageGenerationCall is an image generated by the model
type ImageGenerationCall struct {
	Type   string     `json:"type"`
	Id     string     `json:"id,required"`
	Result *string    `json:"result"` // base64 encoded
	Status ItemStatus `json:"status,omitempty"`
}

// CodeInterpreterCall is code run by the model
type CodeInterpreterCall struct {
	Type        string                  `json:"type"`
	Id          string                  `json:"id,required"`
	Code        *string                 `json:"code"`
	ContainerId string                  `json:"container_id"`
	Outputs     []CodeInterpreterOutput `json:"outputs"`
	Status      ItemStatus              `json:"status,omitempty"`
}

// CodeInterpreterOutput is logs or an image, selected by its "type"
type CodeInterpreterOutput interface {
	OutputType() string
}

type CodeInterpreterLogs struct {
	Type string `json:"type"`
	Logs string `json:"logs"`
}

type CodeInterpreterImage struct {
	Type string `json:"type"`
	URL  string `json:"url,required"`
}

// LocalShellCall is a command run on the caller's machine
type LocalShellCall struct {
	Type   string           `json:"type"`
	Id     string           `json:"id,required"`
	CallId string           `json:"call_id,required"`
	Action LocalShellAction `json:"action,required"`
	Status ItemStatus       `json:"status,omitempty"`
}

type LocalShellAction struct {
	Type             string            `json:"type"` // exec
	Command          []string          `json:"command,required"`
	Env              map[string]string `json:"env"`
	TimeoutMs        *uint64           `json:"timeout_ms,omitempty"`
	User             string            `json:"user,omitempty"`
	WorkingDirectory string            `json:"working_directory,omitempty"`
}

// LocalShellCallOutput is the output of a local shell command
type LocalShellCallOutput struct {
	Type   string     `json:"type"`
	Id     string     `json:"id,required"`
	Output string     `json:"output,required"` // JSON encoded
	Status ItemStatus `json:"status,omitempty"`
}

// McpCall is a tool call on an MCP server
type McpCall struct {
	Type        string `json:"type"`
	Id          string `json:"id,required"`
	ServerLabel string `json:"server_label"`
	Name        string `json:"name,required"`
	Arguments   string `json:"arguments"`
	Error       string `json:"error,omitempty"`
	Output      string `json:"output,omitempty"`
}

// McpListTools is the tools available on an MCP server
type McpListTools struct {
	Type        string        `json:"type"`
	Id          string        `json:"id,required"`
	ServerLabel string        `json:"server_label"`
	Tools       []McpToolInfo `json:"tools"`
	Error       string        `json:"error,omitempty"`
}

type McpToolInfo struct {
	Name        string             `json:"name,required"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
	Annotations map[string]any     `json:"annotations,omitempty"`
}

// McpApprovalRequest is a request for approval before an MCP tool call
type McpApprovalRequest struct {
	Type        string `json:"type"`
	Id          string `json:"id,required"`
	ServerLabel string `json:"server_label"`
	Name        string `json:"name,required"`
	Arguments   string `json:"arguments"`
}

// McpApprovalResponse approves or denies an MCP tool call
type McpApprovalResponse struct {
	Type              string `json:"type"`
	Id                string `json:"id,omitempty"`
	ApprovalRequestId string `json:"approval_request_id,required"`
	Approve           bool   `json:"approve"`
	Reason            string `json:"reason,omitempty"`
}

// ItemReference refers to an earlier item by identifier
type ItemReference struct {
	Type string `json:"type"`
	Id   string `json:"id,required"`
}

// ComputerAction is an action on a virtual computer, selected by its "type"
type ComputerAction interface {
	ActionType() string
}

type ClickAction struct {
	Type   string  `json:"type"`
	Button string  `json:"button"` // left, right, wheel, back or forward
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type DoubleClickAction struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type DragAction struct {
	Type string  `json:"type"`
	Path []Point `json:"path,required"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type KeypressAction struct {
	Type string   `json:"type"`
	Keys []string `json:"keys,required"`
}

type MoveAction struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type ScreenshotAction struct {
	Type string `json:"type"`
}

type ScrollAction struct {
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
}

type TypeAction struct {
	Type string `json:"type"`
	Text string `json:"text,required"`
}

type WaitAction struct {
	Type string `json:"type"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Item types
const (
	ItemMessage              = "message"
	ItemFileSearchCall       = "file_search_call"
	ItemFunctionCall         = "function_call"
	ItemFunctionCallOutput   = "function_call_output"
	ItemWebSearchCall        = "web_search_call"
	ItemComputerCall         = "computer_call"
	ItemComputerCallOutput   = "computer_call_output"
	ItemReasoning            = "reasoning"
	ItemImageGenerationCall  = "image_generation_call"
	ItemCodeInterpreterCall  = "code_interpreter_call"
	ItemLocalShellCall       = "local_shell_call"
	ItemLocalShellCallOutput = "local_shell_call_output"
	ItemMcpCall              = "mcp_call"
	ItemMcpListTools         = "mcp_list_tools"
	ItemMcpApprovalRequest   = "mcp_approval_request"
	ItemMcpApprovalResponse  = "mcp_approval_response"
	ItemReferenceType        = "item_reference"
)

// Computer action types
const (
	ActionClick       = "click"
	ActionDoubleClick = "double_click"
	ActionDrag        = "drag"
	ActionKeypress    = "keypress"
	ActionMove        = "move"
	ActionScreenshot  = "screenshot"
	ActionScroll      = "scroll"
	ActionType        = "type"
	ActionWait        = "wait"
)

// Code interpreter output types
const (
	OutputLogs  = "logs"
	OutputImage = "image"
)

func init() {
	decoder.RegisterUnion("type", map[string]Item{
		ItemMessage:              (*Message)(nil),
		ItemFileSearchCall:       (*FileSearchCall)(nil),
		ItemFunctionCall:         (*FunctionCall)(nil),
		ItemFunctionCallOutput:   (*FunctionCallOutput)(nil),
		ItemWebSearchCall:        (*WebSearchCall)(nil),
		ItemComputerCall:         (*ComputerCall)(nil),
		ItemComputerCallOutput:   (*ComputerCallOutput)(nil),
		ItemReasoning:            (*Reasoning)(nil),
		ItemImageGenerationCall:  (*ImageGenerationCall)(nil),
		ItemCodeInterpreterCall:  (*CodeInterpreterCall)(nil),
		ItemLocalShellCall:       (*LocalShellCall)(nil),
		ItemLocalShellCallOutput: (*LocalShellCallOutput)(nil),
		ItemMcpCall:              (*McpCall)(nil),
		ItemMcpListTools:         (*McpListTools)(nil),
		ItemMcpApprovalRequest:   (*McpApprovalRequest)(nil),
		ItemMcpApprovalResponse:  (*McpApprovalResponse)(nil),
		ItemReferenceType:        (*ItemReference)(nil),
	})
	decoder.RegisterUnion("type", map[string]ComputerAction{
		ActionClick:       (*ClickAction)(nil),
		ActionDoubleClick: (*DoubleClickAction)(nil),
		ActionDrag:        (*DragAction)(nil),
		ActionKeypress:    (*KeypressAction)(nil),
		ActionMove:        (*MoveAction)(nil),
		ActionScreenshot:  (*ScreenshotAction)(nil),
		ActionScroll:      (*ScrollAction)(nil),
		ActionType:        (*TypeAction)(nil),
		ActionWait:        (*WaitAction)(nil),
	})
	decoder.RegisterUnion("type", map[string]CodeInterpreterOutput{
		OutputLogs:  (*CodeInterpreterLogs)(nil),
		OutputImage: (*CodeInterpreterImage)(nil),
	})
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage returns an input message with the given role and content
func NewMessage(role MessageRole, content MessageContent) *Message {
	return &Message{Type: ItemMessage, Role: role, Content: content}
}

// NewUserMessage returns a text message from the user
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, NewText(text))
}

// NewDeveloperMessage returns a text message with instructions for the model
func NewDeveloperMessage(text string) *Message {
	return NewMessage(RoleDeveloper, NewText(text))
}

// NewFunctionCallOutput returns the output of a function call, to be
// returned to the model
func NewFunctionCallOutput(callId, output string) *FunctionCallOutput {
	return &FunctionCallOutput{Type: ItemFunctionCallOutput, CallId: callId, Output: output}
}

// NewMcpApprovalResponse returns an approval or denial of an MCP tool call
func NewMcpApprovalResponse(requestId string, approve bool) *McpApprovalResponse {
	return &McpApprovalResponse{Type: ItemMcpApprovalResponse, ApprovalRequestId: requestId, Approve: approve}
}

// NewItemReference returns a reference to an earlier item
func NewItemReference(id string) *ItemReference {
	return &ItemReference{Type: ItemReferenceType, Id: id}
}

////////////////////////////////////////////////////////////////////////////////
// ITEM TYPES

func (*Message) ItemType() string              { return ItemMessage }
func (*FileSearchCall) ItemType() string       { return ItemFileSearchCall }
func (*FunctionCall) ItemType() string         { return ItemFunctionCall }
func (*FunctionCallOutput) ItemType() string   { return ItemFunctionCallOutput }
func (*WebSearchCall) ItemType() string        { return ItemWebSearchCall }
func (*ComputerCall) ItemType() string         { return ItemComputerCall }
func (*ComputerCallOutput) ItemType() string   { return ItemComputerCallOutput }
func (*Reasoning) ItemType() string            { return ItemReasoning }
func (*ImageGenerationCall) ItemType() string  { return ItemImageGenerationCall }
func (*CodeInterpreterCall) ItemType() string  { return ItemCodeInterpreterCall }
func (*LocalShellCall) ItemType() string       { return ItemLocalShellCall }
func (*LocalShellCallOutput) ItemType() string { return ItemLocalShellCallOutput }
func (*McpCall) ItemType() string              { return ItemMcpCall }
func (*McpListTools) ItemType() string         { return ItemMcpListTools }
func (*McpApprovalRequest) ItemType() string   { return ItemMcpApprovalRequest }
func (*McpApprovalResponse) ItemType() string  { return ItemMcpApprovalResponse }
func (*ItemReference) ItemType() string        { return ItemReferenceType }

func (*ClickAction) ActionType() string       { return ActionClick }
func (*DoubleClickAction) ActionType() string { return ActionDoubleClick }
func (*DragAction) ActionType() string        { return ActionDrag }
func (*KeypressAction) ActionType() string    { return ActionKeypress }
func (*MoveAction) ActionType() string        { return ActionMove }
func (*ScreenshotAction) ActionType() string  { return ActionScreenshot }
func (*ScrollAction) ActionType() string      { return ActionScroll }
func (*TypeAction) ActionType() string        { return ActionType }
func (*WaitAction) ActionType() string        { return ActionWait }

func (*CodeInterpreterLogs) OutputType() string  { return OutputLogs }
func (*CodeInterpreterImage) OutputType() string { return OutputImage }
