package schema

import (
	"encoding/json"

	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EventType is the "type" of a streamed event
type EventType string

// StreamEvent is an event streamed while a response is generated. The
// concrete type is one of the *Event structs, selected by the event type.
type StreamEvent interface {
	EventType() EventType
	Sequence() uint64
}

// Event is the header common to all streamed events
type Event struct {
	Type           EventType `json:"type"`
	SequenceNumber uint64    `json:"sequence_number,required"`
}

// OutputRef refers to an item in the output of a response
type OutputRef struct {
	ItemId      string `json:"item_id,required"`
	OutputIndex uint64 `json:"output_index"`
}

// ContentRef refers to a content part of an output item
type ContentRef struct {
	OutputRef
	ContentIndex uint64 `json:"content_index"`
}

// SummaryRef refers to a summary part of a reasoning item
type SummaryRef struct {
	OutputRef
	SummaryIndex uint64 `json:"summary_index"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE LIFECYCLE EVENTS

type CreatedEvent struct {
	Event
	Nonce    string   `json:"nonce,omitempty"`
	Response Response `json:"response,required"`
}

type QueuedEvent struct {
	Event
	Response Response `json:"response,required"`
}

type InProgressEvent struct {
	Event
	Response Response `json:"response,required"`
}

type CompletedEvent struct {
	Event
	Response Response `json:"response,required"`
}

type FailedEvent struct {
	Event
	Response Response `json:"response,required"`
}

type IncompleteEvent struct {
	Event
	Response Response `json:"response,required"`
}

// ErrorEvent is an error which occurred while streaming
type ErrorEvent struct {
	Event
	Code    *string `json:"code"`
	Message string  `json:"message,required"`
	Param   *string `json:"param"`
}

///////////////////////////////////////////////////////////////////////////////
// OUTPUT ITEM EVENTS

type OutputItemAddedEvent struct {
	Event
	OutputIndex uint64 `json:"output_index"`
	Item        Item   `json:"item,required"`
}

type OutputItemDoneEvent struct {
	Event
	OutputIndex uint64 `json:"output_index"`
	Item        Item   `json:"item,required"`
}

type ContentPartAddedEvent struct {
	Event
	ContentRef
	Part Content `json:"part,required"`
}

type ContentPartDoneEvent struct {
	Event
	ContentRef
	Part Content `json:"part,required"`
}

///////////////////////////////////////////////////////////////////////////////
// TEXT EVENTS

type OutputTextDeltaEvent struct {
	Event
	ContentRef
	Delta string `json:"delta"`
}

type OutputTextDoneEvent struct {
	Event
	ContentRef
	Text string `json:"text"`
}

type AnnotationAddedEvent struct {
	Event
	ContentRef
	AnnotationIndex uint64     `json:"annotation_index"`
	Annotation      Annotation `json:"annotation,required"`
}

type RefusalDeltaEvent struct {
	Event
	ContentRef
	Delta string `json:"delta"`
}

type RefusalDoneEvent struct {
	Event
	ContentRef
	Refusal string `json:"refusal"`
}

///////////////////////////////////////////////////////////////////////////////
// AUDIO EVENTS

type AudioDeltaEvent struct {
	Event
	Delta string `json:"delta"` // base64 encoded
}

type AudioDoneEvent struct {
	Event
}

type AudioTranscriptDeltaEvent struct {
	Event
	Delta string `json:"delta"`
}

type AudioTranscriptDoneEvent struct {
	Event
}

///////////////////////////////////////////////////////////////////////////////
// FUNCTION CALL EVENTS

type FunctionCallArgumentsDeltaEvent struct {
	Event
	OutputRef
	Delta string `json:"delta"`
}

type FunctionCallArgumentsDoneEvent struct {
	Event
	OutputRef
	Arguments string `json:"arguments"`
}

///////////////////////////////////////////////////////////////////////////////
// REASONING EVENTS

type ReasoningDeltaEvent struct {
	Event
	ContentRef
	Delta json.RawMessage `json:"delta"`
}

type ReasoningDoneEvent struct {
	Event
	ContentRef
	Text string `json:"text"`
}

type ReasoningSummaryDeltaEvent struct {
	Event
	SummaryRef
	Delta json.RawMessage `json:"delta"`
}

type ReasoningSummaryDoneEvent struct {
	Event
	SummaryRef
	Text string `json:"text"`
}

type ReasoningSummaryPartAddedEvent struct {
	Event
	SummaryRef
	Part ReasoningSummary `json:"part,required"`
}

type ReasoningSummaryPartDoneEvent struct {
	Event
	SummaryRef
	Part ReasoningSummary `json:"part,required"`
}

type ReasoningSummaryTextDeltaEvent struct {
	Event
	SummaryRef
	Delta string `json:"delta"`
}

type ReasoningSummaryTextDoneEvent struct {
	Event
	SummaryRef
	Text string `json:"text"`
}

///////////////////////////////////////////////////////////////////////////////
// HOSTED TOOL EVENTS

type FileSearchInProgressEvent struct {
	Event
	OutputRef
}

type FileSearchSearchingEvent struct {
	Event
	OutputRef
}

type FileSearchCompletedEvent struct {
	Event
	OutputRef
}

type WebSearchInProgressEvent struct {
	Event
	OutputRef
}

type WebSearchSearchingEvent struct {
	Event
	OutputRef
}

type WebSearchCompletedEvent struct {
	Event
	OutputRef
}

type CodeInterpreterInProgressEvent struct {
	Event
	OutputRef
}

type CodeInterpreterInterpretingEvent struct {
	Event
	OutputRef
}

type CodeInterpreterCompletedEvent struct {
	Event
	OutputRef
}

type CodeInterpreterCodeDeltaEvent struct {
	Event
	OutputRef
	Delta string `json:"delta"`
}

type CodeInterpreterCodeDoneEvent struct {
	Event
	OutputRef
	Code string `json:"code"`
}

type ImageGenerationInProgressEvent struct {
	Event
	OutputRef
}

type ImageGenerationGeneratingEvent struct {
	Event
	OutputRef
}

type ImageGenerationPartialImageEvent struct {
	Event
	OutputRef
	PartialImageB64   string `json:"partial_image_b64"`
	PartialImageIndex uint64 `json:"partial_image_index"`
}

type ImageGenerationCompletedEvent struct {
	Event
	OutputRef
}

///////////////////////////////////////////////////////////////////////////////
// MCP EVENTS

type McpArgumentsDeltaEvent struct {
	Event
	OutputRef
	Delta json.RawMessage `json:"delta"`
}

type McpArgumentsDoneEvent struct {
	Event
	OutputRef
	Arguments json.RawMessage `json:"arguments"`
}

type McpInProgressEvent struct {
	Event
	OutputRef
}

type McpCompletedEvent struct {
	Event
}

type McpFailedEvent struct {
	Event
}

type McpListToolsInProgressEvent struct {
	Event
}

type McpListToolsCompletedEvent struct {
	Event
}

type McpListToolsFailedEvent struct {
	Event
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EventCreated                   EventType = "response.created"
	EventQueued                    EventType = "response.queued"
	EventInProgress                EventType = "response.in_progress"
	EventCompleted                 EventType = "response.completed"
	EventFailed                    EventType = "response.failed"
	EventIncomplete                EventType = "response.incomplete"
	EventError                     EventType = "error"
	EventOutputItemAdded           EventType = "response.output_item.added"
	EventOutputItemDone            EventType = "response.output_item.done"
	EventContentPartAdded          EventType = "response.content_part.added"
	EventContentPartDone           EventType = "response.content_part.done"
	EventOutputTextDelta           EventType = "response.output_text.delta"
	EventOutputTextDone            EventType = "response.output_text.done"
	EventAnnotationAdded           EventType = "response.output_text.annotation.added"
	EventRefusalDelta              EventType = "response.refusal.delta"
	EventRefusalDone               EventType = "response.refusal.done"
	EventAudioDelta                EventType = "response.audio.delta"
	EventAudioDone                 EventType = "response.audio.done"
	EventAudioTranscriptDelta      EventType = "response.audio_transcript.delta"
	EventAudioTranscriptDone       EventType = "response.audio_transcript.done"
	EventFunctionCallArgsDelta     EventType = "response.function_call_arguments.delta"
	EventFunctionCallArgsDone      EventType = "response.function_call_arguments.done"
	EventReasoningDelta            EventType = "response.reasoning_delta"
	EventReasoningDone             EventType = "response.reasoning_done"
	EventReasoningSummaryDelta     EventType = "response.reasoning_summary_delta"
	EventReasoningSummaryDone      EventType = "response.reasoning_summary_done"
	EventReasoningSummaryPartAdded EventType = "response.reasoning_summary_part.added"
	EventReasoningSummaryPartDone  EventType = "response.reasoning_summary_part.done"
	EventReasoningSummaryTextDelta EventType = "response.reasoning_summary_text.delta"
	EventReasoningSummaryTextDone  EventType = "response.reasoning_summary_text.done"
	EventFileSearchInProgress      EventType = "response.file_search.in_progress"
	EventFileSearchSearching       EventType = "response.file_search.searching"
	EventFileSearchCompleted       EventType = "response.file_search.completed"
	EventWebSearchInProgress       EventType = "response.web_search.in_progress"
	EventWebSearchSearching        EventType = "response.web_search.searching"
	EventWebSearchCompleted        EventType = "response.web_search.completed"
	EventCodeInterpreterInProgress EventType = "response.code_interpreter.in_progress"
	EventCodeInterpreterInterpret  EventType = "response.code_interpreter.interpreting"
	EventCodeInterpreterCompleted  EventType = "response.code_interpreter.completed"
	EventCodeInterpreterCodeDelta  EventType = "response.code_interpreter.code.delta"
	EventCodeInterpreterCodeDone   EventType = "response.code_interpreter.code.done"
	EventImageGenInProgress        EventType = "response.image_generation.in_progress"
	EventImageGenGenerating        EventType = "response.image_generation.generating"
	EventImageGenPartialImage      EventType = "response.image_generation.partial_image"
	EventImageGenCompleted         EventType = "response.image_generation.completed"
	EventMcpArgumentsDelta         EventType = "response.mcp.arguments.delta"
	EventMcpArgumentsDone          EventType = "response.mcp.arguments.done"
	EventMcpInProgress             EventType = "response.mcp.in_progress"
	EventMcpCompleted              EventType = "response.mcp.completed"
	EventMcpFailed                 EventType = "response.mcp.failed"
	EventMcpListToolsInProgress    EventType = "response.mcp.list_tools.in_progress"
	EventMcpListToolsCompleted     EventType = "response.mcp.list_tools.completed"
	EventMcpListToolsFailed        EventType = "response.mcp.list_tools.failed"
)

func init() {
	decoder.RegisterUnion("type", map[string]StreamEvent{
		string(EventCreated):                   (*CreatedEvent)(nil),
		string(EventQueued):                    (*QueuedEvent)(nil),
		string(EventInProgress):                (*InProgressEvent)(nil),
		string(EventCompleted):                 (*CompletedEvent)(nil),
		string(EventFailed):                    (*FailedEvent)(nil),
		string(EventIncomplete):                (*IncompleteEvent)(nil),
		string(EventError):                     (*ErrorEvent)(nil),
		string(EventOutputItemAdded):           (*OutputItemAddedEvent)(nil),
		string(EventOutputItemDone):            (*OutputItemDoneEvent)(nil),
		string(EventContentPartAdded):          (*ContentPartAddedEvent)(nil),
		string(EventContentPartDone):           (*ContentPartDoneEvent)(nil),
		string(EventOutputTextDelta):           (*OutputTextDeltaEvent)(nil),
		string(EventOutputTextDone):            (*OutputTextDoneEvent)(nil),
		string(EventAnnotationAdded):           (*AnnotationAddedEvent)(nil),
		string(EventRefusalDelta):              (*RefusalDeltaEvent)(nil),
		string(EventRefusalDone):               (*RefusalDoneEvent)(nil),
		string(EventAudioDelta):                (*AudioDeltaEvent)(nil),
		string(EventAudioDone):                 (*AudioDoneEvent)(nil),
		string(EventAudioTranscriptDelta):      (*AudioTranscriptDeltaEvent)(nil),
		string(EventAudioTranscriptDone):       (*AudioTranscriptDoneEvent)(nil),
		string(EventFunctionCallArgsDelta):     (*FunctionCallArgumentsDeltaEvent)(nil),
		string(EventFunctionCallArgsDone):      (*FunctionCallArgumentsDoneEvent)(nil),
		string(EventReasoningDelta):            (*ReasoningDeltaEvent)(nil),
		string(EventReasoningDone):             (*ReasoningDoneEvent)(nil),
		string(EventReasoningSummaryDelta):     (*ReasoningSummaryDeltaEvent)(nil),
		string(EventReasoningSummaryDone):      (*ReasoningSummaryDoneEvent)(nil),
		string(EventReasoningSummaryPartAdded): (*ReasoningSummaryPartAddedEvent)(nil),
		string(EventReasoningSummaryPartDone):  (*ReasoningSummaryPartDoneEvent)(nil),
		string(EventReasoningSummaryTextDelta): (*ReasoningSummaryTextDeltaEvent)(nil),
		string(EventReasoningSummaryTextDone):  (*ReasoningSummaryTextDoneEvent)(nil),
		string(EventFileSearchInProgress):      (*FileSearchInProgressEvent)(nil),
		string(EventFileSearchSearching):       (*FileSearchSearchingEvent)(nil),
		string(EventFileSearchCompleted):       (*FileSearchCompletedEvent)(nil),
		string(EventWebSearchInProgress):       (*WebSearchInProgressEvent)(nil),
		string(EventWebSearchSearching):        (*WebSearchSearchingEvent)(nil),
		string(EventWebSearchCompleted):        (*WebSearchCompletedEvent)(nil),
		string(EventCodeInterpreterInProgress): (*CodeInterpreterInProgressEvent)(nil),
		string(EventCodeInterpreterInterpret):  (*CodeInterpreterInterpretingEvent)(nil),
		string(EventCodeInterpreterCompleted):  (*CodeInterpreterCompletedEvent)(nil),
		string(EventCodeInterpreterCodeDelta):  (*CodeInterpreterCodeDeltaEvent)(nil),
		string(EventCodeInterpreterCodeDone):   (*CodeInterpreterCodeDoneEvent)(nil),
		string(EventImageGenInProgress):        (*ImageGenerationInProgressEvent)(nil),
		string(EventImageGenGenerating):        (*ImageGenerationGeneratingEvent)(nil),
		string(EventImageGenPartialImage):      (*ImageGenerationPartialImageEvent)(nil),
		string(EventImageGenCompleted):         (*ImageGenerationCompletedEvent)(nil),
		string(EventMcpArgumentsDelta):         (*McpArgumentsDeltaEvent)(nil),
		string(EventMcpArgumentsDone):          (*McpArgumentsDoneEvent)(nil),
		string(EventMcpInProgress):             (*McpInProgressEvent)(nil),
		string(EventMcpCompleted):              (*McpCompletedEvent)(nil),
		string(EventMcpFailed):                 (*McpFailedEvent)(nil),
		string(EventMcpListToolsInProgress):    (*McpListToolsInProgressEvent)(nil),
		string(EventMcpListToolsCompleted):     (*McpListToolsCompletedEvent)(nil),
		string(EventMcpListToolsFailed):        (*McpListToolsFailedEvent)(nil),
	})
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DecodeStreamEvent decodes a single event payload. An unknown event type
// is an error at the "type" key.
func DecodeStreamEvent(data []byte) (StreamEvent, error) {
	return decoder.Decode[StreamEvent](data)
}

// EventType returns the type of the event
func (e *Event) EventType() EventType {
	return e.Type
}

// Sequence returns the position of the event in the stream
func (e *Event) Sequence() uint64 {
	return e.SequenceNumber
}
