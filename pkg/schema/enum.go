package schema

import (
	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ItemStatus is the status of a response or an output item
type ItemStatus string

// MessageRole is the author of a message
type MessageRole string

// ImageDetail is the level of detail for an input image
type ImageDetail string

// ServiceTier is the processing tier for a request
type ServiceTier string

// TruncationStrategy determines what happens when the input exceeds the
// context window
type TruncationStrategy string

// IncompleteReason is why a response is incomplete
type IncompleteReason string

// ErrorCode is the code of an error reported within a response
type ErrorCode string

// ToolChoiceOption is how the model selects tools
type ToolChoiceOption string

// ComputerEnvironment is the environment of a computer use tool
type ComputerEnvironment string

// Includable is additional output data which can be requested
type Includable string

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StatusInProgress   ItemStatus = "in_progress"
	StatusCompleted    ItemStatus = "completed"
	StatusIncomplete   ItemStatus = "incomplete"
	StatusInterpreting ItemStatus = "interpreting"
	StatusFailed       ItemStatus = "failed"
	StatusSearching    ItemStatus = "searching"
	StatusGenerating   ItemStatus = "generating"
	StatusQueued       ItemStatus = "queued"
	StatusCancelled    ItemStatus = "cancelled"
)

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
	RoleDeveloper MessageRole = "developer"
)

const (
	DetailLow  ImageDetail = "low"
	DetailHigh ImageDetail = "high"
	DetailAuto ImageDetail = "auto"
)

const (
	TierAuto     ServiceTier = "auto"
	TierDefault  ServiceTier = "default"
	TierFlex     ServiceTier = "flex"
	TierScale    ServiceTier = "scale"
	TierPriority ServiceTier = "priority"
)

const (
	TruncationAuto     TruncationStrategy = "auto"
	TruncationDisabled TruncationStrategy = "disabled"
)

const (
	IncompleteMaxOutputTokens IncompleteReason = "max_output_tokens"
	IncompleteContentFilter   IncompleteReason = "content_filter"
)

const (
	ErrorCodeServerError                 ErrorCode = "server_error"
	ErrorCodeRateLimitExceeded           ErrorCode = "rate_limit_exceeded"
	ErrorCodeInvalidPrompt               ErrorCode = "invalid_prompt"
	ErrorCodeVectorStoreTimeout          ErrorCode = "vector_store_timeout"
	ErrorCodeInvalidImage                ErrorCode = "invalid_image"
	ErrorCodeInvalidImageFormat          ErrorCode = "invalid_image_format"
	ErrorCodeInvalidBase64Image          ErrorCode = "invalid_base64_image"
	ErrorCodeInvalidImageURL             ErrorCode = "invalid_image_url"
	ErrorCodeImageTooLarge               ErrorCode = "image_too_large"
	ErrorCodeImageTooSmall               ErrorCode = "image_too_small"
	ErrorCodeImageParseError             ErrorCode = "image_parse_error"
	ErrorCodeImageContentPolicyViolation ErrorCode = "image_content_policy_violation"
	ErrorCodeInvalidImageMode            ErrorCode = "invalid_image_mode"
	ErrorCodeImageFileTooLarge           ErrorCode = "image_file_too_large"
	ErrorCodeUnsupportedImageMediaType   ErrorCode = "unsupported_image_media_type"
	ErrorCodeEmptyImageFile              ErrorCode = "empty_image_file"
	ErrorCodeFailedToDownloadImage       ErrorCode = "failed_to_download_image"
	ErrorCodeImageFileNotFound           ErrorCode = "image_file_not_found"
)

const (
	ToolChoiceNone     ToolChoiceOption = "none"
	ToolChoiceAuto     ToolChoiceOption = "auto"
	ToolChoiceRequired ToolChoiceOption = "required"
)

const (
	EnvironmentWindows ComputerEnvironment = "windows"
	EnvironmentMac     ComputerEnvironment = "mac"
	EnvironmentLinux   ComputerEnvironment = "linux"
	EnvironmentUbuntu  ComputerEnvironment = "ubuntu"
	EnvironmentBrowser ComputerEnvironment = "browser"
)

const (
	IncludeFileSearchResults      Includable = "file_search_call.results"
	IncludeInputImageURL          Includable = "message.input_image.image_url"
	IncludeComputerCallOutputURL  Includable = "computer_call_output.output.image_url"
	IncludeReasoningEncrypted     Includable = "reasoning.encrypted_content"
	IncludeCodeInterpreterOutputs Includable = "code_interpreter_call.outputs"
	IncludeOutputTextLogprobs     Includable = "message.output_text.logprobs"
	IncludeWebSearchSources       Includable = "web_search_call.action.sources"
)

var (
	itemStatuses = []ItemStatus{
		StatusInProgress, StatusCompleted, StatusIncomplete, StatusInterpreting,
		StatusFailed, StatusSearching, StatusGenerating, StatusQueued, StatusCancelled,
	}
	messageRoles        = []MessageRole{RoleUser, RoleAssistant, RoleSystem, RoleDeveloper}
	imageDetails        = []ImageDetail{DetailLow, DetailHigh, DetailAuto}
	serviceTiers        = []ServiceTier{TierAuto, TierDefault, TierFlex, TierScale, TierPriority}
	truncations         = []TruncationStrategy{TruncationAuto, TruncationDisabled}
	incompleteReasons   = []IncompleteReason{IncompleteMaxOutputTokens, IncompleteContentFilter}
	toolChoiceOptions   = []ToolChoiceOption{ToolChoiceNone, ToolChoiceAuto, ToolChoiceRequired}
	computerEnvironment = []ComputerEnvironment{
		EnvironmentWindows, EnvironmentMac, EnvironmentLinux, EnvironmentUbuntu, EnvironmentBrowser,
	}
	errorCodes = []ErrorCode{
		ErrorCodeServerError, ErrorCodeRateLimitExceeded, ErrorCodeInvalidPrompt,
		ErrorCodeVectorStoreTimeout, ErrorCodeInvalidImage, ErrorCodeInvalidImageFormat,
		ErrorCodeInvalidBase64Image, ErrorCodeInvalidImageURL, ErrorCodeImageTooLarge,
		ErrorCodeImageTooSmall, ErrorCodeImageParseError, ErrorCodeImageContentPolicyViolation,
		ErrorCodeInvalidImageMode, ErrorCodeImageFileTooLarge, ErrorCodeUnsupportedImageMediaType,
		ErrorCodeEmptyImageFile, ErrorCodeFailedToDownloadImage, ErrorCodeImageFileNotFound,
	}
	includables = []Includable{
		IncludeFileSearchResults, IncludeInputImageURL, IncludeComputerCallOutputURL,
		IncludeReasoningEncrypted, IncludeCodeInterpreterOutputs, IncludeOutputTextLogprobs,
		IncludeWebSearchSources,
	}
)

////////////////////////////////////////////////////////////////////////////////
// JSON UNMARSHALLING

func (s *ItemStatus) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, s, itemStatuses...)
}

func (r *MessageRole) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, r, messageRoles...)
}

func (d *ImageDetail) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, d, imageDetails...)
}

func (t *ServiceTier) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, t, serviceTiers...)
}

func (t *TruncationStrategy) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, t, truncations...)
}

func (r *IncompleteReason) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, r, incompleteReasons...)
}

func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, c, errorCodes...)
}

func (o *ToolChoiceOption) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, o, toolChoiceOptions...)
}

func (e *ComputerEnvironment) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, e, computerEnvironment...)
}

func (i *Includable) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, i, includables...)
}
