package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	// Packages
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Content is a part of a message, selected by its "type"
type Content interface {
	ContentType() string
}

// MessageContent is either plain text or a list of content parts
type MessageContent struct {
	Text  string
	Parts []Content
}

// InputText is a text input to the model
type InputText struct {
	Type string `json:"type"`
	Text string `json:"text,required"`
}

// InputImage is an image input to the model, referenced by URL or file
type InputImage struct {
	Type     string      `json:"type"`
	Detail   ImageDetail `json:"detail,omitempty"`
	FileId   string      `json:"file_id,omitempty"`
	ImageURL string      `json:"image_url,omitempty"` // URL or base64 data URL
}

// InputFile is a file input to the model
type InputFile struct {
	Type     string `json:"type"`
	FileData string `json:"file_data,omitempty"`
	FileId   string `json:"file_id,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// OutputText is text output by the model
type OutputText struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,required"`
	Annotations []Annotation `json:"annotations"`
	Logprobs    []Logprob    `json:"logprobs,omitempty"`
}

// Refusal is a refusal by the model
type Refusal struct {
	Type    string `json:"type"`
	Refusal string `json:"refusal,required"`
}

// Logprob is the log probability of an output token
type Logprob struct {
	Token       string       `json:"token"`
	Bytes       []uint       `json:"bytes"`
	Logprob     float64      `json:"logprob"`
	TopLogprobs []TopLogprob `json:"top_logprobs,omitempty"`
}

// TopLogprob is one of the most likely tokens at a position
type TopLogprob struct {
	Token   string  `json:"token"`
	Bytes   []uint  `json:"bytes"`
	Logprob float64 `json:"logprob"`
}

// Annotation is a citation or file path within output text, selected by
// its "type"
type Annotation interface {
	AnnotationType() string
}

type FileCitation struct {
	Type     string `json:"type"`
	FileId   string `json:"file_id,required"`
	Filename string `json:"filename,omitempty"`
	Index    uint   `json:"index"`
}

type URLCitation struct {
	Type       string `json:"type"`
	StartIndex uint   `json:"start_index"`
	EndIndex   uint   `json:"end_index"`
	Title      string `json:"title"`
	URL        string `json:"url,required"`
}

type ContainerFileCitation struct {
	Type        string `json:"type"`
	ContainerId string `json:"container_id,required"`
	FileId      string `json:"file_id,required"`
	Filename    string `json:"filename,omitempty"`
	StartIndex  uint   `json:"start_index"`
	EndIndex    uint   `json:"end_index"`
}

type FilePath struct {
	Type   string `json:"type"`
	FileId string `json:"file_id,required"`
	Index  uint   `json:"index"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Content types
const (
	ContentInputText  = "input_text"
	ContentInputImage = "input_image"
	ContentInputFile  = "input_file"
	ContentOutputText = "output_text"
	ContentRefusal    = "refusal"
)

// Annotation types
const (
	AnnotationFileCitation          = "file_citation"
	AnnotationURLCitation           = "url_citation"
	AnnotationContainerFileCitation = "container_file_citation"
	AnnotationFilePath              = "file_path"
)

func init() {
	decoder.RegisterUnion("type", map[string]Content{
		ContentInputText:  (*InputText)(nil),
		ContentInputImage: (*InputImage)(nil),
		ContentInputFile:  (*InputFile)(nil),
		ContentOutputText: (*OutputText)(nil),
		ContentRefusal:    (*Refusal)(nil),
	})
	decoder.RegisterUnion("type", map[string]Annotation{
		AnnotationFileCitation:          (*FileCitation)(nil),
		AnnotationURLCitation:           (*URLCitation)(nil),
		AnnotationContainerFileCitation: (*ContainerFileCitation)(nil),
		AnnotationFilePath:              (*FilePath)(nil),
	})
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewInputText returns text content for a message
func NewInputText(text string) *InputText {
	return &InputText{Type: ContentInputText, Text: text}
}

// NewInputImageURL returns image content for a message, referenced by a
// URL or a base64 data URL
func NewInputImageURL(url string, detail ImageDetail) *InputImage {
	return &InputImage{Type: ContentInputImage, ImageURL: url, Detail: detail}
}

// NewInputFileId returns file content for a message, referenced by the
// identifier of an uploaded file
func NewInputFileId(id string) *InputFile {
	return &InputFile{Type: ContentInputFile, FileId: id}
}

// NewText returns message content which is plain text
func NewText(text string) MessageContent {
	return MessageContent{Text: text}
}

// NewParts returns message content made of one or more parts
func NewParts(parts ...Content) MessageContent {
	return MessageContent{Parts: parts}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

// String returns the text of the content, concatenating any text parts
func (c MessageContent) String() string {
	if c.Parts == nil {
		return c.Text
	}
	var str strings.Builder
	for _, part := range c.Parts {
		switch part := part.(type) {
		case *InputText:
			str.WriteString(part.Text)
		case *OutputText:
			str.WriteString(part.Text)
		}
	}
	return str.String()
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Parts == nil {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Parts)
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	if data = bytes.TrimSpace(data); len(data) > 0 && data[0] == '"' {
		c.Parts = nil
		return decoder.DecodeInto(data, &c.Text)
	}
	c.Text = ""
	return decoder.DecodeInto(data, &c.Parts)
}

////////////////////////////////////////////////////////////////////////////////
// CONTENT TYPES

func (*InputText) ContentType() string  { return ContentInputText }
func (*InputImage) ContentType() string { return ContentInputImage }
func (*InputFile) ContentType() string  { return ContentInputFile }
func (*OutputText) ContentType() string { return ContentOutputText }
func (*Refusal) ContentType() string    { return ContentRefusal }

func (*FileCitation) AnnotationType() string          { return AnnotationFileCitation }
func (*URLCitation) AnnotationType() string           { return AnnotationURLCitation }
func (*ContainerFileCitation) AnnotationType() string { return AnnotationContainerFileCitation }
func (*FilePath) AnnotationType() string              { return AnnotationFilePath }
