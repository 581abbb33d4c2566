package decoder_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	decoder "github.com/mutablelogic/go-responses/pkg/decoder"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Status string

type Header struct {
	Sequence uint64 `json:"sequence_number,required"`
}

type Part struct {
	Text   string  `json:"text"`
	Status *Status `json:"status,omitempty"`
}

type Item struct {
	Header
	Id    string            `json:"id,required"`
	Parts []Part            `json:"parts"`
	Meta  map[string]string `json:"meta,omitempty"`
	Any   any               `json:"any,omitempty"`
	Skip  string            `json:"-"`
}

type Shape interface {
	Area() float64
}

type Circle struct {
	Type   string  `json:"type"`
	Radius float64 `json:"radius,required"`
}

type Square struct {
	Type string  `json:"type"`
	Side float64 `json:"side,required"`
}

type Drawing struct {
	Shapes []Shape `json:"shapes"`
}

type Frame struct {
	Shape Shape   `json:"shape,required"`
	Extra Shape   `json:"extra,omitempty"`
	Note  *string `json:"note,required"`
}

func (c *Circle) Area() float64 { return 3 * c.Radius * c.Radius }
func (s *Square) Area() float64 { return s.Side * s.Side }

func (s *Status) UnmarshalJSON(data []byte) error {
	return decoder.Enum(data, s, "open", "closed")
}

func init() {
	decoder.RegisterUnion[Shape]("type", map[string]Shape{
		"circle": (*Circle)(nil),
		"square": (*Square)(nil),
	})
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_decoder_001(t *testing.T) {
	assert := assert.New(t)

	// Decode a complete document
	item, err := decoder.Decode[Item]([]byte(`{
		"sequence_number": 3,
		"id": "item_1",
		"parts": [{"text": "a"}, {"text": "b", "status": "open"}],
		"meta": {"k": "v"},
		"any": [1, "two"],
		"-": "ignored",
		"unknown": true
	}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(uint64(3), item.Sequence)
	assert.Equal("item_1", item.Id)
	assert.Len(item.Parts, 2)
	assert.Nil(item.Parts[0].Status)
	if assert.NotNil(item.Parts[1].Status) {
		assert.Equal(Status("open"), *item.Parts[1].Status)
	}
	assert.Equal(map[string]string{"k": "v"}, item.Meta)
	assert.Equal([]any{float64(1), "two"}, item.Any)
	assert.Empty(item.Skip)
}

func Test_decoder_002(t *testing.T) {
	assert := assert.New(t)

	// The path of a type mismatch inside an array
	raw := `{"sequence_number":1,"id":"x","parts":[{"text":"a"},{"text":42}]}`
	_, err := decoder.Decode[Item]([]byte(raw))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("parts[1].text", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrTypeMismatch)
		assert.Equal(raw, decodeErr.Raw)
	}
	assert.ErrorIs(err, responses.ErrSchemaMismatch)
}

func Test_decoder_003(t *testing.T) {
	assert := assert.New(t)

	// Missing required fields, including promoted ones
	_, err := decoder.Decode[Item]([]byte(`{"id":"x"}`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("sequence_number", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrMissingField)
	}

	_, err = decoder.Decode[Item]([]byte(`{"sequence_number":1}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("id", decodeErr.Path)
	}
}

func Test_decoder_004(t *testing.T) {
	assert := assert.New(t)

	// Unknown enum value inside a map
	type Doc struct {
		States map[string]Status `json:"states"`
	}
	_, err := decoder.Decode[Doc]([]byte(`{"states":{"a":"open","b":"ajar"}}`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("states.b", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrUnknownVariant)
		assert.Contains(err.Error(), "ajar")
	}
}

func Test_decoder_005(t *testing.T) {
	assert := assert.New(t)

	// Syntax errors have no path
	_, err := decoder.Decode[Item]([]byte(`{"id":`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Empty(decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrSyntax)
	}

	_, err = decoder.Decode[Item]([]byte(`not json`))
	assert.ErrorIs(err, decoder.ErrSyntax)

	// Wrong kind at the top level
	_, err = decoder.Decode[Item]([]byte(`[1,2]`))
	assert.ErrorIs(err, decoder.ErrTypeMismatch)
}

func Test_decoder_006(t *testing.T) {
	assert := assert.New(t)

	// Unions are selected by discriminator
	drawing, err := decoder.Decode[Drawing]([]byte(`{"shapes":[{"type":"circle","radius":1},{"type":"square","side":2}]}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(drawing.Shapes, 2) {
		assert.IsType(&Circle{}, drawing.Shapes[0])
		assert.IsType(&Square{}, drawing.Shapes[1])
		assert.Equal(float64(4), drawing.Shapes[1].Area())
	}
	assert.Equal([]string{"circle", "square"}, decoder.Variants[Shape]())
}

func Test_decoder_007(t *testing.T) {
	assert := assert.New(t)

	// Unknown and missing discriminators
	_, err := decoder.Decode[Drawing]([]byte(`{"shapes":[{"type":"circle","radius":1},{"type":"hexagon"}]}`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("shapes[1].type", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrUnknownVariant)
	}

	_, err = decoder.Decode[Shape]([]byte(`{"radius":1}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("type", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrMissingField)
	}

	_, err = decoder.Decode[Shape]([]byte(`{"type":"square"}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("side", decodeErr.Path)
	}
}

func Test_decoder_008(t *testing.T) {
	assert := assert.New(t)

	// Unmarshalers which call back into the decoder are rebased
	_, err := decoder.Decode[Wrapper]([]byte(`{"inner":{"value":{"sequence_number":"x","id":"a"}}}`))
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("inner.value.sequence_number", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrTypeMismatch)
	}

	// Plain errors from unmarshalers are reported at their location
	_, err = decoder.Decode[Wrapper]([]byte(`{"inner":"fail"}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("inner", decodeErr.Path)
		assert.EqualError(decodeErr.Cause, "always fails")
	}
}

func Test_decoder_009(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Null values
	item, err := decoder.Decode[Item]([]byte(`{"sequence_number":1,"id":"x","parts":null,"meta":null}`))
	require.NoError(err)
	assert.Nil(item.Parts)
	assert.Nil(item.Meta)

	// Raw messages are kept verbatim
	type Doc struct {
		Raw json.RawMessage `json:"raw"`
	}
	doc, err := decoder.Decode[Doc]([]byte(`{"raw":{"a":[1,2]}}`))
	require.NoError(err)
	assert.JSONEq(`{"a":[1,2]}`, string(doc.Raw))
}

func Test_decoder_010(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("a.b[2].c", decoder.Field("a", "b", 2, "c"))
	assert.Equal("[0].type", decoder.Field(0, "type"))

	err := decoder.Rebase(errors.New("boom"), "x.y")
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("x.y", decodeErr.Path)
	}
	assert.NoError(decoder.Rebase(nil, "x"))
}

func Test_decoder_011(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A union needs a variant
	shape, err := decoder.Decode[Shape]([]byte(`null`))
	assert.Nil(shape)
	assert.ErrorIs(err, responses.ErrSchemaMismatch)
	assert.ErrorIs(err, decoder.ErrTypeMismatch)
	var decodeErr *decoder.Error
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("", decodeErr.Path)
		assert.Equal("null", decodeErr.Raw)
	}
	_, err = decoder.Decode[Drawing]([]byte(`{"shapes":[{"type":"square","side":2},null]}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("shapes[1]", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrTypeMismatch)
	}

	// Required fields are only nullable when they are pointers
	_, err = decoder.Decode[Frame]([]byte(`{"shape":null,"note":"x"}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("shape", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrMissingField)
	}
	_, err = decoder.Decode[Item]([]byte(`{"sequence_number":null,"id":"x"}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("sequence_number", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrMissingField)
	}
	_, err = decoder.Decode[Frame]([]byte(`{"shape":{"type":"circle","radius":1}}`))
	if assert.ErrorAs(err, &decodeErr) {
		assert.Equal("note", decodeErr.Path)
		assert.ErrorIs(err, decoder.ErrMissingField)
	}

	// An optional union and a required pointer may be null
	frame, err := decoder.Decode[Frame]([]byte(`{"shape":{"type":"circle","radius":1},"extra":null,"note":null}`))
	require.NoError(err)
	assert.Equal(3.0, frame.Shape.Area())
	assert.Nil(frame.Extra)
	assert.Nil(frame.Note)
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALERS

type Wrapper struct {
	Inner Inner `json:"inner"`
}

type Inner struct {
	Value Item
}

func (i *Inner) UnmarshalJSON(data []byte) error {
	if string(data) == `"fail"` {
		return errors.New("always fails")
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	return decoder.Rebase(decoder.DecodeInto(members["value"], &i.Value), "value")
}
