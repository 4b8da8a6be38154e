// Package entry models the recursive rulebook document tree.
//
// An Entry is a string, an integer, or a Block. Blocks are the closed set of
// structured kinds (sections, tables, lists, insets, stat blocks and so on)
// identified in JSON by their "type" field. Rendering is double dispatch
// through an EntryRenderer; see Render.
package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// Form says which of the three shapes an Entry has.
type Form int

const (
	FormString Form = iota
	FormBlock
	FormInteger
)

func (f Form) String() string {
	switch f {
	case FormBlock:
		return "block"
	case FormInteger:
		return "integer"
	default:
		return "string"
	}
}

// Entry is a node of the document tree. The zero value is the empty string.
type Entry struct {
	form  Form
	block Block
	text  string
	num   int64
}

// New wraps a block. b must not be nil.
func New(b Block) Entry { return Entry{form: FormBlock, block: b} }

// String returns a string leaf.
func String(s string) Entry { return Entry{form: FormString, text: s} }

// Integer returns an integer leaf. Integer leaves exist in the source data
// and are preserved for round trips; they carry no further meaning.
func Integer(n int64) Entry { return Entry{form: FormInteger, num: n} }

// Strings wraps each s as a string leaf.
func Strings(ss ...string) []Entry {
	out := make([]Entry, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return out
}

// Ptr returns a pointer to e, for the boxed single-entry fields.
func Ptr(e Entry) *Entry { return &e }

func (e Entry) Form() Form { return e.form }

// Block returns the block and true if e is a block.
func (e Entry) Block() (Block, bool) {
	return e.block, e.form == FormBlock
}

// Text returns the string and true if e is a string leaf.
func (e Entry) Text() (string, bool) {
	return e.text, e.form == FormString
}

// Integer returns the number and true if e is an integer leaf.
func (e Entry) Integer() (int64, bool) {
	return e.num, e.form == FormInteger
}

// MarshalJSON writes blocks as objects whose first key is "type".
func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.form {
	case FormInteger:
		return strconv.AppendInt(nil, e.num, 10), nil
	case FormBlock:
		if e.block == nil {
			return nil, errors.NewValidation("entry", "block entry has no block")
		}
		return marshalBlock(e.block)
	default:
		return json.Marshal(e.text)
	}
}

func marshalBlock(b Block) ([]byte, error) {
	v, err := encodable(b)
	if err != nil {
		return nil, errors.NewValidation("entry", err.Error())
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(body) + 24)
	buf.WriteString(`{"type":`)
	typ, _ := json.Marshal(string(b.Type()))
	buf.Write(typ)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a JSON string, an integer, or an object with a
// known "type". null is rejected.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.NewParse("entry", "", "empty input")
	}
	if string(data) == "null" {
		return errors.NewParse("entry", "", "null is not an entry")
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = String(s)
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return &errors.ParseError{Format: "entry", Message: fmt.Sprintf("%s is not an integer", data), Err: err}
		}
		*e = Integer(n)
		return nil
	case c == '{':
		b, err := decodeBlock(data)
		if err != nil {
			return err
		}
		*e = New(b)
		return nil
	default:
		return errors.NewParse("entry", "", fmt.Sprintf("unexpected %q, want string, integer or object", c))
	}
}

// validator is implemented by kinds with constraints the JSON shape alone
// cannot express.
type validator interface {
	validate() error
}

func decodeBlock(data []byte) (Block, error) {
	var head struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &errors.ParseError{Format: "entry", Message: err.Error(), Err: err}
	}
	if head.Type == "" {
		return nil, errors.NewParse("entry", "", `object has no "type"`)
	}
	factory, ok := blockFactories[head.Type]
	if !ok {
		return nil, &errors.ParseError{
			Format:  "entry",
			Message: fmt.Sprintf("unknown type %q", head.Type),
			Err:     errors.NewNotFound("block type", string(head.Type)),
		}
	}
	b := factory()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, &errors.ParseError{Format: "entry", Path: string(head.Type), Message: err.Error(), Err: err}
	}
	if err := settle(b); err != nil {
		return nil, &errors.ParseError{Format: "entry", Path: string(head.Type), Message: err.Error(), Err: err}
	}
	if v, ok := b.(validator); ok {
		if err := v.validate(); err != nil {
			return nil, &errors.ParseError{Format: "entry", Path: string(head.Type), Message: err.Error(), Err: err}
		}
	}
	return b, nil
}

// Parse decodes a single entry from JSON.
func Parse(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ParseList decodes a JSON array of entries.
func ParseList(data []byte) ([]Entry, error) {
	var es []Entry
	if err := json.Unmarshal(data, &es); err != nil {
		return nil, err
	}
	return es, nil
}
