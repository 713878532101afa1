package jsonrpc2

import (
	"bytes"
	"encoding/json"
)

// Version is the value of the "jsonrpc" member of every message.
const Version = "2.0"

// SyntaxError reports text that is not a single well-formed JSON value.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "jsonrpc2: malformed JSON: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse checks that data holds exactly one JSON value and returns it compacted.
func Parse(data []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data and decodes the message it holds.
// Malformed text yields *SyntaxError, shape failures yield ValidationErrors.
func Unmarshal(data []byte) (Message, error) {
	raw, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return DecodeMessage(raw)
}

// Marshal returns the canonical wire form of m.
func Marshal(m Message) ([]byte, error) {
	return EncodeMessage(m)
}

// marshal is json.Marshal without HTML escaping and without the trailing newline.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// compact returns a compacted copy of raw. raw must be valid JSON; an empty
// raw becomes null.
func compact(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return buf.Bytes()
}
