package jsonrpc2

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type idKind uint8

const (
	idAbsent idKind = iota
	idString
	idNumber
)

// ID is a request correlation id: a string or a number.
//
// Numbers keep their exact wire text, so ids beyond 64-bit range or with a
// fractional part round-trip unchanged. The zero ID means "no id". ID is
// comparable and may be used as a map key.
type ID struct {
	kind  idKind
	value string
}

// StringID returns a string id.
func StringID(s string) ID {
	return ID{kind: idString, value: s}
}

// IntID returns a numeric id.
func IntID(n int64) ID {
	return ID{kind: idNumber, value: strconv.FormatInt(n, 10)}
}

// NumberID returns a numeric id holding n verbatim.
func NumberID(n json.Number) (ID, error) {
	if !isNumber(string(n)) {
		return ID{}, fmt.Errorf("jsonrpc2: %q is not a JSON number", string(n))
	}
	return ID{kind: idNumber, value: string(n)}, nil
}

// NewUUID returns a string id holding a random UUID.
func NewUUID() ID {
	return StringID(uuid.NewString())
}

func isNumber(s string) bool {
	if !gjson.Valid(s) {
		return false
	}
	r := gjson.Parse(s)
	return r.Type == gjson.Number && r.Raw == s
}

// IsZero reports whether the id is absent (null on the wire).
func (id ID) IsZero() bool { return id.kind == idAbsent }

func (id ID) IsString() bool { return id.kind == idString }
func (id ID) IsNumber() bool { return id.kind == idNumber }

// Str returns the value of a string id.
func (id ID) Str() (string, bool) {
	return id.value, id.kind == idString
}

// Number returns the exact text of a numeric id.
func (id ID) Number() (json.Number, bool) {
	return json.Number(id.value), id.kind == idNumber
}

// String returns the id as it appears on the wire.
func (id ID) String() string {
	switch id.kind {
	case idString:
		return strconv.Quote(id.value)
	case idNumber:
		return id.value
	}
	return "null"
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idString:
		return marshal(id.value)
	case idNumber:
		return []byte(id.value), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a string, a number or null (the zero ID).
func (id *ID) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("jsonrpc2: invalid id %q", data)
	}
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		*id = ID{}
		return nil
	}
	v, verr := decodeID(r, "")
	if verr != nil {
		return ValidationErrors{*verr}
	}
	*id = v
	return nil
}

func decodeID(r gjson.Result, path string) (ID, *ValidationError) {
	switch r.Type {
	case gjson.String:
		return StringID(r.Str), nil
	case gjson.Number:
		return ID{kind: idNumber, value: r.Raw}, nil
	}
	return ID{}, &ValidationError{Path: path, Reason: "must be a string or a number"}
}
