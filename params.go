package jsonrpc2

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

type paramsKind uint8

const (
	paramsAbsent paramsKind = iota
	paramsPositional
	paramsNamed
)

// Params are the arguments of a call: positional (a JSON array) or named
// (a JSON object). The zero Params means "no params".
type Params struct {
	kind       paramsKind                 // kind tells which of the fields is set
	positional []json.RawMessage          // positional holds array-shaped params
	named      map[string]json.RawMessage // named holds object-shaped params
}

// PositionalParams returns array-shaped params.
func PositionalParams(values ...json.RawMessage) Params {
	p := Params{kind: paramsPositional, positional: make([]json.RawMessage, len(values))}
	for i, v := range values {
		p.positional[i] = compact(v)
	}
	return p
}

// NamedParams returns object-shaped params.
func NamedParams(values map[string]json.RawMessage) Params {
	p := Params{kind: paramsNamed, named: make(map[string]json.RawMessage, len(values))}
	for k, v := range values {
		p.named[k] = compact(v)
	}
	return p
}

// ParseParams builds Params from a JSON array or object.
func ParseParams(raw json.RawMessage) (Params, error) {
	if !gjson.ValidBytes(raw) {
		return Params{}, errors.New("jsonrpc2: params are not valid JSON")
	}
	p, verr := decodeParams(gjson.ParseBytes(raw), "")
	if verr != nil {
		return Params{}, ValidationErrors{*verr}
	}
	return p, nil
}

// IsZero reports whether the params are absent.
func (p Params) IsZero() bool { return p.kind == paramsAbsent }

func (p Params) IsPositional() bool { return p.kind == paramsPositional }
func (p Params) IsNamed() bool      { return p.kind == paramsNamed }

// Len returns the number of params.
func (p Params) Len() int {
	switch p.kind {
	case paramsPositional:
		return len(p.positional)
	case paramsNamed:
		return len(p.named)
	}
	return 0
}

// Positional returns a copy of array-shaped params.
func (p Params) Positional() ([]json.RawMessage, bool) {
	if p.kind != paramsPositional {
		return nil, false
	}
	return append([]json.RawMessage(nil), p.positional...), true
}

// Named returns a copy of object-shaped params.
func (p Params) Named() (map[string]json.RawMessage, bool) {
	if p.kind != paramsNamed {
		return nil, false
	}
	out := make(map[string]json.RawMessage, len(p.named))
	for k, v := range p.named {
		out[k] = v
	}
	return out, true
}

// Raw returns the params as JSON, or nil when absent.
func (p Params) Raw() json.RawMessage {
	if p.kind == paramsAbsent {
		return nil
	}
	raw, err := p.MarshalJSON()
	if err != nil {
		return nil
	}
	return raw
}

func (p Params) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case paramsPositional:
		return marshal(p.positional)
	case paramsNamed:
		return marshal(p.named)
	}
	return []byte("null"), nil
}

func decodeParams(r gjson.Result, path string) (Params, *ValidationError) {
	switch {
	case r.IsArray():
		elems := r.Array()
		values := make([]json.RawMessage, len(elems))
		for i, el := range elems {
			values[i] = json.RawMessage(el.Raw)
		}
		return PositionalParams(values...), nil
	case r.IsObject():
		values := make(map[string]json.RawMessage)
		r.ForEach(func(key, value gjson.Result) bool {
			values[key.Str] = json.RawMessage(value.Raw)
			return true
		})
		return NamedParams(values), nil
	}
	return Params{}, &ValidationError{Path: path, Reason: "must be an array or an object"}
}
