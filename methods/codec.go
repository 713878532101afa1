package methods

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kazmanavt/jsonrpc2"
)

// Codec converts a payload to and from JSON.
//
// Decode receives the raw params (nil when absent) or the raw result.
// Its failures should be jsonrpc2.ValidationErrors with paths relative to
// raw; any other error is reported at the root.
type Codec[T any] interface {
	Decode(raw json.RawMessage) (T, error)
	Encode(v T) (json.RawMessage, error)
}

// Funcs is a Codec made of two functions.
type Funcs[T any] struct {
	DecodeFunc func(raw json.RawMessage) (T, error)
	EncodeFunc func(v T) (json.RawMessage, error)
}

func (f Funcs[T]) Decode(raw json.RawMessage) (T, error) { return f.DecodeFunc(raw) }
func (f Funcs[T]) Encode(v T) (json.RawMessage, error)   { return f.EncodeFunc(v) }

// Value returns a Codec backed by encoding/json. It suits results, which
// may be any JSON value.
func Value[T any]() Codec[T] {
	return valueCodec[T]{}
}

type valueCodec[T any] struct{}

func (valueCodec[T]) Decode(raw json.RawMessage) (T, error) {
	var v T
	if raw == nil {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, jsonErrors(err)
	}
	return v, nil
}

func (valueCodec[T]) Encode(v T) (json.RawMessage, error) {
	return encode(v)
}

// Named returns a Codec for object params. T must be a struct. Members are
// matched to fields by json tag (or field name) exactly; a field whose tag
// lacks omitempty is required. Unknown members are ignored and embedded
// structs are not flattened.
func Named[T any]() Codec[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("methods: named params need a struct type, got %s", t))
	}
	return namedCodec[T]{fields: structFields(t)}
}

type namedCodec[T any] struct {
	fields []field
}

func (c namedCodec[T]) Decode(raw json.RawMessage) (T, error) {
	var v T
	members := map[string]json.RawMessage{}
	if raw != nil {
		p, err := jsonrpc2.ParseParams(raw)
		if err != nil {
			return v, jsonErrors(err)
		}
		if members, _ = p.Named(); members == nil {
			return v, jsonrpc2.ValidationErrors{{Reason: "must be an object"}}
		}
	}

	rv := reflect.ValueOf(&v).Elem()
	var errs jsonrpc2.ValidationErrors
	for _, f := range c.fields {
		path := jsonrpc2.Pointer("", f.name)
		m, ok := members[f.name]
		if !ok {
			if !f.optional {
				errs = append(errs, jsonrpc2.ValidationError{Path: path, Reason: "required"})
			}
			continue
		}
		if err := json.Unmarshal(m, rv.Field(f.index).Addr().Interface()); err != nil {
			errs = append(errs, jsonErrors(err).Prefix(path)...)
		}
	}
	if len(errs) > 0 {
		return v, errs
	}
	return v, nil
}

func (namedCodec[T]) Encode(v T) (json.RawMessage, error) {
	return encode(v)
}

// Positional returns a Codec for array params. T is either a struct, whose
// fields take the elements in declaration order, or a slice. Missing
// trailing elements leave optional fields at their zero value.
func Positional[T any]() Codec[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Struct:
		return positionalCodec[T]{fields: structFields(t)}
	case reflect.Slice:
		return positionalCodec[T]{slice: true}
	}
	panic(fmt.Sprintf("methods: positional params need a struct or slice type, got %s", t))
}

type positionalCodec[T any] struct {
	slice  bool
	fields []field
}

func (c positionalCodec[T]) Decode(raw json.RawMessage) (T, error) {
	var v T
	var args []json.RawMessage
	if raw != nil {
		p, err := jsonrpc2.ParseParams(raw)
		if err != nil {
			return v, jsonErrors(err)
		}
		var ok bool
		if args, ok = p.Positional(); !ok {
			return v, jsonrpc2.ValidationErrors{{Reason: "must be an array"}}
		}
	}

	rv := reflect.ValueOf(&v).Elem()
	if c.slice {
		if errs := fillSlice(rv, args); len(errs) > 0 {
			return v, errs
		}
		return v, nil
	}
	if len(args) > len(c.fields) {
		return v, jsonrpc2.ValidationErrors{{Reason: "too many params: want at most " + strconv.Itoa(len(c.fields))}}
	}

	var errs jsonrpc2.ValidationErrors
	for i, f := range c.fields {
		path := jsonrpc2.Pointer("", strconv.Itoa(i))
		if i >= len(args) {
			if !f.optional {
				errs = append(errs, jsonrpc2.ValidationError{Path: path, Reason: "required"})
			}
			continue
		}
		if err := json.Unmarshal(args[i], rv.Field(f.index).Addr().Interface()); err != nil {
			errs = append(errs, jsonErrors(err).Prefix(path)...)
		}
	}
	if len(errs) > 0 {
		return v, errs
	}
	return v, nil
}

func fillSlice(rv reflect.Value, args []json.RawMessage) jsonrpc2.ValidationErrors {
	out := reflect.MakeSlice(rv.Type(), len(args), len(args))
	var errs jsonrpc2.ValidationErrors
	for i, arg := range args {
		if err := json.Unmarshal(arg, out.Index(i).Addr().Interface()); err != nil {
			errs = append(errs, jsonErrors(err).Prefix(jsonrpc2.Pointer("", strconv.Itoa(i)))...)
		}
	}
	if len(errs) == 0 {
		rv.Set(out)
	}
	return errs
}

func (c positionalCodec[T]) Encode(v T) (json.RawMessage, error) {
	rv := reflect.ValueOf(v)
	if c.slice {
		args := make([]any, rv.Len())
		for i := range args {
			args[i] = rv.Index(i).Interface()
		}
		return encode(args)
	}

	end := len(c.fields)
	for end > 0 && c.fields[end-1].optional && rv.Field(c.fields[end-1].index).IsZero() {
		end--
	}
	args := make([]any, end)
	for i, f := range c.fields[:end] {
		args[i] = rv.Field(f.index).Interface()
	}
	return encode(args)
}

type field struct {
	index    int
	name     string
	optional bool
}

// structFields lists the exported fields of t that take part in JSON
// encoding, in declaration order.
func structFields(t reflect.Type) []field {
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f := field{index: i, name: sf.Name}
		if tag, ok := sf.Tag.Lookup("json"); ok {
			name, opts, _ := strings.Cut(tag, ",")
			if name == "-" && opts == "" {
				continue
			}
			if name != "" {
				f.name = name
			}
			for _, opt := range strings.Split(opts, ",") {
				if opt == "omitempty" || opt == "omitzero" {
					f.optional = true
				}
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// jsonErrors converts an encoding/json failure into validation errors.
func jsonErrors(err error) jsonrpc2.ValidationErrors {
	var (
		verrs   jsonrpc2.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		return verrs
	case errors.As(err, &typeErr):
		var path string
		if typeErr.Field != "" {
			for _, token := range strings.Split(typeErr.Field, ".") {
				path = jsonrpc2.Pointer(path, token)
			}
		}
		return jsonrpc2.ValidationErrors{{Path: path, Reason: "cannot use " + typeErr.Value + " as " + typeErr.Type.String()}}
	case errors.As(err, &synErr):
		return jsonrpc2.ValidationErrors{{Reason: "malformed JSON"}}
	}
	return jsonrpc2.ValidationErrors{{Reason: err.Error()}}
}

// encode is json.Marshal without HTML escaping.
func encode(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
