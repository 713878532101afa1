package methods

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"go.uber.org/multierr"
)

var (
	// ErrUnknownMethod is returned when a method name has no entry.
	ErrUnknownMethod = errors.New("methods: unknown method")
	// ErrUnregisteredPayload is returned when a payload type has no entry.
	ErrUnregisteredPayload = errors.New("methods: unregistered payload type")
)

// Entry binds a method name to the codec of one payload type of the
// family P.
type Entry[P any] struct {
	name   string
	typ    reflect.Type
	decode func(raw json.RawMessage) (P, error)
	encode func(p P) (json.RawMessage, error)
}

// Method creates the registry entry binding a payload type to a method.
//
// Parameters:
//   - name: The JSON-RPC method name. Must be unique within a registry.
//   - codec: Converts T to and from params or a result.
//
// Returns:
//   - An Entry of the family P, for NewCommands, NewResults or NewNotifications.
//
// P is either an interface implemented by the concrete type T, or T itself.
// It panics otherwise.
func Method[P, T any](name string, codec Codec[T]) Entry[P] {
	typ, family := reflect.TypeOf((*T)(nil)).Elem(), reflect.TypeOf((*P)(nil)).Elem()
	if typ.Kind() == reflect.Interface || !(family.Kind() == reflect.Interface && typ.Implements(family) || typ == family) {
		panic(fmt.Sprintf("methods: %q: payload type %s is not a concrete %s", name, typ, family))
	}
	return Entry[P]{
		name: name,
		typ:  typ,
		decode: func(raw json.RawMessage) (P, error) {
			v, err := codec.Decode(raw)
			if err != nil {
				var zero P
				return zero, err
			}
			return any(v).(P), nil
		},
		encode: func(p P) (json.RawMessage, error) {
			return codec.Encode(any(p).(T))
		},
	}
}

// Name returns the method name of the entry.
func (e Entry[P]) Name() string { return e.name }

type table[P any] struct {
	byName map[string]Entry[P]       // byName resolves incoming methods
	byType map[reflect.Type]Entry[P] // byType resolves outgoing payloads
	names  []string                  // names in registration order
	log    *slog.Logger              // log is nil unless WithLogger was used
}

func newTable[P any](entries []Entry[P]) (table[P], error) {
	t := table[P]{
		byName: make(map[string]Entry[P], len(entries)),
		byType: make(map[reflect.Type]Entry[P], len(entries)),
		names:  make([]string, 0, len(entries)),
	}
	var err error
	for i, e := range entries {
		switch prevName, prevType := t.byName[e.name], t.byType[e.typ]; {
		case e.typ == nil:
			err = multierr.Append(err, fmt.Errorf("methods: entry #%d is not initialized", i))
		case e.name == "":
			err = multierr.Append(err, fmt.Errorf("methods: entry #%d (%s): empty method name", i, e.typ))
		case prevName.typ != nil:
			err = multierr.Append(err, fmt.Errorf("methods: method name collision: %q is bound to %s and %s", e.name, prevName.typ, e.typ))
		case prevType.typ != nil:
			err = multierr.Append(err, fmt.Errorf("methods: payload type %s is bound to %q and %q", e.typ, prevType.name, e.name))
		default:
			t.byName[e.name] = e
			t.byType[e.typ] = e
			t.names = append(t.names, e.name)
		}
	}
	if err != nil {
		return table[P]{}, err
	}
	return t, nil
}

func (t table[P]) byMethod(method string) (Entry[P], bool) {
	e, ok := t.byName[method]
	if !ok && t.log != nil {
		t.log.Debug("unknown method", slog.String("method", method))
	}
	return e, ok
}

func (t table[P]) byPayload(p P) (Entry[P], error) {
	e, ok := t.byType[reflect.TypeOf(any(p))]
	if !ok {
		return Entry[P]{}, fmt.Errorf("%w: %T", ErrUnregisteredPayload, any(p))
	}
	return e, nil
}

// read decodes raw with the entry codec and runs the payload Validate hook.
// Failures are returned under prefix.
func (t table[P]) read(e Entry[P], raw json.RawMessage, prefix string) (P, error) {
	p, err := e.decode(raw)
	if err == nil {
		err = validate(p)
	}
	if err != nil {
		errs := jsonErrors(err).Prefix(prefix)
		if t.log != nil {
			t.log.Debug("payload rejected", slog.String("method", e.name), slog.Any("errors", errs))
		}
		var zero P
		return zero, errs
	}
	return p, nil
}

func (t table[P]) write(p P) (string, json.RawMessage, error) {
	e, err := t.byPayload(p)
	if err != nil {
		return "", nil, err
	}
	raw, err := e.encode(p)
	if err != nil {
		return "", nil, fmt.Errorf("methods: %q: encode %T: %w", e.name, any(p), err)
	}
	return e.name, raw, nil
}

func (t table[P]) method(p P) (string, bool) {
	e, err := t.byPayload(p)
	return e.name, err == nil
}

func (t table[P]) methods() []string {
	return append([]string(nil), t.names...)
}

func (t table[P]) withLogger(_log *slog.Logger, registry string) table[P] {
	if _log != nil {
		_log = _log.With(slog.String("registry", registry))
	}
	t.log = _log
	return t
}

// Validator is implemented by payloads that check their own invariants after
// decoding. A jsonrpc2.ValidationErrors result keeps its paths.
type Validator interface {
	Validate() error
}

func validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return nil
}
