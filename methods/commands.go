package methods

import (
	"fmt"
	"log/slog"

	"github.com/kazmanavt/jsonrpc2"
)

// Commands maps requests onto the payload family P.
type Commands[P any] struct {
	t table[P]
}

// NewCommands builds a command registry.
//
// Parameters:
//   - entries: One entry per method, created with Method.
//
// Returns:
//   - The registry, immutable and safe for concurrent use.
//   - An error listing every empty name, duplicate name and duplicate payload
//     type (see multierr.Errors).
func NewCommands[P any](entries ...Entry[P]) (*Commands[P], error) {
	t, err := newTable(entries)
	if err != nil {
		return nil, err
	}
	return &Commands[P]{t: t}, nil
}

// MustCommands is like NewCommands but panics on error.
func MustCommands[P any](entries ...Entry[P]) *Commands[P] {
	c, err := NewCommands(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// WithLogger returns a copy of c that logs rejected reads at debug level.
func (c *Commands[P]) WithLogger(_log *slog.Logger) *Commands[P] {
	return &Commands[P]{t: c.t.withLogger(_log, "commands")}
}

// Read decodes the params of req. It reports false when the method is not
// registered. Decode failures are jsonrpc2.ValidationErrors under "/params".
func (c *Commands[P]) Read(req jsonrpc2.Request) (P, bool, error) {
	e, ok := c.t.byMethod(req.Method())
	if !ok {
		var zero P
		return zero, false, nil
	}
	p, err := c.t.read(e, req.Params().Raw(), "/params")
	return p, true, err
}

// ReadOrError is Read with failures already mapped to the error object to
// send back: MethodNotFound or InvalidParams.
func (c *Commands[P]) ReadOrError(req jsonrpc2.Request) (P, *jsonrpc2.ResponseError) {
	p, ok, err := c.Read(req)
	if !ok {
		rerr := jsonrpc2.MethodNotFound(req.Method())
		return p, &rerr
	}
	if err != nil {
		rerr := jsonrpc2.InvalidParams(jsonErrors(err))
		return p, &rerr
	}
	return p, nil
}

// Write encodes p as a request with the given id.
func (c *Commands[P]) Write(p P, id jsonrpc2.ID) (jsonrpc2.Request, error) {
	method, raw, err := c.t.write(p)
	if err != nil {
		return jsonrpc2.Request{}, err
	}
	var params jsonrpc2.Params
	if raw != nil {
		if params, err = jsonrpc2.ParseParams(raw); err != nil {
			return jsonrpc2.Request{}, fmt.Errorf("methods: %q: params: %w", method, err)
		}
	}
	return jsonrpc2.NewRequest(method, params, id), nil
}

// Method returns the method name p is sent under.
func (c *Commands[P]) Method(p P) (string, bool) { return c.t.method(p) }

// Methods returns the registered names in registration order.
func (c *Commands[P]) Methods() []string { return c.t.methods() }
