package methods

import (
	"fmt"
	"log/slog"

	"github.com/kazmanavt/jsonrpc2"
)

// Results maps response results onto the payload family P. Responses carry
// no method, so reads are keyed by the method of the originating request.
type Results[P any] struct {
	t table[P]
}

// NewResults builds a result registry. Every name and every payload type
// must appear once; all violations are reported together.
func NewResults[P any](entries ...Entry[P]) (*Results[P], error) {
	t, err := newTable(entries)
	if err != nil {
		return nil, err
	}
	return &Results[P]{t: t}, nil
}

// MustResults is like NewResults but panics on error.
func MustResults[P any](entries ...Entry[P]) *Results[P] {
	r, err := NewResults(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// WithLogger returns a copy of r that logs rejected reads at debug level.
func (r *Results[P]) WithLogger(_log *slog.Logger) *Results[P] {
	return &Results[P]{t: r.t.withLogger(_log, "results")}
}

// Read decodes the outcome of resp, a reply to a call of method.
// An error response yields its error object. A result that fails to decode
// yields jsonrpc2.ValidationErrors under "/result". An unregistered method
// yields ErrUnknownMethod.
func (r *Results[P]) Read(resp jsonrpc2.Response, method string) (P, *jsonrpc2.ResponseError, error) {
	var zero P
	e, ok := r.t.byMethod(method)
	if !ok {
		return zero, nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
	if rerr, failed := resp.Err(); failed {
		return zero, &rerr, nil
	}
	result, _ := resp.Result()
	p, err := r.t.read(e, result, "/result")
	return p, nil, err
}

// Write encodes p as the successful response with the given id.
func (r *Results[P]) Write(p P, id jsonrpc2.ID) (jsonrpc2.Response, error) {
	_, raw, err := r.t.write(p)
	if err != nil {
		return jsonrpc2.Response{}, err
	}
	return jsonrpc2.NewResultResponse(raw, id), nil
}

// Method returns the method whose result p is.
func (r *Results[P]) Method(p P) (string, bool) { return r.t.method(p) }

// Methods returns the registered names in registration order.
func (r *Results[P]) Methods() []string { return r.t.methods() }
