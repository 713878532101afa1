package jsonrpc2

import (
	"encoding/json"
)

// Response carries either a result or an error, never both.
// A zero id is sent as null and is only meant for replies to messages whose
// id could not be determined.
type Response struct {
	result json.RawMessage
	err    *ResponseError
	id     ID
}

// NewResultResponse creates a successful response.
//
// Parameters:
//   - result: The result value. nil is sent as null.
//   - id: The id of the answered request.
//
// Returns:
//   - An immutable Response holding a compacted copy of result.
func NewResultResponse(result json.RawMessage, id ID) Response {
	return Response{result: compact(result), id: id}
}

// NewErrorResponse returns a failed response.
func NewErrorResponse(err ResponseError, id ID) Response {
	return Response{err: &err, id: id}
}

// Result returns the result of a successful response.
func (r Response) Result() (json.RawMessage, bool) {
	if r.err != nil {
		return nil, false
	}
	return r.result, true
}

// Err returns the error of a failed response.
func (r Response) Err() (ResponseError, bool) {
	if r.err == nil {
		return ResponseError{}, false
	}
	return *r.err, true
}

// IsError reports whether the response carries an error object.
func (r Response) IsError() bool { return r.err != nil }

// ID returns the id of the answered request; the zero ID when null.
func (r Response) ID() ID { return r.id }

func (Response) message() {}

// UnmarshalJSON decodes a single response.
func (r *Response) UnmarshalJSON(data []byte) error {
	return decodeInto(data, r)
}

// ResponseBatch is a non-empty ordered sequence of responses.
type ResponseBatch struct {
	responses []Response
}

// NewResponseBatch returns a batch of responses. It panics if responses is empty.
func NewResponseBatch(responses ...Response) ResponseBatch {
	if len(responses) == 0 {
		panic("jsonrpc2: response batch must not be empty")
	}
	return ResponseBatch{responses: append([]Response(nil), responses...)}
}

// Responses returns a copy of the batch responses in wire order.
func (b ResponseBatch) Responses() []Response {
	return append([]Response(nil), b.responses...)
}

func (b ResponseBatch) Len() int { return len(b.responses) }

func (ResponseBatch) message() {}

// UnmarshalJSON decodes a response batch.
func (b *ResponseBatch) UnmarshalJSON(data []byte) error {
	return decodeInto(data, b)
}
