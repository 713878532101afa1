package jsonrpc2

import (
	"encoding/json"
)

// Message is one of Request, Notification, RequestBatch, Response and
// ResponseBatch.
type Message interface {
	json.Marshaler
	message()
}

// BatchEntry is an element of a RequestBatch: a Request or a Notification.
type BatchEntry interface {
	Message
	batchEntry()
}

// Request is a call. A zero id is sent as "id":null; peers may answer it,
// but the reply cannot be told apart from other null-id replies. Use
// Notification for one-way messages.
type Request struct {
	method string
	params Params
	id     ID
}

// NewRequest creates a request message.
//
// Parameters:
//   - method: The method to invoke. Must not be empty.
//   - params: The call arguments. The zero Params omits the member.
//   - id: The correlation id. The zero ID is written as null.
//
// Returns:
//   - An immutable Request.
//
// It panics if method is empty.
func NewRequest(method string, params Params, id ID) Request {
	if method == "" {
		panic("jsonrpc2: request method must not be empty")
	}
	return Request{method: method, params: params, id: id}
}

// Method returns the name of the called method.
func (r Request) Method() string { return r.method }

// Params returns the call arguments; the zero Params when absent.
func (r Request) Params() Params { return r.params }

// ID returns the correlation id; the zero ID when sent as null.
func (r Request) ID() ID { return r.id }

func (Request) message()    {}
func (Request) batchEntry() {}

// Notification is a one-way message. Unlike Request its params are required.
type Notification struct {
	method string
	params Params
}

// NewNotification creates a notification message.
//
// Parameters:
//   - method: The notified method. Must not be empty.
//   - params: The arguments. Must not be the zero Params.
//
// Returns:
//   - An immutable Notification, written without an "id" member.
//
// It panics if method is empty or params are absent.
func NewNotification(method string, params Params) Notification {
	if method == "" {
		panic("jsonrpc2: notification method must not be empty")
	}
	if params.IsZero() {
		panic("jsonrpc2: notification params are required")
	}
	return Notification{method: method, params: params}
}

// Method returns the name of the notified method.
func (n Notification) Method() string { return n.method }

// Params returns the notification arguments.
func (n Notification) Params() Params { return n.params }

func (Notification) message()    {}
func (Notification) batchEntry() {}

// RequestBatch is a non-empty ordered sequence of requests and notifications.
type RequestBatch struct {
	entries []BatchEntry
}

// NewRequestBatch returns a batch of entries.
// It panics if entries is empty or holds a nil entry.
func NewRequestBatch(entries ...BatchEntry) RequestBatch {
	if len(entries) == 0 {
		panic("jsonrpc2: request batch must not be empty")
	}
	for _, e := range entries {
		if e == nil {
			panic("jsonrpc2: nil request batch entry")
		}
	}
	return RequestBatch{entries: append([]BatchEntry(nil), entries...)}
}

// Entries returns a copy of the batch entries in wire order.
func (b RequestBatch) Entries() []BatchEntry {
	return append([]BatchEntry(nil), b.entries...)
}

func (b RequestBatch) Len() int { return len(b.entries) }

func (RequestBatch) message() {}

// UnmarshalJSON decodes a single request; notifications and batches are rejected.
func (r *Request) UnmarshalJSON(data []byte) error {
	return decodeInto(data, r)
}

// UnmarshalJSON decodes a single notification.
func (n *Notification) UnmarshalJSON(data []byte) error {
	return decodeInto(data, n)
}

// UnmarshalJSON decodes a request batch.
func (b *RequestBatch) UnmarshalJSON(data []byte) error {
	return decodeInto(data, b)
}
