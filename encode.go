package jsonrpc2

import (
	"encoding/json"
	"errors"
)

// EncodeMessage returns the canonical JSON form of m.
//
// Members are written in a fixed order ("jsonrpc" first, "id" last), named
// params are sorted by key and values are compact, so encoding a decoded
// message again reproduces the same bytes.
func EncodeMessage(m Message) (json.RawMessage, error) {
	if m == nil {
		return nil, errors.New("jsonrpc2: nil message")
	}
	return marshal(m)
}

type wireRequest struct {
	Version string  `json:"jsonrpc"`          // Version is always "2.0"
	Method  string  `json:"method"`           // Method is the non-empty method name
	Params  *Params `json:"params,omitempty"` // Params is nil when absent
	ID      *ID     `json:"id,omitempty"`     // ID is nil for notifications only
}

// MarshalJSON always writes the "id" member; a zero id is written as null so
// the message stays a Request on the way back.
func (r Request) MarshalJSON() ([]byte, error) {
	w := wireRequest{Version: Version, Method: r.method, ID: &r.id}
	if !r.params.IsZero() {
		w.Params = &r.params
	}
	return marshal(w)
}

func (n Notification) MarshalJSON() ([]byte, error) {
	return marshal(wireRequest{Version: Version, Method: n.method, Params: &n.params})
}

func (b RequestBatch) MarshalJSON() ([]byte, error) {
	return marshal(b.entries)
}

type wireResponse struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
	ID      ID              `json:"id"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	w := wireResponse{Version: Version, Error: r.err, ID: r.id}
	if r.err == nil {
		w.Result = r.result
		if w.Result == nil {
			w.Result = json.RawMessage("null")
		}
	}
	return marshal(w)
}

func (b ResponseBatch) MarshalJSON() ([]byte, error) {
	return marshal(b.responses)
}
