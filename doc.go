// Package jsonrpc2 parses, validates and serializes JSON-RPC 2.0 messages.
//
// The package covers the message envelope only. Transport, request/response
// correlation and dispatch belong to the caller. Everything here is a pure
// transformation: no shared state, no I/O, safe for concurrent use.
//
// # Decoding
//
// DecodeMessage discriminates the message shape from the JSON itself:
//
//	msg, err := jsonrpc2.Unmarshal(data)
//	if err != nil {
//		resp := jsonrpc2.ResponseFor(err, jsonrpc2.RecoverID(data))
//		// send resp back
//	}
//	switch m := msg.(type) {
//	case jsonrpc2.Request:
//	case jsonrpc2.Notification:
//	case jsonrpc2.RequestBatch:
//	case jsonrpc2.Response:
//	case jsonrpc2.ResponseBatch:
//	}
//
// Validation failures are reported as ValidationErrors, one entry per
// offending location, with JSON Pointer paths.
//
// # Errors
//
// Standard error objects are built with ParseError, InvalidRequest,
// MethodNotFound, InvalidParams and InternalError. ServerError accepts codes
// in [-32099, -32000] only; ApplicationError rejects the reserved range
// [-32768, -32000] and accepts every other code.
//
// Typed method payloads are mapped onto the envelope by the methods
// subpackage.
package jsonrpc2
