package jsonrpc2

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// RecoverID extracts the id of a single message that may have failed
// validation. It returns the zero ID when data is not well-formed JSON, is
// not an object, or has no usable id.
func RecoverID(data []byte) ID {
	if !gjson.ValidBytes(data) {
		return ID{}
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return ID{}
	}
	v, ok := members(r)["id"]
	if !ok {
		return ID{}
	}
	id, verr := decodeID(v, "")
	if verr != nil {
		return ID{}
	}
	return id
}

// ResponseFor builds the error response for a failure to read a message:
// *SyntaxError maps to ParseError with a null id, ValidationErrors to
// InvalidRequest, a ResponseError is sent as is, anything else becomes
// InternalError.
func ResponseFor(err error, id ID) Response {
	var (
		syntaxErr *SyntaxError
		verrs     ValidationErrors
		rerr      ResponseError
		rerrPtr   *ResponseError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return NewErrorResponse(ParseError(syntaxErr.Err), ID{})
	case errors.As(err, &verrs):
		return NewErrorResponse(InvalidRequest(verrs), id)
	case errors.As(err, &rerr):
		return NewErrorResponse(rerr, id)
	case errors.As(err, &rerrPtr):
		return NewErrorResponse(*rerrPtr, id)
	}
	var data json.RawMessage
	if err != nil {
		data = mustMarshal(err.Error())
	}
	return NewErrorResponse(InternalError(data), id)
}
