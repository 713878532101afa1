package jsonrpc2

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Standard error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Implementation-defined server error range, inclusive.
const (
	CodeServerErrorMin = -32099
	CodeServerErrorMax = -32000
)

// Reserved code range, inclusive. It covers the standard codes and the
// server error range; application errors may use any other code.
const (
	ReservedErrorCodeMin   = -32768
	ReservedErrorCodeFloor = -32000 // ReservedErrorCodeFloor is the highest reserved code
)

const (
	msgParseError     = "Parse error"
	msgInvalidRequest = "Invalid Request"
	msgMethodNotFound = "Method not found"
	msgInvalidParams  = "Invalid params"
	msgInternalError  = "Internal error"
	msgServerError    = "Server error"
)

// ResponseError is the error object of a failed response.
type ResponseError struct {
	code    int
	message string
	data    json.RawMessage
}

func newResponseError(code int, message string, data json.RawMessage) ResponseError {
	e := ResponseError{code: code, message: message}
	if data != nil {
		e.data = compact(data)
	}
	return e
}

func (e ResponseError) Code() int       { return e.code }
func (e ResponseError) Message() string { return e.message }

// Data returns the optional data member.
func (e ResponseError) Data() (json.RawMessage, bool) {
	return e.data, e.data != nil
}

func (e ResponseError) Error() string {
	return "jsonrpc2: " + strconv.Itoa(e.code) + " " + e.message
}

// IsStandard reports whether e carries one of the five predefined codes.
func (e ResponseError) IsStandard() bool {
	switch e.code {
	case CodeParseError, CodeInvalidRequest, CodeMethodNotFound, CodeInvalidParams, CodeInternalError:
		return true
	}
	return false
}

// IsReservedCode reports whether code lies in
// [ReservedErrorCodeMin, ReservedErrorCodeFloor] and is therefore
// unavailable to ApplicationError.
func IsReservedCode(code int) bool {
	return code >= ReservedErrorCodeMin && code <= ReservedErrorCodeFloor
}

// ParseError reports malformed JSON text. The cause, if any, becomes the data.
func ParseError(cause error) ResponseError {
	var data json.RawMessage
	if cause != nil {
		data = mustMarshal(cause.Error())
	}
	return newResponseError(CodeParseError, msgParseError, data)
}

// InvalidRequest reports an envelope that failed validation.
func InvalidRequest(errs ValidationErrors) ResponseError {
	return newResponseError(CodeInvalidRequest, msgInvalidRequest, validationData(errs))
}

// MethodNotFound reports an unknown method. The method name becomes the data.
func MethodNotFound(method string) ResponseError {
	return newResponseError(CodeMethodNotFound, msgMethodNotFound, mustMarshal(method))
}

// InvalidParams reports params that failed method-specific validation.
func InvalidParams(errs ValidationErrors) ResponseError {
	return newResponseError(CodeInvalidParams, msgInvalidParams, validationData(errs))
}

// InternalError reports an unexpected failure.
func InternalError(data json.RawMessage) ResponseError {
	return newResponseError(CodeInternalError, msgInternalError, data)
}

// ServerError creates an implementation-defined server error object.
//
// Parameters:
//   - code: A code in [CodeServerErrorMin, CodeServerErrorMax].
//   - data: Optional details. nil omits the member.
//
// Returns:
//   - The error object with the message "Server error".
//   - An error if code is outside the server error range.
func ServerError(code int, data json.RawMessage) (ResponseError, error) {
	if code < CodeServerErrorMin || code > CodeServerErrorMax {
		return ResponseError{}, fmt.Errorf("jsonrpc2: server error code %d outside [%d, %d]", code, CodeServerErrorMin, CodeServerErrorMax)
	}
	return newResponseError(code, msgServerError, data), nil
}

// MustServerError is like ServerError but panics on an illegal code.
func MustServerError(code int, data json.RawMessage) ResponseError {
	e, err := ServerError(code, data)
	if err != nil {
		panic(err)
	}
	return e
}

// ApplicationError creates an application-defined error object.
//
// Parameters:
//   - code: Any code outside [ReservedErrorCodeMin, ReservedErrorCodeFloor].
//   - message: A short description of the error.
//   - data: Optional details. nil omits the member.
//
// Returns:
//   - The error object.
//   - An error if code is reserved.
func ApplicationError(code int, message string, data json.RawMessage) (ResponseError, error) {
	if IsReservedCode(code) {
		return ResponseError{}, fmt.Errorf("jsonrpc2: application error code %d is reserved (range [%d, %d])", code, ReservedErrorCodeMin, ReservedErrorCodeFloor)
	}
	return newResponseError(code, message, data), nil
}

// MustApplicationError is like ApplicationError but panics on a reserved code.
func MustApplicationError(code int, message string, data json.RawMessage) ResponseError {
	e, err := ApplicationError(code, message, data)
	if err != nil {
		panic(err)
	}
	return e
}

type wireError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e ResponseError) MarshalJSON() ([]byte, error) {
	return marshal(wireError{Code: e.code, Message: e.message, Data: e.data})
}

// UnmarshalJSON accepts any well-formed error object, whatever its code.
func (e *ResponseError) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("jsonrpc2: invalid error object %q", data)
	}
	v, errs := decodeErrorObject(gjson.ParseBytes(data), "")
	if len(errs) > 0 {
		return errs
	}
	*e = v
	return nil
}

func decodeErrorObject(r gjson.Result, path string) (ResponseError, ValidationErrors) {
	if !r.IsObject() {
		return ResponseError{}, ValidationErrors{{Path: path, Reason: "must be an object"}}
	}
	obj := members(r)
	var errs ValidationErrors

	var code int
	switch c, ok := obj["code"]; {
	case !ok:
		errs = append(errs, ValidationError{Path: Pointer(path, "code"), Reason: "required"})
	case c.Type != gjson.Number:
		errs = append(errs, ValidationError{Path: Pointer(path, "code"), Reason: "must be an integer"})
	default:
		n, err := strconv.Atoi(c.Raw)
		if err != nil {
			errs = append(errs, ValidationError{Path: Pointer(path, "code"), Reason: "must be an integer"})
		}
		code = n
	}

	var message string
	switch m, ok := obj["message"]; {
	case !ok:
		errs = append(errs, ValidationError{Path: Pointer(path, "message"), Reason: "required"})
	case m.Type != gjson.String:
		errs = append(errs, ValidationError{Path: Pointer(path, "message"), Reason: "must be a string"})
	default:
		message = m.Str
	}

	if len(errs) > 0 {
		return ResponseError{}, errs
	}
	var data json.RawMessage
	if d, ok := obj["data"]; ok {
		data = json.RawMessage(d.Raw)
	}
	return newResponseError(code, message, data), nil
}

func validationData(errs ValidationErrors) json.RawMessage {
	if len(errs) == 0 {
		return nil
	}
	return mustMarshal(errs)
}

func mustMarshal(v any) json.RawMessage {
	raw, err := marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
