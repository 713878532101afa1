package jsonrpc2

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// DecodeMessage converts a JSON value into a Message.
//
// The shape is discriminated from the value itself: an array is a batch, an
// object with "method" is a Request (with "id") or a Notification (without),
// an object with "result" or "error" is a Response. A batch must be non-empty
// and hold only requests/notifications or only responses.
//
// The returned error is always ValidationErrors.
func DecodeMessage(raw json.RawMessage) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ValidationErrors{{Reason: "not a valid JSON value"}}
	}
	m, errs := decodeValue(gjson.ParseBytes(raw))
	if len(errs) > 0 {
		return nil, errs
	}
	return m, nil
}

func decodeInto[T Message](data []byte, dst *T) error {
	msg, err := Unmarshal(data)
	if err != nil {
		return err
	}
	m, ok := msg.(T)
	if !ok {
		return fmt.Errorf("jsonrpc2: cannot decode %T into %T", msg, *dst)
	}
	*dst = m
	return nil
}

type object map[string]gjson.Result

// members indexes the members of an object; the last duplicate wins.
func members(r gjson.Result) object {
	obj := make(object)
	r.ForEach(func(key, value gjson.Result) bool {
		obj[key.Str] = value
		return true
	})
	return obj
}

func (o object) has(name string) bool {
	_, ok := o[name]
	return ok
}

type direction uint8

const (
	directionUnknown direction = iota
	directionRequest
	directionResponse
)

func classify(obj object) (direction, string) {
	hasMethod := obj.has("method")
	hasOutcome := obj.has("result") || obj.has("error")
	switch {
	case hasMethod && hasOutcome:
		return directionUnknown, "carries both request and response members"
	case hasMethod:
		return directionRequest, ""
	case hasOutcome:
		return directionResponse, ""
	}
	return directionUnknown, `has neither "method" nor "result"/"error"`
}

func decodeValue(r gjson.Result) (Message, ValidationErrors) {
	switch {
	case r.IsArray():
		return decodeBatch(r)
	case r.IsObject():
		obj := members(r)
		dir, reason := classify(obj)
		switch dir {
		case directionRequest:
			return decodeRequestLike(obj, "")
		case directionResponse:
			resp, errs := decodeResponse(obj, "")
			if len(errs) > 0 {
				return nil, errs
			}
			return resp, nil
		}
		return nil, ValidationErrors{{Reason: "message " + reason}}
	}
	return nil, ValidationErrors{{Reason: "message must be an object or an array"}}
}

// decodeBatch classifies every element first. Elements that are not objects
// or cannot be classified are reported at their index; a batch mixing both
// directions is reported at the root. Element bodies are validated only once
// the batch as a whole has a single direction.
func decodeBatch(r gjson.Result) (Message, ValidationErrors) {
	elems := r.Array()
	if len(elems) == 0 {
		return nil, ValidationErrors{{Reason: "batch must not be empty"}}
	}

	var errs ValidationErrors
	objs := make([]object, len(elems))
	var requests, responses int
	for i, el := range elems {
		path := Pointer("", strconv.Itoa(i))
		if !el.IsObject() {
			errs = append(errs, ValidationError{Path: path, Reason: "batch element must be an object"})
			continue
		}
		objs[i] = members(el)
		switch dir, reason := classify(objs[i]); dir {
		case directionRequest:
			requests++
		case directionResponse:
			responses++
		default:
			errs = append(errs, ValidationError{Path: path, Reason: "batch element " + reason})
		}
	}
	if requests > 0 && responses > 0 {
		errs = append(ValidationErrors{{Reason: "batch mixes requests and responses"}}, errs...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if requests > 0 {
		entries := make([]BatchEntry, 0, len(objs))
		for i, obj := range objs {
			e, eerrs := decodeRequestLike(obj, Pointer("", strconv.Itoa(i)))
			if len(eerrs) > 0 {
				errs = append(errs, eerrs...)
				continue
			}
			entries = append(entries, e.(BatchEntry))
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return NewRequestBatch(entries...), nil
	}

	responsesOut := make([]Response, 0, len(objs))
	for i, obj := range objs {
		resp, rerrs := decodeResponse(obj, Pointer("", strconv.Itoa(i)))
		if len(rerrs) > 0 {
			errs = append(errs, rerrs...)
			continue
		}
		responsesOut = append(responsesOut, resp)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return NewResponseBatch(responsesOut...), nil
}

func checkVersion(obj object, path string) *ValidationError {
	v, ok := obj["jsonrpc"]
	if !ok {
		return &ValidationError{Path: Pointer(path, "jsonrpc"), Reason: "required"}
	}
	if v.Type != gjson.String || v.Str != Version {
		return &ValidationError{Path: Pointer(path, "jsonrpc"), Reason: `must be "2.0"`}
	}
	return nil
}

// decodeRequestLike returns a Request when the object has an "id" member and
// a Notification otherwise. A null id yields a Request with the zero ID.
func decodeRequestLike(obj object, path string) (Message, ValidationErrors) {
	var errs ValidationErrors
	if verr := checkVersion(obj, path); verr != nil {
		errs = append(errs, *verr)
	}

	var method string
	switch m := obj["method"]; {
	case m.Type != gjson.String:
		errs = append(errs, ValidationError{Path: Pointer(path, "method"), Reason: "must be a string"})
	case m.Str == "":
		errs = append(errs, ValidationError{Path: Pointer(path, "method"), Reason: "must not be empty"})
	default:
		method = m.Str
	}

	var params Params
	p, hasParams := obj["params"]
	if hasParams {
		var verr *ValidationError
		if params, verr = decodeParams(p, Pointer(path, "params")); verr != nil {
			errs = append(errs, *verr)
		}
	}

	idValue, hasID := obj["id"]
	if !hasID {
		if !hasParams {
			errs = append(errs, ValidationError{Path: Pointer(path, "params"), Reason: "required for notifications"})
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return NewNotification(method, params), nil
	}

	var id ID
	if idValue.Type != gjson.Null {
		var verr *ValidationError
		if id, verr = decodeID(idValue, Pointer(path, "id")); verr != nil {
			errs = append(errs, *verr)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return NewRequest(method, params, id), nil
}

func decodeResponse(obj object, path string) (Response, ValidationErrors) {
	var errs ValidationErrors
	if verr := checkVersion(obj, path); verr != nil {
		errs = append(errs, *verr)
	}

	result, hasResult := obj["result"]
	errValue, hasError := obj["error"]
	if hasResult == hasError {
		errs = append(errs, ValidationError{Path: path, Reason: `response must carry exactly one of "result" and "error"`})
	}

	var id ID
	switch v, ok := obj["id"]; {
	case !ok:
		errs = append(errs, ValidationError{Path: Pointer(path, "id"), Reason: "required"})
	case v.Type != gjson.Null:
		var verr *ValidationError
		if id, verr = decodeID(v, Pointer(path, "id")); verr != nil {
			errs = append(errs, *verr)
		}
	}

	var rerr ResponseError
	if hasError && !hasResult {
		var eerrs ValidationErrors
		if rerr, eerrs = decodeErrorObject(errValue, Pointer(path, "error")); len(eerrs) > 0 {
			errs = append(errs, eerrs...)
		}
	}

	if len(errs) > 0 {
		return Response{}, errs
	}
	if hasError {
		return NewErrorResponse(rerr, id), nil
	}
	return NewResultResponse(json.RawMessage(result.Raw), id), nil
}
