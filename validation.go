package jsonrpc2

import (
	"strings"
)

// ValidationError points at one offending location of a message.
// Path is a JSON Pointer relative to the decoded value ("" is the value itself).
type ValidationError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

// ValidationErrors is the failure of a decode operation: one entry per
// offending field or location.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "jsonrpc2: validation failed"
	case 1:
		return "jsonrpc2: " + e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("jsonrpc2: ")
	for i, ve := range e {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(ve.Error())
	}
	return sb.String()
}

// Prefix returns a copy of e with every path moved under prefix.
func (e ValidationErrors) Prefix(prefix string) ValidationErrors {
	if len(e) == 0 {
		return e
	}
	out := make(ValidationErrors, len(e))
	for i, ve := range e {
		out[i] = ValidationError{Path: prefix + ve.Path, Reason: ve.Reason}
	}
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer appends token to the JSON Pointer base.
func Pointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
