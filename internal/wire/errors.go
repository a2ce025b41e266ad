package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a classification of schema error.
type Kind string

const (
	UnknownVariant   Kind = "unknown_variant"
	MissingField     Kind = "missing_field"
	TypeMismatch     Kind = "type_mismatch"
	MalformedPayload Kind = "malformed_payload"
)

// SchemaError is returned by every decode entry point. A decode that fails
// never yields a partially constructed value alongside it.
type SchemaError struct {
	Kind Kind
	// Path locates the offending value, e.g. "messages[0].content[1].type".
	// Empty when the payload as a whole is at fault.
	Path    string
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	var msg string
	switch e.Kind {
	case UnknownVariant:
		msg = fmt.Sprintf("unknown variant %q", e.Message)
	case MissingField:
		msg = "missing field"
	case TypeMismatch:
		msg = fmt.Sprintf("type mismatch: %s", e.Message)
	case MalformedPayload:
		msg = fmt.Sprintf("malformed payload: %s", e.Message)
	default:
		msg = e.Message
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap allows errors.Is / errors.As to work with wrapped errors.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Field returns the last field name of Path, or "" for an index or an empty path.
func (e *SchemaError) Field() string {
	p := e.Path
	if i := strings.LastIndexByte(p, '.'); i >= 0 {
		p = p[i+1:]
	}
	if strings.HasSuffix(p, "]") {
		return ""
	}
	return p
}

func UnknownVariantError(path string, value string) *SchemaError {
	return &SchemaError{Kind: UnknownVariant, Path: path, Message: value}
}

func MissingFieldError(path string) *SchemaError {
	return &SchemaError{Kind: MissingField, Path: path}
}

func TypeMismatchError(path string, msg string) *SchemaError {
	return &SchemaError{Kind: TypeMismatch, Path: path, Message: msg}
}

func MalformedPayloadError(msg string, err error) *SchemaError {
	return &SchemaError{Kind: MalformedPayload, Message: msg, Err: err}
}

// WrapPath re-roots the path of a *SchemaError under prefix. Errors of any
// other type are returned unchanged.
func WrapPath(err error, prefix string) error {
	var schemaErr *SchemaError
	if prefix == "" || !errors.As(err, &schemaErr) {
		return err
	}
	wrapped := *schemaErr
	wrapped.Path = JoinPath(prefix, schemaErr.Path)
	return &wrapped
}

func JoinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case strings.HasPrefix(path, "["):
		return prefix + path
	default:
		return prefix + "." + path
	}
}

func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
