package anthropictypes

import (
	"errors"

	"github.com/terraform-industries/anthropic-types/internal/wire"
)

// Kind is a classification of schema error.
type Kind = wire.Kind

const (
	UnknownVariant   = wire.UnknownVariant
	MissingField     = wire.MissingField
	TypeMismatch     = wire.TypeMismatch
	MalformedPayload = wire.MalformedPayload
)

// SchemaError is returned by every decode entry point. A decode that fails
// never yields a partially constructed value alongside it. Path locates the
// offending value, e.g. "messages[0].content[1].type", and is empty when the
// payload as a whole is at fault.
type SchemaError = wire.SchemaError

// Helper constructors
func NewUnknownVariantError(path string, value string) *SchemaError {
	return wire.UnknownVariantError(path, value)
}

func NewMissingFieldError(path string) *SchemaError {
	return wire.MissingFieldError(path)
}

func NewTypeMismatchError(path string, msg string) *SchemaError {
	return wire.TypeMismatchError(path, msg)
}

func NewMalformedPayloadError(msg string, err error) *SchemaError {
	return wire.MalformedPayloadError(msg, err)
}

// IsKind reports whether err is a *SchemaError of the given kind.
func IsKind(err error, kind Kind) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr) && schemaErr.Kind == kind
}

// WrapPath re-roots the path of a *SchemaError under prefix. It is used when
// a payload embeds one of the schema records under an outer structure.
// Errors of any other type are returned unchanged.
func WrapPath(err error, prefix string) error {
	return wire.WrapPath(err, prefix)
}
