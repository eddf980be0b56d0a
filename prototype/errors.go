package prototype

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDiscriminant is reported for records without a "type" field.
	ErrMissingDiscriminant = errors.New(`prototype: record missing "type" discriminant`)
	// ErrMissingIdentifier is reported for records without a non-empty "name" field.
	ErrMissingIdentifier = errors.New(`prototype: record missing "name" identifier`)
	// ErrDuplicateDiscriminant is reported when a discriminant is registered twice.
	ErrDuplicateDiscriminant = errors.New("prototype: duplicate discriminant")
)

// UnknownTypeError is reported when a record's discriminant has no registered
// descriptor.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("prototype: unknown prototype type %q", e.Type)
}

// FieldDecodeError wraps a failure while decoding one record. Field names the
// offending field when the underlying cause reveals it.
type FieldDecodeError struct {
	Type  string
	Name  string
	Field string
	Err   error
}

func (e *FieldDecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("prototype: decode %s %q: field %q: %v", e.Type, e.Name, e.Field, e.Err)
	}
	return fmt.Sprintf("prototype: decode %s %q: %v", e.Type, e.Name, e.Err)
}

func (e *FieldDecodeError) Unwrap() error {
	return e.Err
}

// MissingFieldError signals that a required field was absent. Validate hooks
// return it so decode errors can name the offending field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
