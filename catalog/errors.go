package catalog

import (
	"fmt"

	"protoforge/prototype"
)

// DuplicateError reports a record whose (type, name) pair is already present
// in the registry under the RejectDuplicate policy. The first record wins.
type DuplicateError struct {
	Type string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("catalog: duplicate %s identifier %q", e.Type, e.Name)
}

// DanglingRefError reports a reference whose target does not exist in the
// registry. The owning record stays inserted; only the referencing field is
// left unresolved.
type DanglingRefError struct {
	From       prototype.Identifier
	FromName   string
	Field      string
	TargetType string
	TargetKey  string
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("catalog: %s %q field %s references unknown %s %q",
		e.From.Type, e.FromName, e.Field, e.TargetType, e.TargetKey)
}

// RefTypeMismatchError reports a reference whose key exists in the registry
// but under a different discriminant than the reference expects. The reference
// is never silently coerced.
type RefTypeMismatchError struct {
	From       prototype.Identifier
	FromName   string
	Field      string
	TargetType string
	FoundType  string
	TargetKey  string
}

func (e *RefTypeMismatchError) Error() string {
	return fmt.Sprintf("catalog: %s %q field %s expects %s %q but the key names a %s record",
		e.From.Type, e.FromName, e.Field, e.TargetType, e.TargetKey, e.FoundType)
}

// AssetBindError reports a failure from the host asset resolver for one token.
type AssetBindError struct {
	From  prototype.Identifier
	Field string
	Path  string
	Err   error
}

func (e *AssetBindError) Error() string {
	return fmt.Sprintf("catalog: %s field %s: resolve asset %q: %v", e.From, e.Field, e.Path, e.Err)
}

func (e *AssetBindError) Unwrap() error {
	return e.Err
}
