package prototype

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// Ref is a typed, lazily-resolved reference to another prototype. Decoding
// captures only the raw key; the registry's resolution pass later verifies the
// target exists and carries the expected discriminant. A resolved Ref still
// holds nothing but the lookup key, so the registry stays sole owner of every
// record and reference cycles are harmless.
type Ref[T Prototype] struct {
	key   NamedID
	bound bool
}

// NewRef builds an unresolved reference to the named prototype.
func NewRef[T Prototype](name string) Ref[T] {
	return Ref[T]{key: NamedIDFromString(name)}
}

// ExpectedType returns the discriminant the target must carry.
func (r Ref[T]) ExpectedType() string {
	var zero T
	return zero.PrototypeType()
}

// TargetID returns the hashed key of the referenced prototype.
func (r Ref[T]) TargetID() ID {
	return r.key.ID()
}

// TargetKey returns the most readable rendering of the referenced key.
func (r Ref[T]) TargetKey() string {
	return r.key.Key()
}

// Resolved reports whether the reference has been verified against a registry.
func (r Ref[T]) Resolved() bool {
	return r.bound
}

// Identifier returns the full registry key the reference points at.
func (r Ref[T]) Identifier() Identifier {
	return Identifier{Type: r.ExpectedType(), ID: r.key.ID()}
}

// Bind marks the reference resolved. Binding twice is a no-op; binding to an
// identifier of the wrong type or key is refused, never coerced.
func (r *Ref[T]) Bind(target Identifier) error {
	if r.bound {
		return nil
	}
	if target.Type != r.ExpectedType() {
		return fmt.Errorf("prototype: cannot bind %s reference to %s", r.ExpectedType(), target.Type)
	}
	if target.ID != r.key.ID() {
		return fmt.Errorf("prototype: cannot bind reference %s to %s", r.key.Key(), target.ID)
	}
	r.bound = true
	return nil
}

func (r Ref[T]) String() string {
	state := "unresolved"
	if r.bound {
		state = "resolved"
	}
	return fmt.Sprintf("Ref[%s](%s, %s)", r.ExpectedType(), r.key.Key(), state)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return r.key.MarshalJSON()
}

// UnmarshalJSON accepts a name string or a raw unsigned integer key. The
// reference always comes out unresolved.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	var key NamedID
	if err := key.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = Ref[T]{key: key}
	return nil
}

// JSONSchema describes the wire form of a reference for the schema generator.
func (r Ref[T]) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Description: "prototype name"},
			{Type: "integer", Description: "raw prototype id"},
		},
		Description: fmt.Sprintf("reference to a %q prototype", r.ExpectedType()),
	}
}

// RefField is the untyped view of a Ref presented by the reflection walker.
type RefField interface {
	ExpectedType() string
	TargetID() ID
	TargetKey() string
	Resolved() bool
	Bind(target Identifier) error
}
