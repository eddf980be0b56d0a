// Package prototype implements the core model for designer-authored game data:
// stable identifiers, lazily-resolved cross references, opaque asset tokens,
// and the process-wide table mapping a document discriminant to its typed
// decoder and schema fragment.
package prototype

// Prototype is implemented by every concrete prototype type. Concrete types
// embed Header for the shared name/tags fields and declare their discriminant
// with a constant PrototypeType method.
type Prototype interface {
	// PrototypeType returns the discriminant selecting this concrete shape.
	PrototypeType() string
	// PrototypeID returns the hashed per-type key.
	PrototypeID() ID
	// PrototypeName returns the human-readable identifier.
	PrototypeName() string
	// PrototypeTags returns the record's free-form tags.
	PrototypeTags() []string
}

// Header carries the fields shared by every prototype record. Tags are
// order-preserving but carry no ordering semantics.
type Header struct {
	Name string   `json:"name" jsonschema:"title=Prototype name,minLength=1,description=Identifier unique within the record's type,required"`
	Tags []string `json:"tags,omitempty" jsonschema:"title=Tags,description=Free-form labels attached to the record"`
}

func (h Header) PrototypeID() ID {
	return NameID(h.Name)
}

func (h Header) PrototypeName() string {
	return h.Name
}

func (h Header) PrototypeTags() []string {
	return h.Tags
}

// Identify returns the full registry key of a record.
func Identify(p Prototype) Identifier {
	return Identifier{Type: p.PrototypeType(), ID: p.PrototypeID()}
}

// Validator is implemented by prototype types that enforce invariants beyond
// what JSON decoding checks, e.g. required asset paths. The decode function
// produced by RegisterType calls it after unmarshalling.
type Validator interface {
	Validate() error
}
