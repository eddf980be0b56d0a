package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks raw documents against the composite schema before parsing,
// giving content authors the same feedback the editor shows.
type Validator struct {
	compiled *jsv.Schema
}

// NewValidator compiles the generated schema.
func NewValidator(root *jsonschema.Schema) (*Validator, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal schema: %w", err)
	}
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("schema: decode schema: %w", err)
	}

	compiler := jsv.NewCompiler()
	if err := compiler.AddResource("prototypes.schema.json", doc); err != nil {
		return nil, fmt.Errorf("schema: add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("prototypes.schema.json")
	if err != nil {
		return nil, fmt.Errorf("schema: compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate reports whether the raw document matches the composite schema.
func (v *Validator) Validate(document []byte) error {
	value, err := jsv.UnmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return fmt.Errorf("schema: invalid json: %w", err)
	}
	if err := v.compiled.Validate(value); err != nil {
		return fmt.Errorf("schema: document rejected: %w", err)
	}
	return nil
}
