// Package schema derives a single composite JSON Schema describing every
// registered prototype shape, for editor autocompletion and authoring-time
// validation. Generation is a pure function of the type table: it never
// touches a registry or any loaded content.
package schema

import (
	"github.com/iancoleman/orderedmap"
	"github.com/invopop/jsonschema"

	"protoforge/prototype"
)

const draft07 = "http://json-schema.org/draft-07/schema#"

// Generate composes the schema for the whole registered type universe. The
// root accepts either one record object or an array of record objects; each
// record must satisfy the oneOf union of the per-type fragments, discriminated
// by the "type" field.
func Generate(table *prototype.Table) *jsonschema.Schema {
	fragments := make([]*jsonschema.Schema, 0, table.Len())
	for _, name := range table.Types() {
		desc, ok := table.Lookup(name)
		if !ok {
			continue
		}
		fragments = append(fragments, recordFragment(desc))
	}

	record := &jsonschema.Schema{
		Title:       "Prototype",
		Description: `A single prototype record, discriminated by its "type" field.`,
		OneOf:       fragments,
	}

	return &jsonschema.Schema{
		Version:     draft07,
		Title:       "Prototypes",
		Description: "Prototype documents: one record object or an array of record objects.",
		OneOf: []*jsonschema.Schema{
			{
				Type:  "array",
				Title: "Prototype batch",
				Items: record,
			},
			record,
		},
	}
}

// recordFragment augments a descriptor's reflected fragment with the
// discriminant property and the shared required fields.
func recordFragment(desc prototype.TypeDescriptor) *jsonschema.Schema {
	fragment := &jsonschema.Schema{}
	if desc.Schema != nil {
		fragment = desc.Schema()
	}
	if fragment.Type == "" {
		fragment.Type = "object"
	}
	fragment.Title = desc.Type
	fragment.Version = ""

	props := orderedmap.New()
	props.Set("type", &jsonschema.Schema{
		Type:        "string",
		Enum:        []any{desc.Type},
		Description: "record discriminant",
	})
	if fragment.Properties != nil {
		for _, key := range fragment.Properties.Keys() {
			if value, ok := fragment.Properties.Get(key); ok {
				props.Set(key, value)
			}
		}
	}
	fragment.Properties = props
	fragment.Required = appendMissing(fragment.Required, "type", "name")
	return fragment
}

func appendMissing(required []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, existing := range required {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			required = append(required, name)
		}
	}
	return required
}
