package prototype

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/invopop/jsonschema"
)

// RegisterType derives a TypeDescriptor for a concrete prototype type and adds
// it to the table. The decode function unmarshals the record body, checks the
// identifier, and runs the type's Validate hook when present; the schema
// function reflects the struct's shape including jsonschema tags.
func RegisterType[T Prototype](table *Table) error {
	var zero T
	discriminant := zero.PrototypeType()
	goType := reflect.TypeOf(zero)

	decode := func(raw json.RawMessage) (Prototype, error) {
		rec := new(T)
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, &FieldDecodeError{
				Type:  discriminant,
				Field: decodeErrorField(err),
				Err:   err,
			}
		}
		p, ok := any(rec).(Prototype)
		if !ok {
			// Value-receiver implementations promote to *T, so this
			// only trips on malformed type definitions.
			return nil, &FieldDecodeError{Type: discriminant, Err: errors.New("type does not implement Prototype")}
		}
		if p.PrototypeName() == "" {
			return nil, ErrMissingIdentifier
		}
		if v, ok := any(rec).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, &FieldDecodeError{
					Type:  discriminant,
					Name:  p.PrototypeName(),
					Field: decodeErrorField(err),
					Err:   err,
				}
			}
		}
		return p, nil
	}

	schemaFn := func() *jsonschema.Schema {
		return reflectFragment(goType)
	}

	return table.Register(TypeDescriptor{
		Type:   discriminant,
		Decode: decode,
		Schema: schemaFn,
		GoType: goType,
	})
}

// MustRegisterType panics on registration failure, mirroring Table.MustRegister.
func MustRegisterType[T Prototype](table *Table) {
	if err := RegisterType[T](table); err != nil {
		panic(err)
	}
}

func decodeErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	return ""
}

func reflectFragment(t reflect.Type) *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		Anonymous:                  true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	fragment := reflector.ReflectFromType(t)
	fragment.Version = ""
	return fragment
}
