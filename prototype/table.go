package prototype

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
)

// DecodeFunc turns one raw record body into a typed prototype instance.
type DecodeFunc func(raw json.RawMessage) (Prototype, error)

// SchemaFunc produces the JSON Schema fragment describing one record shape.
type SchemaFunc func() *jsonschema.Schema

// TypeDescriptor binds a discriminant to the machinery for its concrete type.
type TypeDescriptor struct {
	Type   string
	Decode DecodeFunc
	Schema SchemaFunc
	GoType reflect.Type
}

// Table is the append-only map from discriminant to TypeDescriptor. It is
// populated once during a single-threaded startup phase and only read
// afterwards; there is no removal operation.
type Table struct {
	mu          sync.RWMutex
	descriptors map[string]TypeDescriptor
	order       []string
}

func NewTable() *Table {
	return &Table{descriptors: make(map[string]TypeDescriptor)}
}

// Register adds a descriptor. Registering the same discriminant twice is a
// programming error and fails with ErrDuplicateDiscriminant.
func (t *Table) Register(desc TypeDescriptor) error {
	if desc.Type == "" {
		return errors.New("prototype: descriptor discriminant must not be empty")
	}
	if desc.Decode == nil {
		return fmt.Errorf("prototype: descriptor %q has no decode function", desc.Type)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.descriptors[desc.Type]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDiscriminant, desc.Type)
	}
	t.descriptors[desc.Type] = desc
	t.order = append(t.order, desc.Type)
	return nil
}

// MustRegister panics on registration failure. Registration happens at
// startup, before any document is parsed, so failures abort initialization.
func (t *Table) MustRegister(desc TypeDescriptor) {
	if err := t.Register(desc); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for a discriminant.
func (t *Table) Lookup(discriminant string) (TypeDescriptor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	desc, ok := t.descriptors[discriminant]
	return desc, ok
}

// Types returns the registered discriminants in registration order.
func (t *Table) Types() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.descriptors)
}
