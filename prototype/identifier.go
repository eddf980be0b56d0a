package prototype

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ID is the per-type key of a single prototype instance. The canonical form is
// a 64-bit hash of the human-readable name, so documents may spell a key either
// as the name string or as the raw unsigned integer.
type ID struct {
	hash uint64
}

// NameID hashes a human-readable name into an ID.
func NameID(name string) ID {
	return ID{hash: xxhash.Sum64String(name)}
}

// RawID wraps an already-hashed key.
func RawID(value uint64) ID {
	return ID{hash: value}
}

// Raw returns the hash carried by the ID.
func (id ID) Raw() uint64 {
	return id.hash
}

// IsZero reports whether the ID was never assigned.
func (id ID) IsZero() bool {
	return id.hash == 0
}

func (id ID) String() string {
	return fmt.Sprintf("%X", id.hash)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.hash)
}

// UnmarshalJSON accepts either a name string or a raw unsigned integer.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*id = NameID(name)
		return nil
	}
	var raw uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("prototype: id must be a string or an unsigned integer: %w", err)
	}
	*id = RawID(raw)
	return nil
}

// Identifier names one prototype instance across the whole registry: the type
// discriminant plus the per-type ID. The same textual key may be reused by
// different discriminants without collision.
type Identifier struct {
	Type string
	ID   ID
}

func (ident Identifier) String() string {
	return ident.Type + "/" + ident.ID.String()
}

// NamedID couples an ID with the original string it was hashed from. Keys that
// arrived as raw integers have an empty name.
type NamedID struct {
	name string
	id   ID
}

// NamedIDFromString builds a NamedID from a human-readable name.
func NamedIDFromString(name string) NamedID {
	return NamedID{name: name, id: NameID(name)}
}

// NamedIDFromRaw builds a NamedID from an already-hashed key.
func NamedIDFromRaw(value uint64) NamedID {
	return NamedID{id: RawID(value)}
}

// Name returns the original string form, or "" for raw keys.
func (n NamedID) Name() string {
	return n.name
}

// ID returns the hashed key.
func (n NamedID) ID() ID {
	return n.id
}

// Key returns the most readable rendering available: the name when the key
// arrived as a string, the hex hash otherwise.
func (n NamedID) Key() string {
	if n.name != "" {
		return n.name
	}
	return n.id.String()
}

func (n NamedID) String() string {
	return fmt.Sprintf("%s#%s", n.name, n.id)
}

func (n NamedID) MarshalJSON() ([]byte, error) {
	if n.name != "" {
		return json.Marshal(n.name)
	}
	return json.Marshal(n.id.Raw())
}

func (n *NamedID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*n = NamedIDFromString(name)
		return nil
	}
	var raw uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("prototype: key must be a string or an unsigned integer: %w", err)
	}
	*n = NamedIDFromRaw(raw)
	return nil
}
