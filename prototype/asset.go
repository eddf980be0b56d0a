package prototype

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// AssetRef carries an opaque asset path through decoding. The host asset
// system turns the path into a loadable handle out-of-band; the core never
// interprets the handle or the asset content.
type AssetRef struct {
	path   string
	handle any
}

// NewAssetRef builds an unresolved asset token for the given path.
func NewAssetRef(path string) AssetRef {
	return AssetRef{path: path}
}

// Path returns the raw asset path token.
func (a AssetRef) Path() string {
	return a.path
}

// Resolved reports whether a host handle has been attached.
func (a AssetRef) Resolved() bool {
	return a.handle != nil
}

// Handle returns the host-provided handle, or nil before resolution.
func (a AssetRef) Handle() any {
	return a.handle
}

// BindHandle attaches the host-provided handle to the token.
func (a *AssetRef) BindHandle(handle any) {
	a.handle = handle
}

func (a AssetRef) String() string {
	return fmt.Sprintf("AssetRef(%s)", a.path)
}

func (a AssetRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.path)
}

func (a *AssetRef) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return fmt.Errorf("prototype: asset path must be a string: %w", err)
	}
	*a = AssetRef{path: path}
	return nil
}

// JSONSchema describes the wire form of an asset path for the schema generator.
func (AssetRef) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "an asset path",
	}
}

// AssetField is the untyped view of an AssetRef presented by the reflection
// walker.
type AssetField interface {
	Path() string
	Resolved() bool
	BindHandle(handle any)
}

// AssetResolver is the host asset system. It receives the opaque path token
// and returns whatever handle the host manages for it.
type AssetResolver interface {
	ResolveAsset(path string) (any, error)
}

// AssetResolverFunc adapts a function to the AssetResolver interface.
type AssetResolverFunc func(path string) (any, error)

func (f AssetResolverFunc) ResolveAsset(path string) (any, error) {
	return f(path)
}
