package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"protoforge/prototype"
)

type testEffect struct {
	prototype.Header
	Multiplier float64                        `json:"multiplier,omitempty"`
	Linked     *prototype.Ref[testEffect]     `json:"linked,omitempty"`
	Icon       prototype.AssetRef             `json:"icon,omitempty"`
}

func (testEffect) PrototypeType() string { return "effect" }

type testSword struct {
	prototype.Header
	Damage  float64                       `json:"damage,omitempty"`
	Effects []prototype.Ref[testEffect]   `json:"effects,omitempty"`
	Icon    prototype.AssetRef            `json:"icon,omitempty"`
}

func (testSword) PrototypeType() string { return "sword" }

func newTestTable(t *testing.T) *prototype.Table {
	t.Helper()
	table := prototype.NewTable()
	require.NoError(t, prototype.RegisterType[testSword](table))
	require.NoError(t, prototype.RegisterType[testEffect](table))
	return table
}

type memorySource struct {
	path string
	data []byte
	err  error
}

func (m *memorySource) Load() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memorySource) Path() string {
	return m.path
}

func mustParse(t *testing.T, table *prototype.Table, doc string) []prototype.Prototype {
	t.Helper()
	records, errs := ParseDocument(table, "inline.json", []byte(doc))
	require.Empty(t, errs)
	return records
}
