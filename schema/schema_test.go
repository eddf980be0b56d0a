package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/require"

	"protoforge/gamedata"
	"protoforge/prototype"
)

func gameTable(t *testing.T) *prototype.Table {
	t.Helper()
	table := prototype.NewTable()
	require.NoError(t, gamedata.Register(table))
	return table
}

func TestGenerateShape(t *testing.T) {
	root := Generate(gameTable(t))

	require.Equal(t, draft07, root.Version)
	require.Len(t, root.OneOf, 2)
	require.Equal(t, "array", root.OneOf[0].Type)

	record := root.OneOf[1]
	require.Len(t, record.OneOf, 2)
	for _, fragment := range record.OneOf {
		require.Contains(t, fragment.Required, "type")
		require.Contains(t, fragment.Required, "name")

		raw, ok := fragment.Properties.Get("type")
		require.True(t, ok)
		typeProp, ok := raw.(*jsonschema.Schema)
		require.True(t, ok)
		require.Equal(t, "string", typeProp.Type)
		require.Equal(t, []any{fragment.Title}, typeProp.Enum)
	}
}

func TestGenerateIsPureFunctionOfTable(t *testing.T) {
	table := gameTable(t)
	first, err := json.Marshal(Generate(table))
	require.NoError(t, err)
	second, err := json.Marshal(Generate(table))
	require.NoError(t, err)
	require.JSONEq(t, string(first), string(second))
}

func TestValidatorAcceptsValidDocuments(t *testing.T) {
	validator, err := NewValidator(Generate(gameTable(t)))
	require.NoError(t, err)

	require.NoError(t, validator.Validate([]byte(`[
		{"type": "sword", "name": "mighty_sword", "damage": 3000.0, "level": 100, "effects": ["bleeding", "freezing"], "icon": "mighty_sword_icon.png"},
		{"type": "effect", "name": "bleeding", "damage_multiplier": 3.0, "icon": "bleeding_effect.png"},
		{"type": "effect", "name": "freezing", "slow_factor": 0.5, "slow_duration": 3.0, "icon": "freezing_effect.png"}
	]`)))

	// A lone record object is also a valid document.
	require.NoError(t, validator.Validate([]byte(`{"type": "effect", "name": "bleeding", "icon": "b.png"}`)))

	// References may be spelled as raw integer ids.
	require.NoError(t, validator.Validate([]byte(`{"type": "sword", "name": "saber", "effects": [12345], "icon": "s.png"}`)))
}

func TestValidatorRejectsMissingTypeOrName(t *testing.T) {
	validator, err := NewValidator(Generate(gameTable(t)))
	require.NoError(t, err)

	require.Error(t, validator.Validate([]byte(`{"name": "mighty_sword", "icon": "s.png"}`)))
	require.Error(t, validator.Validate([]byte(`{"type": "sword", "icon": "s.png"}`)))
	require.Error(t, validator.Validate([]byte(`[{"type": "effect", "icon": "b.png"}]`)))
}

func TestValidatorRejectsUnknownDiscriminant(t *testing.T) {
	validator, err := NewValidator(Generate(gameTable(t)))
	require.NoError(t, err)

	require.Error(t, validator.Validate([]byte(`{"type": "potion", "name": "mana"}`)))
}

func TestValidatorRejectsWrongFieldType(t *testing.T) {
	validator, err := NewValidator(Generate(gameTable(t)))
	require.NoError(t, err)

	require.Error(t, validator.Validate([]byte(`{"type": "sword", "name": "saber", "damage": "lots", "icon": "s.png"}`)))
}

func TestValidatorRejectsNonJSON(t *testing.T) {
	validator, err := NewValidator(Generate(gameTable(t)))
	require.NoError(t, err)

	require.Error(t, validator.Validate([]byte(`{not json`)))
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vscode", "prototypes.schema.json")
	require.NoError(t, Write(path, Generate(gameTable(t))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	// Rewriting replaces the artifact in place.
	require.NoError(t, Write(path, Generate(gameTable(t))))
	_, err = os.Stat(path + ".tmp")
	require.Error(t, err)
}
