package prototype

import (
	"encoding/json"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestNameIDIsStableHash(t *testing.T) {
	id := NameID("mighty_sword")
	require.Equal(t, xxhash.Sum64String("mighty_sword"), id.Raw())
	require.Equal(t, id, NameID("mighty_sword"))
	require.NotEqual(t, id, NameID("mighty_sord"))
}

func TestIDUnmarshalString(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`"bleeding"`), &id))
	require.Equal(t, NameID("bleeding"), id)
}

func TestIDUnmarshalInteger(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	require.Equal(t, RawID(42), id)
}

func TestIDUnmarshalRejectsOtherShapes(t *testing.T) {
	for _, raw := range []string{`true`, `-3`, `{}`, `1.5`} {
		var id ID
		require.Error(t, json.Unmarshal([]byte(raw), &id), "raw %s", raw)
	}
}

func TestIDMarshalRoundTrip(t *testing.T) {
	id := NameID("freezing")
	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, id, decoded)
}

func TestNamedIDKeepsName(t *testing.T) {
	named := NamedIDFromString("freezing")
	require.Equal(t, "freezing", named.Name())
	require.Equal(t, "freezing", named.Key())
	require.Equal(t, NameID("freezing"), named.ID())

	raw := NamedIDFromRaw(7)
	require.Empty(t, raw.Name())
	require.Equal(t, RawID(7).String(), raw.Key())
}

func TestNamedIDMarshalPrefersName(t *testing.T) {
	data, err := json.Marshal(NamedIDFromString("freezing"))
	require.NoError(t, err)
	require.JSONEq(t, `"freezing"`, string(data))

	data, err = json.Marshal(NamedIDFromRaw(7))
	require.NoError(t, err)
	require.JSONEq(t, `7`, string(data))
}

func TestIdentifierScopedPerType(t *testing.T) {
	a := Identifier{Type: "sword", ID: NameID("excalibur")}
	b := Identifier{Type: "effect", ID: NameID("excalibur")}
	require.NotEqual(t, a, b)
}
