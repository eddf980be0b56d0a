package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"protoforge/catalog"
	"protoforge/gamedata"
	"protoforge/prototype"
)

func newTestServer(t *testing.T, doc string) (*Server, *catalog.Loader, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.proto.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table := prototype.NewTable()
	require.NoError(t, gamedata.Register(table))
	loader := catalog.NewLoader(table, catalog.WithSources(catalog.FileSource(path)))
	return New(table, loader, zap.NewNop()), loader, path
}

func TestSchemaEndpoint(t *testing.T) {
	server, loader, _ := newTestServer(t, `{"type": "effect", "name": "bleeding", "icon": "b.png"}`)
	_, err := loader.Load()
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/schema.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var root struct {
		Version string `json:"$schema"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&root))
	require.Equal(t, "http://json-schema.org/draft-07/schema#", root.Version)
}

func TestPrototypesEndpoint(t *testing.T) {
	server, loader, _ := newTestServer(t, `[
		{"type": "effect", "name": "bleeding", "icon": "b.png"},
		{"type": "sword", "name": "saber", "effects": ["bleeding"], "icon": "s.png"}
	]`)
	_, err := loader.Load()
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/prototypes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Records []catalog.RecordSummary `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Records, 2)
}

func TestReloadBroadcastsEvents(t *testing.T) {
	server, loader, path := newTestServer(t,
		`{"type": "effect", "name": "bleeding", "damage_multiplier": 1.0, "icon": "b.png"}`)
	_, err := loader.Load()
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, os.WriteFile(path,
		[]byte(`{"type": "effect", "name": "bleeding", "damage_multiplier": 9.0, "icon": "b.png"}`), 0o644))

	resp, err := http.Post(ts.URL+"/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report reloadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Equal(t, 1, report.Records)
	require.Empty(t, report.RecordErrors)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event catalog.Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, catalog.EventReplaced, event.Kind)
	require.Equal(t, "effect", event.Type)
	require.Equal(t, "bleeding", event.Name)

	record, ok := catalog.Get[gamedata.Effect](loader.Registry(), "bleeding")
	require.True(t, ok)
	require.Equal(t, 9.0, *record.DamageMultiplier)
}

func TestReloadSurfacesLoadFailure(t *testing.T) {
	server, loader, path := newTestServer(t, `{"type": "effect", "name": "bleeding", "icon": "b.png"}`)
	_, err := loader.Load()
	require.NoError(t, err)

	// Replacing the source file with a directory makes the read fail with
	// something other than a missing-file error, which aborts the batch.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
