package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/audio"
	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/experience"
	"github.com/osse101/MelodyQuest_Go/internal/player"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

const testDebugKey = "debug-secret"

func newTestServer(t *testing.T, debugKey string) http.Handler {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	reg := player.NewRegistry(store, event.NewMemoryBus(), experience.Default(), player.Config{FrameTimeout: time.Second})
	t.Cleanup(reg.Close)

	return NewRouter(
		Options{ServiceName: "melody-quest", Version: "test", DebugAPIKey: debugKey},
		Dependencies{Players: reg, Hub: hub, Store: store, Tones: audio.NewWAVCache()},
	)
}

func send(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type stateBody struct {
	PlayerID string `json:"player_id"`
	State    struct {
		CurrentScene int      `json:"current_scene"`
		Ledger       []string `json:"ledger"`
	} `json:"state"`
}

func newPlayer(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := send(h, http.MethodPost, "/api/v1/players", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body stateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.PlayerID)
	return body.PlayerID
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestServer(t, "")

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := send(h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), path)
	}
}

func TestRouter_PlayerFlow(t *testing.T) {
	h := newTestServer(t, "")
	id := newPlayer(t, h)
	base := "/api/v1/players/" + id

	rec := send(h, http.MethodPost, base+"/navigate", `{"scene":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(h, http.MethodGet, base+"/state", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body stateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.State.CurrentScene)

	rec = send(h, http.MethodGet, "/api/v1/players/not-a-uuid/state", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DebugRoutes(t *testing.T) {
	t.Run("disabled without key", func(t *testing.T) {
		h := newTestServer(t, "")
		id := newPlayer(t, h)
		rec := send(h, http.MethodPost, "/api/v1/players/"+id+"/debug/goto", `{"scene":5}`,
			map[string]string{HeaderAPIKey: "anything"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		h := newTestServer(t, testDebugKey)
		id := newPlayer(t, h)
		rec := send(h, http.MethodPost, "/api/v1/players/"+id+"/debug/goto", `{"scene":5}`,
			map[string]string{HeaderAPIKey: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		h := newTestServer(t, testDebugKey)
		id := newPlayer(t, h)
		headers := map[string]string{HeaderAPIKey: testDebugKey}

		rec := send(h, http.MethodPost, "/api/v1/players/"+id+"/debug/goto", `{"scene":5}`, headers)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body stateBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 5, body.State.CurrentScene)

		rec = send(h, http.MethodPost, "/api/v1/players/"+id+"/debug/grant", `{"token":"E"}`, headers)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.State.Ledger, "E")
	})
}

func TestRouter_Tones(t *testing.T) {
	h := newTestServer(t, "")

	rec := send(h, http.MethodGet, "/api/v1/tones/C.wav", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF", rec.Body.String()[:4])

	rec = send(h, http.MethodGet, "/api/v1/tones/Z.wav", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
