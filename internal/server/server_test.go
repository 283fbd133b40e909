package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type memScores struct {
	mu      sync.Mutex
	entries []domain.ScoreEntry
}

func (m *memScores) Record(_ context.Context, e domain.ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memScores) Top(_ context.Context, limit int) ([]domain.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return append([]domain.ScoreEntry(nil), m.entries[:limit]...), nil
}

func newTestServer(t *testing.T, opts ...func(*engine.GameService)) (*engine.GameService, *httptest.Server) {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Pile.CreatureProbability = 0
	svc := engine.NewService(cfg)
	for _, opt := range opts {
		opt(svc)
	}
	ts := httptest.NewServer(New(svc, "0").Handler())
	t.Cleanup(func() {
		ts.Close()
		svc.Shutdown()
	})
	return svc, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var resp api.ServerResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestWebSocketSession(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":  "LOGIN",
		"payload": map[string]any{"name": "Anna", "seed": 42},
	}))

	// INIT приходит сам после логина
	initResp := read(t, conn)
	assert.Equal(t, domain.ResponseUpdate, initResp.Type)
	require.NotEmpty(t, initResp.SessionID)
	require.NotNil(t, initResp.Pile)
	assert.Len(t, initResp.Pile.Pieces, 60)
	require.NotNil(t, initResp.Game)
	assert.Equal(t, "Anna", initResp.Game.Player)
	assert.Equal(t, int64(42), initResp.Game.Seed)

	// Токен из сообщения игнорируется: подставляется сессия соединения
	require.NoError(t, conn.WriteJSON(map[string]any{
		"token":   "someone-else",
		"action":  "HOVER",
		"payload": map[string]any{"pieceId": "p_1_0"},
	}))
	pred := read(t, conn)
	assert.Equal(t, domain.ResponsePrediction, pred.Type)
	assert.Equal(t, "p_1_0", pred.Hovered)
	assert.Equal(t, initResp.SessionID, pred.SessionID)

	t.Run("schema error", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]any{"action": "DANCE"}))
		resp := read(t, conn)
		assert.Equal(t, domain.ResponseError, resp.Type)
		require.NotEmpty(t, resp.Logs)
		assert.Equal(t, domain.LogError, resp.Logs[0].Type)
	})

	t.Run("second login", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]any{"action": "LOGIN"}))
		resp := read(t, conn)
		assert.Equal(t, domain.ResponseError, resp.Type)
	})

	require.Len(t, svc.Sessions(), 1)

	// Закрытие сокета закрывает партию
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return len(svc.Sessions()) == 0 }, 3*time.Second, 20*time.Millisecond)
}

func TestWebSocketHandshakeRejected(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "INIT"}))
	resp := read(t, conn)
	assert.Equal(t, domain.ResponseError, resp.Type)
	require.NotEmpty(t, resp.Logs)
	assert.Contains(t, resp.Logs[0].Text, "LOGIN")
	assert.Empty(t, svc.Sessions())

	// После ошибки сервер закрывает соединение
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHTTPEndpoints(t *testing.T) {
	svc, ts := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("version", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/version")
		require.NoError(t, err)
		defer res.Body.Close()
		var info map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&info))
		assert.Equal(t, "woodpile", info["name"])
	})

	t.Run("highscores disabled", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/highscores")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	})

	t.Run("highscores", func(t *testing.T) {
		scores := &memScores{}
		created := time.Date(2025, 12, 4, 12, 0, 0, 0, time.UTC)
		for _, name := range []string{"anna", "boris", "vera"} {
			require.NoError(t, scores.Record(context.Background(), domain.ScoreEntry{Name: name, Score: 10, CreatedAt: created}))
		}
		_, ts := newTestServer(t, func(s *engine.GameService) { s.Scores = scores })

		res, err := http.Get(ts.URL + "/highscores?limit=2")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var views []api.HighscoreView
		require.NoError(t, json.NewDecoder(res.Body).Decode(&views))
		require.Len(t, views, 2)
		assert.Equal(t, "anna", views[0].Name)
		assert.Equal(t, created.UnixMilli(), views[0].CreatedAt)

		bad, err := http.Get(ts.URL + "/highscores?limit=abc")
		require.NoError(t, err)
		defer bad.Body.Close()
		assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	})

	t.Run("debug", func(t *testing.T) {
		session, err := svc.CreateSession("debugger", 7)
		require.NoError(t, err)

		res, err := http.Get(ts.URL + "/debug/sessions")
		require.NoError(t, err)
		defer res.Body.Close()
		var sessions []engine.SessionSummary
		require.NoError(t, json.NewDecoder(res.Body).Decode(&sessions))
		require.Len(t, sessions, 1)
		assert.Equal(t, session.ID, sessions[0].ID)
		assert.Equal(t, 60, sessions[0].LiveCount)

		pile, err := http.Get(ts.URL + "/debug/pile?session=" + session.ID)
		require.NoError(t, err)
		defer pile.Body.Close()
		var snap api.ServerResponse
		require.NoError(t, json.NewDecoder(pile.Body).Decode(&snap))
		require.NotNil(t, snap.Pile)
		assert.Len(t, snap.Pile.Pieces, 60)

		missing, err := http.Get(ts.URL + "/debug/pile?session=nope")
		require.NoError(t, err)
		defer missing.Body.Close()
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	})
}
