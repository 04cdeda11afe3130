package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wander-server/internal/domain"
	"wander-server/internal/engine"
	"wander-server/internal/store"
	"wander-server/pkg/api"
	"wander-server/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func testService(t *testing.T) *engine.Service {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Seed = 11
	cfg.FPS = 100
	cfg.BroadcastEvery = 5
	cfg.TimeUnit = 10 * time.Millisecond
	return engine.NewService(cfg)
}

func runService(t *testing.T, s *engine.Service) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func testJournal(t *testing.T) *store.Journal {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewJournal(db)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndVersion(t *testing.T) {
	h := New(testService(t), nil, "0").Handler()

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/version")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"calculated"`)
}

func TestState(t *testing.T) {
	h := New(testService(t), nil, "0").Handler()

	rec := get(t, h, "/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ServerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, api.TypeUpdate, resp.Type)
	assert.Equal(t, domain.InitialPopulation, resp.Population)
	assert.Equal(t, domain.DefaultMaxPopulation, resp.MaxPopulation)
	assert.Len(t, resp.Agents, domain.InitialPopulation)
	assert.Equal(t, "#1", resp.Agents[0].ID)
}

func TestFramePNG(t *testing.T) {
	h := New(testService(t), nil, "0").Handler()

	rec := get(t, h, "/frame.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
}

func TestControl(t *testing.T) {
	svc := testService(t)
	h := New(svc, nil, "0").Handler()

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/control", strings.NewReader(body)))
		return rec
	}

	rec := post(`{"maxPopulation": 99, "intervalSeconds": 5}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp api.ControlRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.MaxPopulation)
	assert.Equal(t, domain.MaxMaxPopulation, *resp.MaxPopulation)
	assert.Equal(t, 5, *resp.IntervalSeconds)

	// Сервис не запущен: команды ждут в очереди
	require.Len(t, svc.CommandChan, 2)
	first := <-svc.CommandChan
	assert.Equal(t, domain.ActionSetMax, first.Action)
	assert.JSONEq(t, `{"value": 99}`, string(first.Payload))

	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/control", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDebugAgentsAndStats(t *testing.T) {
	journal := testJournal(t)
	require.NoError(t, journal.Append(context.Background(), []domain.Event{
		{Type: domain.EventAdmitted, AgentID: 6, Frame: 3, Pos: orb.Point{660, 200}, At: time.Now()},
	}))
	h := New(testService(t), journal, "0").Handler()

	rec := get(t, h, "/debug/agents")
	require.Equal(t, http.StatusOK, rec.Code)
	var agents []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agents))
	assert.Len(t, agents, domain.InitialPopulation)
	assert.Contains(t, agents[0], "goal")

	rec = get(t, h, "/debug/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Seed    int64 `json:"seed"`
		Journal struct {
			Total int `json:"total"`
		} `json:"journal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(11), stats.Seed)
	assert.Equal(t, 1, stats.Journal.Total)
}

func TestDebugHistory(t *testing.T) {
	journal := testJournal(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, journal.Append(ctx, []domain.Event{
			{Type: domain.EventAdmitted, AgentID: domain.AgentID(i), Frame: uint64(i), At: time.Now()},
		}))
	}
	h := New(testService(t), journal, "0").Handler()

	rec := get(t, h, "/debug/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []struct {
		Kind    string `json:"kind"`
		AgentID string `json:"agent_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "#2", events[0].AgentID)
	assert.Equal(t, "#3", events[1].AgentID)
	assert.Equal(t, "ADMITTED", events[1].Kind)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/debug/history?limit=abc").Code)

	noJournal := New(testService(t), nil, "0").Handler()
	assert.Equal(t, http.StatusNotFound, get(t, noJournal, "/debug/history").Code)
}

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg api.ServerResponse
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestWebSocket_Session(t *testing.T) {
	svc := testService(t)
	runService(t, svc)

	ts := httptest.NewServer(New(svc, nil, "0").Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	initMsg := readUntil(t, conn, api.TypeInit)
	require.NotNil(t, initMsg.Room)
	assert.Equal(t, 690.0, initMsg.Room.Entry.X)

	update := readUntil(t, conn, api.TypeUpdate)
	assert.Nil(t, update.Room)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":  "SET_MAX",
		"payload": map[string]int{"value": 2},
	}))
	require.Eventually(t, func() bool { return svc.Sim.MaxPopulation() == 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "FLY"}))
	errMsg := readUntil(t, conn, api.TypeError)
	assert.Contains(t, errMsg.Error, "unknown action")

	conn.Close()
	require.Eventually(t, func() bool { return svc.Hub.SubscriberCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestCORSPreflight(t *testing.T) {
	h := New(testService(t), nil, "0").Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/control", bytes.NewReader(nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
