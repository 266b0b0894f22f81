package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/platform/local"
)

type recordingDismisser struct {
	mu  sync.Mutex
	ids []string
}

func (d *recordingDismisser) Dismiss(activityID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, activityID)
	return true
}

func (d *recordingDismisser) dismissed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ids...)
}

func newTestGateway(t *testing.T, dismisser Dismisser) (*ConnectionManager, *httptest.Server) {
	t.Helper()
	cm := NewConnectionManager(DefaultConnectionConfig(), dismisser)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cm.Start(ctx)
		close(done)
	}()

	mux := http.NewServeMux()
	NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		cancel()
		<-done
		srv.Close()
	})
	return cm, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/live-activities/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) local.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event local.Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestGateway_BroadcastsToMatchingConnections(t *testing.T) {
	cm, srv := newTestGateway(t, nil)

	all := dial(t, srv, "")
	game7 := dial(t, srv, "?game_id=7")
	game8 := dial(t, srv, "?game_id=8")
	require.Eventually(t, func() bool { return cm.ConnectionCount() == 3 }, 2*time.Second, 10*time.Millisecond)

	cm.Notify(local.Event{
		Type:       local.EventActivityUpdated,
		ActivityID: "a-7",
		GameID:     7,
		State:      &liveactivity.ContentState{AwayScore: 14, HomeScore: 3, ProgressString: "3rd 2:00"},
	})
	cm.Notify(local.Event{Type: local.EventActivityEnded, ActivityID: "a-8", GameID: 8})

	got := readEvent(t, all)
	assert.Equal(t, "a-7", got.ActivityID)
	require.NotNil(t, got.State)
	assert.Equal(t, 14, got.State.AwayScore)
	assert.Equal(t, "a-8", readEvent(t, all).ActivityID)

	assert.Equal(t, "a-7", readEvent(t, game7).ActivityID)

	got = readEvent(t, game8)
	assert.Equal(t, local.EventActivityEnded, got.Type)
	assert.Equal(t, "a-8", got.ActivityID)
}

func TestGateway_DismissCommand(t *testing.T) {
	dismisser := &recordingDismisser{}
	cm, srv := newTestGateway(t, dismisser)

	conn := dial(t, srv, "")
	require.Eventually(t, func() bool { return cm.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"dismiss","activity_id":"a-1"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))

	require.Eventually(t, func() bool { return len(dismisser.dismissed()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"a-1"}, dismisser.dismissed())
}

func TestGateway_UnregistersOnClientClose(t *testing.T) {
	cm, srv := newTestGateway(t, nil)

	conn := dial(t, srv, "?game_id=3")
	require.Eventually(t, func() bool { return cm.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, map[int]int{3: 1}, cm.Stats().GameConnections)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return cm.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestGateway_RejectsBadGameID(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, err := http.Get(srv.URL + "/v1/live-activities/ws?game_id=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGateway_StatsEndpoint(t *testing.T) {
	cm, srv := newTestGateway(t, nil)
	dial(t, srv, "?game_id=5")
	require.Eventually(t, func() bool { return cm.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/v1/live-activities/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalConnections)
	assert.Equal(t, 1, stats.GameConnections[5])
}

func TestEventConsumer_ProcessMessage(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig(), nil)
	ec := &EventConsumer{notifier: cm}

	require.NoError(t, ec.processMessage([]byte(`{"type":"activity.started","activity_id":"a","game_id":1}`)))
	require.Len(t, cm.broadcastCh, 1)

	assert.Error(t, ec.processMessage([]byte(`{`)))
	assert.Error(t, ec.processMessage([]byte(`{"type":"activity.started"}`)))
}
