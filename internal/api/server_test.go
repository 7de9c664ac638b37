package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/rileyhilliard/nerdminer/internal/miner"
	"github.com/rileyhilliard/nerdminer/internal/network"
	"github.com/rileyhilliard/nerdminer/internal/supervisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

type fakeProvider struct {
	mu     sync.Mutex
	status supervisor.Status
	calls  int
}

func (f *fakeProvider) Status() supervisor.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	st := f.status
	st.Stats.TotalHashes += uint64(f.calls)
	return st
}

func miningStatus() supervisor.Status {
	return supervisor.Status{
		Stats: miner.Snapshot{
			Running:        true,
			TotalHashes:    1000,
			CurrentRate:    287,
			AcceptedShares: 2,
			StartTime:      now.Add(-90 * time.Second),
			RateHistory:    []float64{280, 287},
		},
		Network: network.Snapshot{
			BTCPriceUSD:          67123.4,
			BlockHeight:          870123,
			DifficultyLabel:      "25.00T",
			NetworkHashrateLabel: "178.96 EH/s",
			LastFetchedAt:        now.Add(-time.Minute),
		},
		ScreenOn:    true,
		Temperature: 40,
		Now:         now,
	}
}

func TestNewStatusResponse(t *testing.T) {
	resp := NewStatusResponse(miningStatus())

	assert.True(t, resp.Running)
	assert.Equal(t, "00:01:30", resp.Uptime)
	assert.Equal(t, []float64{280, 287}, resp.RateHistory)
	assert.Equal(t, "25.00T", resp.Difficulty)
	require.NotNil(t, resp.LastFetchedAt)
	assert.Equal(t, now.Add(-time.Minute), *resp.LastFetchedAt)
}

func TestNewStatusResponse_Idle(t *testing.T) {
	resp := NewStatusResponse(supervisor.Status{Network: network.NewSnapshot(), Now: now})

	assert.False(t, resp.Running)
	assert.Equal(t, "00:00:00", resp.Uptime)
	assert.NotNil(t, resp.RateHistory)
	assert.Empty(t, resp.RateHistory)
	assert.Nil(t, resp.LastFetchedAt)

	body, err := sonic.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"rate_history":[]`)
	assert.Contains(t, string(body), `"last_fetched_at":null`)
}

func TestHandleStatus(t *testing.T) {
	s := NewServer("", &fakeProvider{status: miningStatus()})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got StatusResponse
	require.NoError(t, sonic.Unmarshal(body, &got))
	assert.True(t, got.Running)
	assert.Equal(t, uint64(1001), got.TotalHashes)
	assert.Equal(t, uint64(870123), got.BlockHeight)
	assert.Equal(t, "178.96 EH/s", got.NetworkHash)
	assert.Equal(t, 40, got.TemperatureC)
}

func TestHandleHealth(t *testing.T) {
	s := NewServer("", &fakeProvider{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestReadOnly(t *testing.T) {
	s := NewServer("", &fakeProvider{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/status", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	s := NewServer("", &fakeProvider{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebSocketStream(t *testing.T) {
	provider := &fakeProvider{status: miningStatus()}
	s := NewServer("", provider, WithPushInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var seen []uint64
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, body, err := conn.ReadMessage()
		require.NoError(t, err)

		var got StatusResponse
		require.NoError(t, sonic.Unmarshal(body, &got))
		assert.Equal(t, "25.00T", got.Difficulty)
		seen = append(seen, got.TotalHashes)
	}
	assert.Less(t, seen[0], seen[2], "each push takes a fresh snapshot")
	assert.Equal(t, 1, s.hub.Clients())
}

func TestWebSocket_DisconnectUnregisters(t *testing.T) {
	s := NewServer("", &fakeProvider{status: miningStatus()}, WithPushInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeProvider{status: miningStatus()})
	require.NoError(t, s.Start())
	require.NotNil(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}

func TestServer_StartFailsOnBadAddr(t *testing.T) {
	s := NewServer("256.0.0.1:99999", &fakeProvider{})
	err := s.Start()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrServer))
	assert.Nil(t, s.Addr())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestWebSocket_AfterHubStopsIsClosed(t *testing.T) {
	s := NewServer("", &fakeProvider{status: miningStatus()}, WithPushInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	// The initial snapshot is written before registration.
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if stderrors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server should close the connection")
	}
	assert.Equal(t, 0, s.hub.Clients())
}
