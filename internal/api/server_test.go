package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/planetgame/internal/api"
	"github.com/mcoot/planetgame/internal/testutil"
)

func TestServerListensOnFreePort(t *testing.T) {
	ts := newTestServer(t)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())
	require.NoError(t, server.Listen())
	assert.False(t, strings.HasSuffix(server.Addr(), ":0"))

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	resp, err := http.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	require.NoError(t, <-errCh)
}

func TestServerShutdownClosesEventStreams(t *testing.T) {
	ts := newTestServer(t)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())
	server.OnShutdown(ts.app.Hub.Close)
	require.NoError(t, server.Listen())
	go func() { _ = server.Start() }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+server.Addr()+"/api/v1/events", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return ts.app.Hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, server.Shutdown(context.Background()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
