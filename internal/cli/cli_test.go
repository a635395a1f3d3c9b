package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/planetgame/internal/api"
	"github.com/mcoot/planetgame/internal/factory"
	"github.com/mcoot/planetgame/internal/testutil"
)

type cliHarness struct {
	server *httptest.Server
	app    *factory.TestApp
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	for _, key := range []string{"PLANETGAME_SERVER", "PLANETGAME_TOKEN", "PLANETGAME_TOKEN_FILE", "PLANETGAME_USERNAME", "PLANETGAME_PASSWORD"} {
		t.Setenv(key, "")
	}

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		IdentityService: app.IdentityService,
		Session:         app.Session,
		LobbyController: app.LobbyController,
		FleetEngine:     app.FleetEngine,
		Hub:             app.Hub,
		Broadcaster:     app.Broadcaster,
	})
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = app.Close()
	})

	return &cliHarness{server: server, app: app}
}

// run executes the CLI in-process with its own token file
func (h *cliHarness) run(tokenFile string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--server", h.server.URL, "--token-file", tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSessionSavesToken(t *testing.T) {
	h := newCLIHarness(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	out, err := h.run(tokenFile, "session", "alice", "--password", "a-hash")
	require.NoError(t, err)
	assert.Contains(t, out, "Player: alice")

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Len(t, string(data), 32)

	out, err = h.run(tokenFile, "join")
	require.NoError(t, err)
	assert.Contains(t, out, "Joined")
	assert.Contains(t, out, "alice")

	out, err = h.run(tokenFile, "join")
	require.NoError(t, err)
	assert.Contains(t, out, "Already joined")
}

func TestJoinWithCredentialsSavesToken(t *testing.T) {
	h := newCLIHarness(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	_, err := h.run(tokenFile, "-u", "alice", "-p", "a-hash", "join")
	require.NoError(t, err)

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	out, err := h.run(tokenFile, "ready")
	require.NoError(t, err)
	assert.Contains(t, out, "ready")
}

func TestFullGameFlow(t *testing.T) {
	h := newCLIHarness(t)
	h.app.QueueCoordinates([2]int{0, 0}, [2]int{3, 4})

	dir := t.TempDir()
	alice := filepath.Join(dir, "alice")
	bob := filepath.Join(dir, "bob")

	_, err := h.run(alice, "-u", "alice", "-p", "a", "join")
	require.NoError(t, err)
	_, err = h.run(bob, "-u", "bob", "-p", "b", "join")
	require.NoError(t, err)

	out, err := h.run(alice, "players")
	require.NoError(t, err)
	assert.Contains(t, out, "Players (2):")

	out, err = h.run(alice, "ready")
	require.NoError(t, err)
	assert.NotContains(t, out, "Game started")

	out, err = h.run(bob, "ready")
	require.NoError(t, err)
	assert.Contains(t, out, "Game started")

	out, err = h.run(alice, "-o", "json", "planets")
	require.NoError(t, err)
	var planets PlanetsResult
	require.NoError(t, json.Unmarshal([]byte(out), &planets))
	require.Len(t, planets.Planets, 26)
	require.NotNil(t, planets.Planets[0].Owner)
	assert.Equal(t, "alice", *planets.Planets[0].Owner)

	out, err = h.run(alice, "deploy", "A", "B", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "A -> B  4 ships  arrives turn 3")
	assert.Contains(t, out, "Remaining ships: 6")

	_, err = h.run(alice, "deploy", "B", "A", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_OWNER")

	out, err = h.run(alice, "deployments")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployments (1):")

	out, err = h.run(bob, "deployments")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployments (0):")

	out, err = h.run(bob, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State: STARTED")
	assert.Contains(t, out, "Players: 2/6")
}

func TestDeployArrivalTurnFlag(t *testing.T) {
	h := newCLIHarness(t)
	h.app.QueueCoordinates([2]int{0, 0}, [2]int{3, 4})

	dir := t.TempDir()
	alice := filepath.Join(dir, "alice")
	bob := filepath.Join(dir, "bob")
	for _, run := range [][]string{
		{alice, "-u", "alice", "join"},
		{bob, "-u", "bob", "join"},
		{alice, "ready"},
		{bob, "ready"},
	} {
		_, err := h.run(run[0], run[1:]...)
		require.NoError(t, err)
	}

	out, err := h.run(alice, "-o", "json", "deploy", "A", "B", "2", "--arrival-turn", "7")
	require.NoError(t, err)
	var result DeployResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Deployment)
	assert.Equal(t, 7, result.Deployment.ArrivalTurn)

	_, err = h.run(alice, "deploy", "A", "B", "lots")
	assert.ErrorContains(t, err, "invalid ship count")
}

func TestReadyWithoutCredentials(t *testing.T) {
	h := newCLIHarness(t)

	_, err := h.run(filepath.Join(t.TempDir(), "token"), "ready")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}

func TestHealth(t *testing.T) {
	h := newCLIHarness(t)

	out, err := h.run(filepath.Join(t.TempDir(), "token"), "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
}

func TestEventsStream(t *testing.T) {
	h := newCLIHarness(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := h.run(tokenFile, "events", "--count", "1", "--json")
		done <- result{out, err}
	}()

	require.Eventually(t, func() bool { return h.app.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/join", nil)
	require.NoError(t, err)
	req.SetBasicAuth("alice", "a")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		var event StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(r.out)), &event))
		assert.Equal(t, "player_joined", event.Type)
		assert.Equal(t, "alice", event.Player)
	case <-time.After(3 * time.Second):
		t.Fatal("events command did not finish")
	}
}

func TestEventsURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/api/v1/events", eventsURL("http://localhost:8080/"))
	assert.Equal(t, "wss://game.example/api/v1/events", eventsURL("https://game.example"))
}
