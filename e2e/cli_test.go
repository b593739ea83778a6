package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quintrical/internal/api"
	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/factory"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/game"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "quintrical-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/quintrical")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{
		Logger: logger,
		Game:   game.Config{Width: 10, Height: 10, Strategy: model.BotStrategyFirst},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Hubs:           app.HubManager,
		StorageType:    app.StorageType,
	})

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	server := api.NewServer(router, cfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			_ = app.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp response.Health
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "memory", resp.Storage)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "create")
	require.NoError(t, err, "output: %s", output)

	var state response.GameState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "in_progress", state.State)
	assert.Equal(t, 10, state.Board.Width)
	assert.Len(t, state.Players, 4)
	gameID := state.ID

	// Every player opens by hand with the monomino in their own corner
	for turn, color := range []string{"red", "green", "yellow", "blue"} {
		output, err = cli.run("game", "anchors", gameID)
		require.NoError(t, err, "output: %s", output)

		var anchors response.Anchors
		require.NoError(t, json.Unmarshal([]byte(output), &anchors))
		require.Equal(t, color, anchors.Player)
		require.Len(t, anchors.Anchors, 1)
		row := strconv.Itoa(anchors.Anchors[0].Row)
		col := strconv.Itoa(anchors.Anchors[0].Col)

		output, err = cli.run("game", "options", gameID, row, col, "I1")
		require.NoError(t, err, "output: %s", output)

		var options []response.Placement
		require.NoError(t, json.Unmarshal([]byte(output), &options))
		require.Len(t, options, 1)

		output, err = cli.run("game", "place", gameID, row, col, "I1", "0")
		require.NoError(t, err, "turn %d place: %s", turn, output)

		var placed response.TurnResponse
		require.NoError(t, json.Unmarshal([]byte(output), &placed))
		assert.Equal(t, turn, placed.Turn.Step)
		assert.Equal(t, color, placed.Turn.Player)
		assert.Equal(t, "placed", placed.Turn.Outcome)
		t.Logf("Turn %d: %s placed I1 at (%s, %s)", turn, color, row, col)
	}

	// One strategy turn, then the rest automatically
	output, err = cli.run("game", "step", gameID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "autoplay", gameID)
	require.NoError(t, err, "output: %s", output)

	var auto response.AutoplayResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auto))
	require.NotEmpty(t, auto.Turns)
	assert.True(t, auto.Turns[len(auto.Turns)-1].GameOver)
	assert.Equal(t, "finished", auto.Game.State)
	assert.NotEmpty(t, auto.Game.Leaders)
	t.Logf("Game complete after %d steps, leaders: %v", auto.Game.Step, auto.Game.Leaders)

	// Finished games reject further turns
	output, err = cli.run("game", "step", gameID)
	assert.Error(t, err)
	assert.Contains(t, output, "GAME_FINISHED")

	output, err = cli.run("game", "delete", gameID)
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("game", "get", gameID)
	assert.Error(t, err, "should not find game after delete")
}

func TestCLI_LocalPlay(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("play", "--seed", "42", "--width", "10", "--height", "10")
	require.NoError(t, err, "output: %s", output)

	var state response.GameState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "finished", state.State)
	assert.LessOrEqual(t, state.Step, state.StepLimit)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "get", "missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	output, err = cli.run("game", "create", "--width", "-3")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_BOARD_SIZE")
}
