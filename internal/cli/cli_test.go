package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quintrical/internal/api"
	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/factory"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/game"
	"github.com/mcoot/quintrical/internal/services/simulation"
	"github.com/mcoot/quintrical/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *factory.TestApp) {
	t.Helper()

	app := factory.NewTestApp(game.Config{Width: 8, Height: 8, Strategy: model.BotStrategyFirst})
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Hubs:           app.HubManager,
		StorageType:    app.StorageType,
	})
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		_ = app.Close()
		server.Close()
	})
	return server, app
}

// run executes the CLI with args and returns what it printed
func run(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--server", serverURL}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGameCommands(t *testing.T) {
	server, _ := newTestServer(t)

	out, err := run(t, server.URL, "game", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No games")

	out, err = run(t, server.URL, "game", "create", "--width", "8", "--height", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Game: id-1")
	assert.Contains(t, out, "State: in_progress")
	assert.Contains(t, out, "To move: red")
	assert.Contains(t, out, "   +--------+")

	out, err = run(t, server.URL, "game", "anchors", "id-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Player: red")
	assert.Contains(t, out, "Anchors (1): (0,0)")

	out, err = run(t, server.URL, "game", "options", "id-1", "0", "0", "i2")
	require.NoError(t, err)
	assert.Contains(t, out, "[0] I2")
	assert.Contains(t, out, "[1] I2")

	out, err = run(t, server.URL, "game", "place", "id-1", "0", "0", "I2", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "red placed I2 at (0,0)")

	out, err = run(t, server.URL, "-o", "json", "game", "get", "id-1")
	require.NoError(t, err)
	var state response.GameState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, 1, state.Step)
	assert.Equal(t, "green", state.CurrentPlayer)

	out, err = run(t, server.URL, "game", "autoplay", "id-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Game over")
	assert.Contains(t, out, "State: finished")
	assert.Contains(t, out, "Leaders: ")

	_, err = run(t, server.URL, "game", "step", "id-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GAME_FINISHED")

	out, err = run(t, server.URL, "game", "delete", "id-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted game id-1")

	_, err = run(t, server.URL, "game", "get", "id-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GAME_NOT_FOUND")
}

func TestGameCommandArgumentValidation(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad row", []string{"game", "options", "g", "x", "0", "I1"}},
		{"bad col", []string{"game", "place", "g", "0", "y", "I1", "0"}},
		{"negative option", []string{"game", "place", "g", "0", "0", "I1", "-1"}},
		{"negative max turns", []string{"game", "autoplay", "g", "--max-turns", "-2"}},
		{"missing id", []string{"game", "get"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, server.URL, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestHealthCommand(t *testing.T) {
	server, _ := newTestServer(t)

	out, err := run(t, server.URL, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "Storage: memory")
}

func TestWatchStreamsUntilDeleted(t *testing.T) {
	server, app := newTestServer(t)

	_, err := app.GameController.CreateGame(context.Background(), game.CreateOptions{})
	require.NoError(t, err)

	cfg = DefaultConfig()
	cfg.ServerURL = server.URL

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- streamEvents(context.Background(), &out, "id-1", false)
	}()

	require.Eventually(t, func() bool {
		hub := app.HubManager.GetHub("id-1")
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = app.GameController.Step(context.Background(), "id-1")
	require.NoError(t, err)
	require.NoError(t, app.GameController.DeleteGame(context.Background(), "id-1"))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not end after the game was deleted")
	}

	text := out.String()
	assert.Contains(t, text, "Watching game id-1")
	assert.Contains(t, text, "connected: ")
	assert.Contains(t, text, "turn_played: ")
	assert.Contains(t, text, "game_deleted: ")
	assert.Contains(t, text, "Disconnected")
}

func TestPlayIsReproducible(t *testing.T) {
	args := []string{"play", "--seed", "7", "--width", "8", "--height", "8", "-q"}

	first, err := run(t, "http://unused", args...)
	require.NoError(t, err)
	second, err := run(t, "http://unused", args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Seed: 7")
	assert.Contains(t, first, "Strategy: Random")
	assert.Contains(t, first, "State: finished")
	assert.NotContains(t, first, "Step 0:")
}

func TestPlayPrintsEveryTurn(t *testing.T) {
	out, err := run(t, "http://unused", "play", "--seed", "3", "--width", "8", "--height", "8", "--strategy", "first")
	require.NoError(t, err)

	assert.Contains(t, out, "Strategy: First option")
	assert.Contains(t, out, "Step 0: red placed I1 at (0,0)")
	assert.Contains(t, out, "Step 1: green placed I1 at (7,0)")
	assert.Contains(t, out, "Game over")
}

func TestPlayRejectsUnknownStrategy(t *testing.T) {
	_, err := run(t, "http://unused", "play", "--strategy", "greedy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestSimulateReportsEveryGame(t *testing.T) {
	out, err := run(t, "http://unused", "-o", "json", "simulate",
		"-n", "4", "-p", "2", "--seed", "11", "--width", "8", "--height", "8")
	require.NoError(t, err)

	var report simulation.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Games, 4)
	assert.Len(t, report.Colors, 4)
	for i, g := range report.Games {
		assert.Equal(t, uint64(11+i), g.Seed)
		assert.NotEmpty(t, g.Leaders)
	}

	_, err = run(t, "http://unused", "simulate", "-n", "0")
	assert.Error(t, err)
}

func TestPiecesCommand(t *testing.T) {
	out, err := run(t, "http://unused", "pieces")
	require.NoError(t, err)
	assert.Contains(t, out, "21 pieces, 89 cells")
	assert.Contains(t, out, "I1 ")

	_, err = run(t, "http://unused", "pieces", "--catalog", "/does/not/exist.yaml")
	assert.Error(t, err)
}
