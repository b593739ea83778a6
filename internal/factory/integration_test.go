package factory

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quintrical/internal/config"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/game"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(game.Config{Width: 8, Height: 8, Strategy: model.BotStrategyFirst})
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

// Test: a followed game streams every turn and the final standings
func (s *IntegrationSuite) TestAutoplayIsStreamedToFollowers() {
	s.app.MockIDs.Queue("game-1", "client-1")

	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateOptions{})
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), g.ID)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.app.HubManager.ServeSSE(w, r, s.app.HubManager.GetOrCreateHub(g.ID))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	s.Require().NoError(err)
	defer resp.Body.Close()
	scanner := bufio.NewScanner(resp.Body)

	// Wait for the subscription before playing
	s.Require().True(scanner.Scan())
	s.Equal("event: connected", scanner.Text())

	results, err := s.app.GameController.Autoplay(s.ctx, g.ID, 0)
	s.Require().NoError(err)
	s.Require().NotEmpty(results)

	var events []string
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "event: ") {
			continue
		}
		event := strings.TrimPrefix(line, "event: ")
		events = append(events, event)
		if event == string(model.EventGameFinished) {
			break
		}
	}

	s.Len(events, len(results)+1)
	for _, e := range events[:len(results)] {
		s.Equal(string(model.EventTurnPlayed), e)
	}

	stored, err := s.app.GameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(stored.IsFinished())
	for _, p := range stored.Players {
		s.True(p.IsEliminated())
		s.Equal(p.RemainingCells(), p.Residual)
	}
}

// Test: the first strategy always opens with the first catalog piece
func (s *IntegrationSuite) TestFirstStrategyOpening() {
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateOptions{})
	s.Require().NoError(err)

	for _, color := range model.Colors() {
		result, err := s.app.GameController.Step(s.ctx, g.ID)
		s.Require().NoError(err)
		s.Equal(color, result.Player)
		s.Equal(model.OutcomePlaced, result.Outcome)
		s.Equal(s.app.Catalog.Pieces()[0].ID, result.Placement.Piece.ID)
	}
	s.Empty(s.app.MockRandom.IntnCalls())
}

// Test: production wiring against Redis survives a full game
func (s *IntegrationSuite) TestRedisBackedApp() {
	mini := miniredis.RunT(s.T())

	settings := config.Default()
	settings.Storage.Type = config.StorageRedis
	settings.Storage.Redis.URL = "redis://" + mini.Addr()
	settings.Game.Width = 7
	settings.Game.Height = 7
	s.Require().NoError(settings.Validate())

	app, err := New(FromSettings(settings, nil))
	s.Require().NoError(err)
	defer func() { s.NoError(app.Close()) }()
	s.Equal(StorageTypeRedis, app.StorageType)

	g, err := app.GameController.CreateGame(s.ctx, game.CreateOptions{})
	s.Require().NoError(err)
	s.Equal(7, g.Board.Width)

	_, err = app.GameController.Autoplay(s.ctx, g.ID, 0)
	s.Require().NoError(err)

	stored, err := app.GameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(stored.IsFinished())

	ids, err := app.GameController.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{g.ID}, ids)
}

func (s *IntegrationSuite) TestNewRejectsBadConfig() {
	_, err := New(Config{StorageType: "disk"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{CatalogPath: "does-not-exist.yaml"})
	s.Error(err)
}
