package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/testutil"
)

type SimulationSuite struct {
	suite.Suite
	ctx  context.Context
	opts Options
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationSuite))
}

func (s *SimulationSuite) SetupTest() {
	s.ctx = context.Background()
	s.opts = Options{
		Games:    6,
		Parallel: 3,
		Seed:     42,
		Width:    10,
		Height:   10,
		Strategy: model.BotStrategyRandom,
	}
}

func (s *SimulationSuite) TestPlayFinishesGame() {
	var turns []model.TurnResult
	game, err := Play(s.ctx, 7, s.opts, testutil.NopLogger(), func(_ *model.Game, r model.TurnResult) error {
		turns = append(turns, r)
		return nil
	})
	s.Require().NoError(err)

	s.True(game.IsFinished())
	s.Len(turns, game.Step)
	s.True(turns[len(turns)-1].GameOver)
	for _, p := range game.Players {
		s.True(p.IsEliminated())
		s.Equal(p.RemainingCells(), p.Residual)
	}
}

func (s *SimulationSuite) TestPlayIsReproducible() {
	first, err := Play(s.ctx, 99, s.opts, testutil.NopLogger(), nil)
	s.Require().NoError(err)
	second, err := Play(s.ctx, 99, s.opts, testutil.NopLogger(), nil)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(first.Step, second.Step)
	s.Equal(first.Board.Fingerprint(), second.Board.Fingerprint())
	s.Equal(first.Standings(), second.Standings())
}

func (s *SimulationSuite) TestPlayRejectsBadBoard() {
	s.opts.Width = 0
	_, err := Play(s.ctx, 1, s.opts, testutil.NopLogger(), nil)
	s.ErrorIs(err, model.ErrInvalidBoardSize)
}

func (s *SimulationSuite) TestRunMatchesSequentialPlay() {
	report, err := Run(s.ctx, s.opts, testutil.NopLogger())
	s.Require().NoError(err)
	s.Require().Len(report.Games, s.opts.Games)
	s.Equal(s.opts.Strategy, report.Strategy)

	for i, r := range report.Games {
		s.Equal(s.opts.Seed+uint64(i), r.Seed)

		game, err := Play(s.ctx, r.Seed, s.opts, testutil.NopLogger(), nil)
		s.Require().NoError(err)
		s.Equal(game.Step, r.Steps)
		s.Equal(game.Standings(), r.Standings)
	}

	s.Len(report.Colors, 4)
	wins := 0
	for _, c := range report.Colors {
		wins += c.Wins
		s.LessOrEqual(c.BestRemaining, c.WorstRemaining)
		s.GreaterOrEqual(c.MeanRemaining, float64(c.BestRemaining))
		s.LessOrEqual(c.MeanRemaining, float64(c.WorstRemaining))
	}
	s.GreaterOrEqual(wins, s.opts.Games)

	for i := 1; i < len(report.Colors); i++ {
		s.LessOrEqual(report.Colors[i-1].MeanRemaining, report.Colors[i].MeanRemaining)
	}
}

func (s *SimulationSuite) TestRunStopsOnCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := Run(ctx, s.opts, testutil.NopLogger())
	s.ErrorIs(err, context.Canceled)
}

func (s *SimulationSuite) TestAggregateEmpty() {
	stats := aggregate(nil)
	s.Len(stats, 4)
	for _, c := range stats {
		s.Zero(c.Wins)
		s.Zero(c.BestRemaining)
	}
}
