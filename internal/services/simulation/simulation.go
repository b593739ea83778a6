// Package simulation plays complete games locally without storage, one
// engine per game, for the CLI and for batch statistics.
package simulation

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/bot"
	"github.com/mcoot/quintrical/internal/services/turn"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Options configure a batch of games
type Options struct {
	Games    int
	Parallel int    // Concurrent games; zero means one per game
	Seed     uint64 // Game i is seeded with Seed+i
	Width    int
	Height   int
	Strategy string
	Catalog  *catalog.Catalog
}

// GameResult summarizes one finished game
type GameResult struct {
	ID        model.GameID
	Seed      uint64
	Steps     int
	Standings []model.Standing
	Leaders   []model.Color
}

// ColorStats aggregates one seat over every game in a batch
type ColorStats struct {
	Color          model.Color
	Wins           int // Games where the color was among the leaders
	Perfect        int // Games where every piece was placed
	MeanRemaining  float64
	BestRemaining  int
	WorstRemaining int
}

// Report is the outcome of a batch
type Report struct {
	Strategy string
	Games    []GameResult
	Colors   []ColorStats
	Duration time.Duration
}

// Play runs one seeded game to completion, calling onTurn after every turn
// when it is not nil
func Play(ctx context.Context, seed uint64, opts Options, logger *slog.Logger, onTurn func(*model.Game, model.TurnResult) error) (*model.Game, error) {
	rnd := random.NewSeeded(seed)
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Classic()
	}

	id := model.GameID("sim-" + rnd.String(6, idAlphabet))
	game, err := model.NewGame(id, opts.Width, opts.Height, cat.Pieces(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	engine := turn.New(bot.New(opts.Strategy, rnd), logger)
	err = engine.Autoplay(ctx, game, func(result model.TurnResult) error {
		if onTurn == nil {
			return nil
		}
		return onTurn(game, result)
	})
	return game, err
}

// Run plays opts.Games independent games concurrently. Each game owns its
// board and random source, so the report is the same for a given seed
// regardless of scheduling.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Report, error) {
	logger = logger.With(slog.String("component", "simulation"))
	start := time.Now()

	results := make([]GameResult, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}

	for i := range opts.Games {
		seed := opts.Seed + uint64(i)
		g.Go(func() error {
			game, err := Play(ctx, seed, opts, logger, nil)
			if err != nil {
				return err
			}
			results[i] = GameResult{
				ID:        game.ID,
				Seed:      seed,
				Steps:     game.Step,
				Standings: game.Standings(),
				Leaders:   game.Leaders(),
			}
			logger.Debug("simulated game finished",
				slog.String("game_id", string(game.ID)),
				slog.Uint64("seed", seed),
				slog.Int("steps", game.Step),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		Strategy: opts.Strategy,
		Games:    results,
		Colors:   aggregate(results),
		Duration: time.Since(start),
	}
	logger.Info("simulation complete",
		slog.Int("games", opts.Games),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

func aggregate(results []GameResult) []ColorStats {
	stats := make(map[model.Color]*ColorStats)
	for _, c := range model.Colors() {
		stats[c] = &ColorStats{Color: c, BestRemaining: -1}
	}

	for _, r := range results {
		for _, s := range r.Standings {
			cs := stats[s.Color]
			cs.MeanRemaining += float64(s.RemainingCells)
			if cs.BestRemaining < 0 || s.RemainingCells < cs.BestRemaining {
				cs.BestRemaining = s.RemainingCells
			}
			cs.WorstRemaining = max(cs.WorstRemaining, s.RemainingCells)
			if s.RemainingCells == 0 {
				cs.Perfect++
			}
		}
		for _, c := range r.Leaders {
			stats[c].Wins++
		}
	}

	result := make([]ColorStats, 0, len(stats))
	for _, c := range model.Colors() {
		cs := stats[c]
		if len(results) > 0 {
			cs.MeanRemaining /= float64(len(results))
		} else {
			cs.BestRemaining = 0
		}
		result = append(result, *cs)
	}
	slices.SortStableFunc(result, func(a, b ColorStats) int {
		return cmp.Compare(a.MeanRemaining, b.MeanRemaining)
	})
	return result
}
