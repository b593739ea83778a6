// Package turn drives a game forward one turn at a time.
package turn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/bot"
	"github.com/mcoot/quintrical/internal/services/legality"
	"github.com/mcoot/quintrical/internal/services/mobility"
)

// Engine applies turns to a game. It holds no game state of its own, so a
// single Engine can serve any number of games as long as each game is only
// touched by one caller at a time.
type Engine struct {
	strategy bot.Strategy
	logger   *slog.Logger
}

// New creates a new turn Engine
func New(strategy bot.Strategy, logger *slog.Logger) *Engine {
	return &Engine{
		strategy: strategy,
		logger:   logger.With(slog.String("component", "turn-engine")),
	}
}

// NextPlayer returns the seat that moves after current
func NextPlayer(current, players int) int {
	if players <= 0 {
		return 0
	}
	return (current + 1) % players
}

// PlayTurn plays the current player's turn using the engine's strategy:
// an already eliminated player is skipped, a player without options is
// eliminated, otherwise one option is committed.
func (e *Engine) PlayTurn(game *model.Game) (model.TurnResult, error) {
	if game.IsFinished() {
		return model.TurnResult{}, model.ErrGameFinished
	}

	e.beginTurn(game)
	player := game.CurrentPlayer()
	result := model.TurnResult{Step: game.Step, Player: player.Color}

	switch {
	case player.IsEliminated():
		result.Outcome = model.OutcomeSkipped

	default:
		options := legality.Options(game, player)
		player.Possibilities = len(options)
		result.Possibilities = len(options)

		if len(options) == 0 {
			player.Eliminate()
			result.Outcome = model.OutcomeEliminated
			result.Residual = player.Residual
			e.logger.Info("player eliminated",
				slog.String("game_id", string(game.ID)),
				slog.String("color", string(player.Color)),
				slog.Int("residual", player.Residual),
			)
			break
		}

		chosen := options[e.strategy.Choose(game, options)]
		e.commit(game, player, chosen)
		result.Outcome = model.OutcomePlaced
		result.Placement = &chosen
	}

	e.endTurn(game, &result)
	return result, nil
}

// Commit places an externally chosen placement for the current player. The
// placement must have been produced for the current board: its anchor has
// to be one of the player's valid anchors, the shape must be an orientation
// of the piece, and it must still be legal.
func (e *Engine) Commit(game *model.Game, placement model.Placement) (model.TurnResult, error) {
	if game.IsFinished() {
		return model.TurnResult{}, model.ErrGameFinished
	}

	player := game.CurrentPlayer()
	if player.IsEliminated() {
		return model.TurnResult{}, model.ErrEliminated
	}
	if placement.Piece == nil || !player.HasPiece(placement.Piece) {
		return model.TurnResult{}, model.ErrPieceNotOwned
	}
	if !mobility.IsValidAnchor(game.Board, player, placement.Anchor) {
		return model.TurnResult{}, fmt.Errorf("%w: (%d, %d)", model.ErrInvalidAnchor, placement.Anchor.Row, placement.Anchor.Col)
	}
	if !placement.Shape.Contains(placement.Anchor) ||
		!placement.Piece.Matches(placement.Shape) ||
		!legality.IsLegal(game.Board, player.Color, placement.Shape) {
		return model.TurnResult{}, model.ErrIllegalMove
	}

	e.beginTurn(game)
	possibilities := len(legality.Options(game, player))
	player.Possibilities = possibilities

	e.commit(game, player, placement)
	result := model.TurnResult{
		Step:          game.Step,
		Player:        player.Color,
		Outcome:       model.OutcomePlaced,
		Placement:     &placement,
		Possibilities: possibilities,
	}
	e.endTurn(game, &result)
	return result, nil
}

// Autoplay plays turns until the game finishes or ctx is done. fn, when not
// nil, is called after every turn; returning an error stops play.
func (e *Engine) Autoplay(ctx context.Context, game *model.Game, fn func(model.TurnResult) error) error {
	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := e.PlayTurn(game)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(result); err != nil {
				return err
			}
		}
	}
	return nil
}

// beginTurn resets the round counter when play returns to the first seat
func (e *Engine) beginTurn(game *model.Game) {
	if game.Current == 0 {
		game.InGame = 0
	}
}

func (e *Engine) commit(game *model.Game, player *model.Player, placement model.Placement) {
	game.Board.Place(player.Color, placement.Shape)
	player.RemovePiece(placement.Piece)
	player.Placed++
	game.InGame++

	e.logger.Debug("piece placed",
		slog.String("game_id", string(game.ID)),
		slog.String("color", string(player.Color)),
		slog.String("piece", string(placement.Piece.ID)),
		slog.Int("possibilities", player.Possibilities),
	)
}

// endTurn decides whether the game is over and hands the turn on. Play stops
// when a full round ends without any placement, when nobody is left, or
// when the step ceiling is reached.
func (e *Engine) endTurn(game *model.Game, result *model.TurnResult) {
	last := game.Current == len(game.Players)-1

	game.Step++
	game.Current = NextPlayer(game.Current, len(game.Players))

	if (last && game.InGame == 0) || game.ActivePlayers() == 0 || game.Step >= game.StepLimit {
		game.State = model.GameStateFinished
		result.GameOver = true
		e.logger.Info("game finished",
			slog.String("game_id", string(game.ID)),
			slog.Int("steps", game.Step),
		)
	}
}
