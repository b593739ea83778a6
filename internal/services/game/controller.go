// Package game manages game sessions: creation, inspection and turn flow.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/dependencies/clock"
	"github.com/mcoot/quintrical/internal/dependencies/ids"
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/bot"
	"github.com/mcoot/quintrical/internal/services/legality"
	"github.com/mcoot/quintrical/internal/services/mobility"
	"github.com/mcoot/quintrical/internal/services/turn"
	"github.com/mcoot/quintrical/internal/storage"
)

// EventPublisher receives an event after every committed state change
type EventPublisher interface {
	Publish(event model.Event)
}

// NopPublisher discards events
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(model.Event) {}

// Config holds game defaults
type Config struct {
	Width     int
	Height    int
	Strategy  string
	StepDelay time.Duration // Pause between automatic turns
}

// DefaultConfig returns the classic 20x20 setup with random selection
func DefaultConfig() Config {
	return Config{
		Width:    20,
		Height:   20,
		Strategy: model.BotStrategyRandom,
	}
}

// CreateOptions override the configured board size for a single game
type CreateOptions struct {
	Width  int
	Height int
}

// ControllerInterface is the set of game operations exposed to transports
type ControllerInterface interface {
	CreateGame(ctx context.Context, opts CreateOptions) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]model.GameID, error)
	Anchors(ctx context.Context, id model.GameID) (model.Color, []geometry.Point, error)
	Placements(ctx context.Context, id model.GameID, anchor geometry.Point, pieceID model.PieceID) ([]model.Placement, error)
	Place(ctx context.Context, id model.GameID, anchor geometry.Point, pieceID model.PieceID, option int) (model.TurnResult, error)
	Step(ctx context.Context, id model.GameID) (model.TurnResult, error)
	Autoplay(ctx context.Context, id model.GameID, maxTurns int) ([]model.TurnResult, error)
	Catalog() *catalog.Catalog
}

var _ ControllerInterface = (*Controller)(nil)

// Controller serialises every operation on a game behind a per-game lock,
// loads the game from storage, applies the turn engine and saves it back
type Controller struct {
	storage   storage.Storage
	catalog   *catalog.Catalog
	engine    *turn.Engine
	clock     clock.Clock
	ids       ids.Generator
	publisher EventPublisher
	cfg       Config
	logger    *slog.Logger

	locksMu sync.Mutex
	locks   map[model.GameID]*sync.Mutex
}

// NewController creates a new game Controller
func NewController(
	store storage.Storage,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	idGen ids.Generator,
	publisher EventPublisher,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Controller{
		storage:   store,
		catalog:   cat,
		engine:    turn.New(bot.New(cfg.Strategy, rnd), logger),
		clock:     clk,
		ids:       idGen,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "game-controller")),
		locks:     make(map[model.GameID]*sync.Mutex),
	}
}

// Catalog returns the catalog every game starts from
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// CreateGame starts a new game with every player holding the full catalog
func (c *Controller) CreateGame(ctx context.Context, opts CreateOptions) (*model.Game, error) {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = c.cfg.Width
	}
	if height == 0 {
		height = c.cfg.Height
	}

	now := c.clock.Now()
	game, err := model.NewGame(model.GameID(c.ids.New()), width, height, c.catalog.Pieces(), now)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("pieces", c.catalog.Len()),
	)
	c.publisher.Publish(model.Event{
		Type:      model.EventGameCreated,
		Timestamp: now,
		GameID:    game.ID,
	})

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	unlock := c.lock(id)
	defer unlock()
	return c.storage.GetGame(ctx, id)
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	unlock := c.lock(id)
	defer unlock()

	exists, err := c.storage.GameExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrGameNotFound
	}
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.locksMu.Lock()
	delete(c.locks, id)
	c.locksMu.Unlock()

	c.logger.Info("game deleted", slog.String("game_id", string(id)))
	c.publisher.Publish(model.Event{
		Type:      model.EventGameDeleted,
		Timestamp: c.clock.Now(),
		GameID:    id,
	})
	return nil
}

// ListGames returns the IDs of every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// Anchors returns the current player and the cells they may start from
func (c *Controller) Anchors(ctx context.Context, id model.GameID) (model.Color, []geometry.Point, error) {
	unlock := c.lock(id)
	defer unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return model.ColorNone, nil, err
	}

	player := game.CurrentPlayer()
	if game.IsFinished() || player.IsEliminated() {
		return player.Color, nil, nil
	}
	indices := mobility.ValidAnchors(game.Board, player)
	points := make([]geometry.Point, len(indices))
	for i, idx := range indices {
		points[i] = game.Board.Coords(idx)
	}
	return player.Color, points, nil
}

// Placements lists the current player's legal placements of one piece
// around one anchor. The order is stable, so an index into the result can
// be passed to Place.
func (c *Controller) Placements(ctx context.Context, id model.GameID, anchor geometry.Point, pieceID model.PieceID) ([]model.Placement, error) {
	unlock := c.lock(id)
	defer unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.placements(game, anchor, pieceID)
}

func (c *Controller) placements(game *model.Game, anchor geometry.Point, pieceID model.PieceID) ([]model.Placement, error) {
	if game.IsFinished() {
		return nil, model.ErrGameFinished
	}
	player := game.CurrentPlayer()
	if player.IsEliminated() {
		return nil, model.ErrEliminated
	}
	if !mobility.IsValidAnchor(game.Board, player, anchor) {
		return nil, fmt.Errorf("%w: (%d, %d)", model.ErrInvalidAnchor, anchor.Row, anchor.Col)
	}
	piece, ok := player.FindPiece(pieceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPieceNotOwned, pieceID)
	}
	return legality.CanPlace(game, anchor, piece, player), nil
}

// Place commits option number option of Placements(anchor, pieceID) for
// the current player
func (c *Controller) Place(ctx context.Context, id model.GameID, anchor geometry.Point, pieceID model.PieceID, option int) (model.TurnResult, error) {
	unlock := c.lock(id)
	defer unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return model.TurnResult{}, err
	}

	options, err := c.placements(game, anchor, pieceID)
	if err != nil {
		return model.TurnResult{}, err
	}
	if option < 0 || option >= len(options) {
		return model.TurnResult{}, fmt.Errorf("%w: %d of %d", model.ErrNoSuchOption, option, len(options))
	}

	result, err := c.engine.Commit(game, options[option])
	if err != nil {
		return model.TurnResult{}, err
	}
	if err := c.afterTurn(ctx, game, result); err != nil {
		return model.TurnResult{}, err
	}
	return result, nil
}

// Step plays a single turn with the configured strategy
func (c *Controller) Step(ctx context.Context, id model.GameID) (model.TurnResult, error) {
	unlock := c.lock(id)
	defer unlock()

	return c.step(ctx, id)
}

func (c *Controller) step(ctx context.Context, id model.GameID) (model.TurnResult, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return model.TurnResult{}, err
	}

	result, err := c.engine.PlayTurn(game)
	if err != nil {
		return model.TurnResult{}, err
	}
	if err := c.afterTurn(ctx, game, result); err != nil {
		return model.TurnResult{}, err
	}
	return result, nil
}

// Autoplay plays turns until the game finishes, maxTurns turns have been
// played (when positive), or ctx is done. The game lock is released
// between turns so readers can follow along.
func (c *Controller) Autoplay(ctx context.Context, id model.GameID, maxTurns int) ([]model.TurnResult, error) {
	var results []model.TurnResult
	for maxTurns <= 0 || len(results) < maxTurns {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		unlock := c.lock(id)
		result, err := c.step(ctx, id)
		unlock()
		if err != nil {
			if errors.Is(err, model.ErrGameFinished) && len(results) > 0 {
				break
			}
			return results, err
		}
		results = append(results, result)
		if result.GameOver {
			break
		}

		if c.cfg.StepDelay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-c.clock.After(c.cfg.StepDelay):
			}
		}
	}
	return results, nil
}

// afterTurn persists the game and publishes the turn
func (c *Controller) afterTurn(ctx context.Context, game *model.Game, result model.TurnResult) error {
	now := c.clock.Now()
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.publisher.Publish(model.Event{
		Type:      model.EventTurnPlayed,
		Timestamp: now,
		GameID:    game.ID,
		Payload: model.TurnPlayedPayload{
			Turn:        result,
			Fingerprint: game.Board.Fingerprint(),
		},
	})

	if result.GameOver {
		c.logger.Info("game finished",
			slog.String("game_id", string(game.ID)),
			slog.Int("steps", game.Step),
		)
		c.publisher.Publish(model.Event{
			Type:      model.EventGameFinished,
			Timestamp: now,
			GameID:    game.ID,
			Payload: model.GameFinishedPayload{
				Standings: game.Standings(),
				Leaders:   game.Leaders(),
			},
		})
	}
	return nil
}

// lock acquires the game's mutex and returns its release func
func (c *Controller) lock(id model.GameID) func() {
	c.locksMu.Lock()
	mu, ok := c.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		c.locks[id] = mu
	}
	c.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
