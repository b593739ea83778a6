package storage

import (
	"context"

	"github.com/mcoot/quintrical/internal/model"
)

// Storage holds in-progress and finished game sessions
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
}
