package redis

import (
	"context"
	"errors"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client  *redis.Client
	cfg     Config
	catalog *catalog.Catalog
}

// New creates a new Redis storage instance. Stored pieces are resolved
// against cat, which must be the catalog the games were created with.
func New(cfg Config, cat *catalog.Catalog) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client:  client,
		cfg:     cfg,
		catalog: cat,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, cat *catalog.Catalog) *Storage {
	return &Storage{
		client:  client,
		cfg:     cfg,
		catalog: cat,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(toRecord(game))
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var record gameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return fromRecord(record, s.catalog)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// ListGames returns the IDs of games that have not expired. Index entries
// whose game has expired are pruned along the way.
func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	members, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	var ids []model.GameID
	var stale []any
	for _, m := range members {
		exists, err := s.client.Exists(ctx, gameKey(model.GameID(m))).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			stale = append(stale, m)
			continue
		}
		ids = append(ids, model.GameID(m))
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, gamesIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}
	slices.Sort(ids)
	return ids, nil
}
