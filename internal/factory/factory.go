package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/config"
	"github.com/mcoot/quintrical/internal/dependencies/clock"
	"github.com/mcoot/quintrical/internal/dependencies/ids"
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/services/game"
	"github.com/mcoot/quintrical/internal/storage"
	"github.com/mcoot/quintrical/internal/storage/memory"
	redisstorage "github.com/mcoot/quintrical/internal/storage/redis"
	"github.com/mcoot/quintrical/internal/stream"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	Catalog        *catalog.Catalog
	GameController *game.Controller
	HubManager     *stream.HubManager
	Publisher      *stream.Publisher

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// CatalogPath loads pieces from a YAML file; empty uses the built-in set
	CatalogPath string
	// Game holds defaults for new games; zero value uses game.DefaultConfig()
	Game game.Config
}

// FromSettings converts loaded server settings into a factory Config
func FromSettings(settings config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: settings.Storage.Type,
		CatalogPath: settings.Game.Catalog,
		Game: game.Config{
			Width:     settings.Game.Width,
			Height:    settings.Game.Height,
			Strategy:  settings.Game.Strategy,
			StepDelay: settings.Game.StepDelay,
		},
	}
	if settings.Storage.Type == StorageTypeRedis {
		cfg.RedisConfig = &redisstorage.Config{
			URL:          settings.Storage.Redis.URL,
			PoolSize:     settings.Storage.Redis.PoolSize,
			MinIdleConns: settings.Storage.Redis.MinIdleConns,
			GameTTL:      settings.Storage.Redis.GameTTL,
		}
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	cat := catalog.Classic()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	// Create storage based on type
	var store storage.Storage
	var closers []io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, cat)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	gameCfg := cfg.Game
	if gameCfg.Width == 0 && gameCfg.Height == 0 && gameCfg.Strategy == "" {
		gameCfg = game.DefaultConfig()
	}

	app := newWithDependencies(store, cat, clock.New(), random.New(), ids.New(), gameCfg, logger)
	app.StorageType = storageType
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	idGen ids.Generator,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	hubManager := stream.NewHubManager(idGen, logger)
	publisher := stream.NewPublisher(hubManager, logger)
	gameController := game.NewController(store, cat, clk, rnd, idGen, publisher, gameCfg, logger)

	return &App{
		Storage:        store,
		StorageType:    StorageTypeMemory,
		Clock:          clk,
		Random:         rnd,
		IDs:            idGen,
		Catalog:        cat,
		GameController: gameController,
		HubManager:     hubManager,
		Publisher:      publisher,
	}
}

// Close disconnects every stream and releases the storage backend
func (a *App) Close() error {
	a.HubManager.Close()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
