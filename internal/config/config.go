// Package config loads server settings from a YAML file with environment
// overrides.
package config

import (
	"bytes"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/quintrical/internal/model"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "QUINTRICAL_"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var (
	ErrInvalidStorage  = errors.New("storage type must be memory or redis")
	ErrMissingRedisURL = errors.New("redis url is required for redis storage")
	ErrInvalidStrategy = errors.New("unknown bot strategy")
	ErrInvalidPort     = errors.New("port out of range")
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the game store
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	GameTTL      time.Duration `yaml:"game_ttl"`
}

// GameConfig holds defaults for new games
type GameConfig struct {
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Strategy  string        `yaml:"strategy"`
	StepDelay time.Duration `yaml:"step_delay"`
	Catalog   string        `yaml:"catalog"` // Path to a catalog file; empty uses the built-in set
}

// LogConfig controls the server logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: StorageMemory,
			Redis: RedisConfig{
				PoolSize:     10,
				MinIdleConns: 2,
				GameTTL:      6 * time.Hour,
			},
		},
		Game: GameConfig{
			Width:    20,
			Height:   20,
			Strategy: model.BotStrategyRandom,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path (if not empty) over the defaults, then applies
// environment overrides and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.WithMessage(err, "read config")
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses YAML into cfg, keeping values the document does not set.
// Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.WithMessage(err, "parse config")
	}
	return nil
}

// ApplyEnv overrides fields from QUINTRICAL_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	env := envReader{lookup: lookup}

	env.str("HOST", &c.Server.Host)
	env.int("PORT", &c.Server.Port)
	env.str("STORAGE", &c.Storage.Type)
	env.str("REDIS_URL", &c.Storage.Redis.URL)
	env.duration("REDIS_TTL", &c.Storage.Redis.GameTTL)
	env.int("BOARD_WIDTH", &c.Game.Width)
	env.int("BOARD_HEIGHT", &c.Game.Height)
	env.str("STRATEGY", &c.Game.Strategy)
	env.duration("STEP_DELAY", &c.Game.StepDelay)
	env.str("CATALOG", &c.Game.Catalog)
	env.str("LOG_LEVEL", &c.Log.Level)
	env.str("LOG_FORMAT", &c.Log.Format)

	return env.err
}

// Validate checks the settings that cannot be caught later with a clear error
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.WithMessagef(ErrInvalidPort, "port %d", c.Server.Port)
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			return ErrMissingRedisURL
		}
	default:
		return errors.WithMessagef(ErrInvalidStorage, "got %q", c.Storage.Type)
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 ||
		c.Game.Width > model.MaxBoardSize || c.Game.Height > model.MaxBoardSize {
		return errors.WithMessagef(model.ErrInvalidBoardSize, "%dx%d", c.Game.Width, c.Game.Height)
	}
	if !model.IsValidBotStrategy(c.Game.Strategy) {
		return errors.WithMessagef(ErrInvalidStrategy, "got %q", c.Game.Strategy)
	}
	return nil
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	val, ok := e.lookup(EnvPrefix + key)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func (e *envReader) str(key string, dst *string) {
	if val, ok := e.get(key); ok {
		*dst = val
	}
}

func (e *envReader) int(key string, dst *int) {
	val, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		e.err = errors.WithMessage(err, EnvPrefix+key)
		return
	}
	*dst = n
}

func (e *envReader) duration(key string, dst *time.Duration) {
	val, ok := e.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		e.err = errors.WithMessage(err, EnvPrefix+key)
		return
	}
	*dst = d
}
