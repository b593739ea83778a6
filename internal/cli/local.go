package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/model"
)

// localSettings are the engine flags shared by play and simulate
type localSettings struct {
	width       int
	height      int
	strategy    string
	catalogPath string
}

func (s *localSettings) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.width, "width", 20, "Board width")
	cmd.Flags().IntVar(&s.height, "height", 20, "Board height")
	cmd.Flags().StringVar(&s.strategy, "strategy", model.BotStrategyRandom, "Placement strategy: random, first")
	cmd.Flags().StringVar(&s.catalogPath, "catalog", "", "YAML piece catalog (classic set if unset)")
}

func (s *localSettings) validate() error {
	if !model.IsValidBotStrategy(s.strategy) {
		return fmt.Errorf("unknown strategy %q", s.strategy)
	}
	return nil
}

func (s *localSettings) catalog() (*catalog.Catalog, error) {
	if s.catalogPath == "" {
		return catalog.Classic(), nil
	}
	return catalog.LoadFile(s.catalogPath)
}

// localLogger writes engine logs to w, quietly unless verbose
func localLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
