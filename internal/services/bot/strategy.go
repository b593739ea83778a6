package bot

import (
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/model"
)

// Strategy decides which of the current player's legal placements to commit
type Strategy interface {
	// Choose returns an index into options. options is never empty.
	Choose(game *model.Game, options []model.Placement) int
}

// New returns the strategy registered under name, falling back to random
// selection for unknown names
func New(name string, rnd random.Random) Strategy {
	switch name {
	case model.BotStrategyFirst:
		return NewFirstStrategy()
	default:
		return NewRandomStrategy(rnd)
	}
}

// FirstStrategy always commits the first enumerated placement, which makes
// playthroughs deterministic without a seeded source
type FirstStrategy struct{}

// NewFirstStrategy creates a new FirstStrategy
func NewFirstStrategy() *FirstStrategy {
	return &FirstStrategy{}
}

// Choose always returns 0
func (s *FirstStrategy) Choose(game *model.Game, options []model.Placement) int {
	return 0
}
