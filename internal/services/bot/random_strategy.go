package bot

import (
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/model"
)

// RandomStrategy picks uniformly among the legal placements
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// Choose returns a random index into options
func (s *RandomStrategy) Choose(game *model.Game, options []model.Placement) int {
	idx := s.random.Intn(len(options))
	if idx < 0 || idx >= len(options) {
		return 0
	}
	return idx
}
