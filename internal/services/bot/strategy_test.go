package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quintrical/internal/dependencies/mocks"
	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/bot"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.RandomStrategy
	options    []model.Placement
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewRandomStrategy(s.mockRandom)
	s.options = make([]model.Placement, 5)
	for i := range s.options {
		s.options[i].Orientation = i
	}
}

func (s *StrategySuite) TestRandomStrategy_UsesQueuedIndex() {
	s.mockRandom.QueueIntn(3, 0, 4)

	s.Equal(3, s.strategy.Choose(&model.Game{}, s.options))
	s.Equal(0, s.strategy.Choose(&model.Game{}, s.options))
	s.Equal(4, s.strategy.Choose(&model.Game{}, s.options))
	s.Equal([]int{5, 5, 5}, s.mockRandom.IntnCalls())
}

func (s *StrategySuite) TestRandomStrategy_OutOfRangeFallsBackToFirst() {
	s.mockRandom.QueueIntn(99, -1)

	s.Equal(0, s.strategy.Choose(&model.Game{}, s.options))
	s.Equal(0, s.strategy.Choose(&model.Game{}, s.options))
}

func (s *StrategySuite) TestRandomStrategy_SeededIsReproducible() {
	a := bot.NewRandomStrategy(random.NewSeeded(5))
	b := bot.NewRandomStrategy(random.NewSeeded(5))

	for range 20 {
		s.Equal(a.Choose(&model.Game{}, s.options), b.Choose(&model.Game{}, s.options))
	}
}

func (s *StrategySuite) TestFirstStrategy() {
	s.Equal(0, bot.NewFirstStrategy().Choose(&model.Game{}, s.options))
}

func (s *StrategySuite) TestNew() {
	s.IsType(&bot.FirstStrategy{}, bot.New(model.BotStrategyFirst, s.mockRandom))
	s.IsType(&bot.RandomStrategy{}, bot.New(model.BotStrategyRandom, s.mockRandom))
	s.IsType(&bot.RandomStrategy{}, bot.New("unknown", s.mockRandom))
}
