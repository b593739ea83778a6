package model

// Selection strategy names
const (
	BotStrategyRandom = "random"
	BotStrategyFirst  = "first"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyFirst:
		return "First option"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyFirst}
}

// IsValidBotStrategy reports whether name is a known strategy
func IsValidBotStrategy(name string) bool {
	for _, s := range ValidBotStrategies() {
		if s == name {
			return true
		}
	}
	return false
}
