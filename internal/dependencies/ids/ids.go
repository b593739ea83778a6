package ids

import "github.com/google/uuid"

// Generator produces unique identifiers for games and stream clients
type Generator interface {
	New() string
}

// UUIDGenerator returns random (version 4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// New returns a fresh UUID string
func (g *UUIDGenerator) New() string {
	return uuid.NewString()
}
