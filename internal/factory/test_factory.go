package factory

import (
	"time"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/dependencies/mocks"
	"github.com/mcoot/quintrical/internal/services/game"
	"github.com/mcoot/quintrical/internal/storage/memory"
	"github.com/mcoot/quintrical/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockIDs    *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(cfg game.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, catalog.Classic(), mockClock, mockRandom, mockIDs, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockIDs:    mockIDs,
	}
}
