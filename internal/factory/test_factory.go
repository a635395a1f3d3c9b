package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/planetgame/internal/dependencies/mocks"
	"github.com/mcoot/planetgame/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(Config{})
}

// NewTestAppWithConfig creates a test App with engine settings from cfg.
// Storage settings are ignored; identities are kept in memory.
func NewTestAppWithConfig(cfg Config) *TestApp {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, cfg)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueCoordinates queues home planet coordinates for the next game start,
// one (x, y) pair per seated player. Neutral planets then draw zeros.
func (t *TestApp) QueueCoordinates(coords ...[2]int) {
	for _, c := range coords {
		t.MockRandom.QueueIntn(c[0], c[1])
	}
}
