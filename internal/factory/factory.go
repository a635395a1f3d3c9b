package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/planetgame/internal/dependencies/clock"
	"github.com/mcoot/planetgame/internal/dependencies/random"
	"github.com/mcoot/planetgame/internal/events"
	"github.com/mcoot/planetgame/internal/services/fleet"
	"github.com/mcoot/planetgame/internal/services/galaxy"
	"github.com/mcoot/planetgame/internal/services/game"
	"github.com/mcoot/planetgame/internal/services/identity"
	"github.com/mcoot/planetgame/internal/services/lobby"
	"github.com/mcoot/planetgame/internal/storage"
	"github.com/mcoot/planetgame/internal/storage/memory"
	redisstorage "github.com/mcoot/planetgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// The one game hosted by this process
	Session *game.Session

	// Services
	IdentityService *identity.Service
	Generator       *galaxy.Generator
	LobbyController *lobby.Controller
	FleetEngine     *fleet.Engine

	// Live updates
	Hub         *events.Hub
	Broadcaster *events.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the identity storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MapWidth and MapHeight size the planet grid. Zero uses the 10x10 default.
	MapWidth  int
	MapHeight int
	// DeployPolicy selects which clamped ship counts launch a fleet
	// If empty, defaults to fleet.DefaultPolicy
	DeployPolicy fleet.DeployPolicy
	// MinPlayersToStart is the quorum size. Zero uses the default of 2.
	MinPlayersToStart int
	// Distance overrides the travel distance metric (optional)
	Distance fleet.DistanceFunc
}

// New creates a new application with all dependencies wired and the event
// hub running. Call Close when done.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
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
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) *App {
	logger := cfg.Logger

	session := game.NewSession()
	generator := galaxy.New(rnd, cfg.MapWidth, cfg.MapHeight)
	identityService := identity.New(store, clk, logger)
	lobbyController := lobby.NewController(session, generator, clk, logger, lobby.Config{
		MinPlayersToStart: cfg.MinPlayersToStart,
	})
	fleetEngine := fleet.NewEngine(session, cfg.Distance, cfg.DeployPolicy, logger)

	hub := events.NewHub(logger)
	go hub.Run()

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Session:         session,
		IdentityService: identityService,
		Generator:       generator,
		LobbyController: lobbyController,
		FleetEngine:     fleetEngine,
		Hub:             hub,
		Broadcaster:     events.NewBroadcaster(hub, clk),
	}
}

// Close stops the event hub and releases the storage backend
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
