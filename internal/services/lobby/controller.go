package lobby

import (
	"context"
	"log/slog"

	"github.com/mcoot/planetgame/internal/dependencies/clock"
	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/services/galaxy"
	"github.com/mcoot/planetgame/internal/services/game"
)

// DefaultMinPlayersToStart requires strictly more than one player for quorum
const DefaultMinPlayersToStart = 2

// Config holds lobby settings
type Config struct {
	// MinPlayersToStart is the smallest lobby that can auto-start once all
	// players are ready. Values below 1 fall back to the default.
	MinPlayersToStart int
}

// DefaultConfig returns the default lobby configuration
func DefaultConfig() Config {
	return Config{MinPlayersToStart: DefaultMinPlayersToStart}
}

// JoinResult reports the seat a player holds after joining
type JoinResult struct {
	Player        model.Player
	AlreadyJoined bool
}

// ReadyResult reports a ready mark and whether it started the game
type ReadyResult struct {
	Player  model.Player
	Started bool
}

// Controller runs the lobby state machine: players join and mark ready
// while the game is open, and the ready mark that completes quorum
// generates the planets.
type Controller struct {
	session   *game.Session
	generator *galaxy.Generator
	clock     clock.Clock
	logger    *slog.Logger
	cfg       Config
}

// NewController creates a new lobby Controller
func NewController(
	session *game.Session,
	generator *galaxy.Generator,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.MinPlayersToStart < 1 {
		cfg.MinPlayersToStart = DefaultMinPlayersToStart
	}
	return &Controller{
		session:   session,
		generator: generator,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
	}
}

// Join seats the identity in the game. Joining twice returns the existing seat.
func (c *Controller) Join(ctx context.Context, identity *model.Identity) (JoinResult, error) {
	if identity == nil {
		return JoinResult{}, model.ErrUnauthorized
	}

	var result JoinResult
	err := c.session.Update(func(g *model.Game) error {
		if g.Started() {
			return model.ErrGameAlreadyStarted
		}

		if existing := g.GetPlayer(identity.Name); existing != nil {
			result = JoinResult{Player: *existing, AlreadyJoined: true}
			return nil
		}

		if len(g.Players) >= model.MaxPlayers {
			return model.ErrGameFull
		}

		player := &model.Player{
			Name:   identity.Name,
			Number: len(g.Players),
		}
		g.Players = append(g.Players, player)
		result = JoinResult{Player: *player}
		return nil
	})
	if err != nil {
		return JoinResult{}, err
	}

	if !result.AlreadyJoined {
		c.logger.Info("player joined",
			slog.String("player", result.Player.Name),
			slog.Int("number", result.Player.Number),
			slog.String("color", result.Player.Color()),
		)
	}

	return result, nil
}

// MarkReady flags the identity as ready. If every seated player is then
// ready and quorum is met, the planets are generated in the same call.
func (c *Controller) MarkReady(ctx context.Context, identity *model.Identity) (ReadyResult, error) {
	if identity == nil {
		return ReadyResult{}, model.ErrUnauthorized
	}

	var result ReadyResult
	var planets int
	err := c.session.Update(func(g *model.Game) error {
		if g.Started() {
			return model.ErrGameAlreadyStarted
		}

		player := g.GetPlayer(identity.Name)
		if player == nil {
			return model.ErrPlayerNotFound
		}

		player.Ready = true
		result.Player = *player

		if len(g.Players) >= c.cfg.MinPlayersToStart && g.AllReady() {
			g.Planets = c.generator.Generate(g.Players)
			g.StartedAt = c.clock.Now()
			result.Started = true
			planets = len(g.Planets)
		}
		return nil
	})
	if err != nil {
		return ReadyResult{}, err
	}

	c.logger.Info("player ready", slog.String("player", identity.Name))
	if result.Started {
		c.logger.Info("game started",
			slog.String("triggered_by", identity.Name),
			slog.Int("planet_count", planets),
		)
	}

	return result, nil
}

// ListPlayers returns the seated players in join order
func (c *Controller) ListPlayers(ctx context.Context) []model.Player {
	var players []model.Player
	c.session.View(func(g *model.Game) {
		players = make([]model.Player, len(g.Players))
		for i, p := range g.Players {
			players[i] = *p
		}
	})
	return players
}

// ListPlanets returns the planets in generation order. Empty until started.
func (c *Controller) ListPlanets(ctx context.Context) []model.Planet {
	var planets []model.Planet
	c.session.View(func(g *model.Game) {
		planets = make([]model.Planet, len(g.Planets))
		for i, p := range g.Planets {
			planets[i] = *p
		}
	})
	return planets
}

// MinPlayersToStart returns the quorum size
func (c *Controller) MinPlayersToStart() int {
	return c.cfg.MinPlayersToStart
}
