package model

import "time"

// GameState is the lobby phase of the game
type GameState string

const (
	GameStateOpen    GameState = "open"    // Accepting joins
	GameStateStarted GameState = "started" // Planets generated, lobby closed
)

// Game is the aggregate root for the single game hosted by the process
type Game struct {
	Players     []*Player // join order
	Planets     []*Planet // generation order
	CurrentTurn int
	Deployments []Deployment
	StartedAt   time.Time
}

// NewGame creates an empty game with an initialized deployment log
func NewGame() *Game {
	return &Game{
		Players:     []*Player{},
		Planets:     []*Planet{},
		Deployments: []Deployment{},
	}
}

// Started returns true once planets have been generated
func (g *Game) Started() bool {
	return len(g.Planets) > 0
}

// State returns the lobby phase derived from the planet set
func (g *Game) State() GameState {
	if g.Started() {
		return GameStateStarted
	}
	return GameStateOpen
}

// GetPlayer returns the seated player with the given name, or nil
func (g *Game) GetPlayer(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// GetPlanet returns the planet with the given name, or nil
func (g *Game) GetPlanet(name string) *Planet {
	for _, p := range g.Planets {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AllReady returns true if every seated player is ready
func (g *Game) AllReady() bool {
	for _, p := range g.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Clone returns a deep copy safe to hand out of the session lock
func (g *Game) Clone() *Game {
	c := &Game{
		Players:     make([]*Player, len(g.Players)),
		Planets:     make([]*Planet, len(g.Planets)),
		CurrentTurn: g.CurrentTurn,
		Deployments: make([]Deployment, len(g.Deployments)),
		StartedAt:   g.StartedAt,
	}
	for i, p := range g.Players {
		cp := *p
		c.Players[i] = &cp
	}
	for i, p := range g.Planets {
		cp := *p
		c.Planets[i] = &cp
	}
	copy(c.Deployments, g.Deployments)
	return c
}
