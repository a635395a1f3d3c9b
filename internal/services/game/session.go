package game

import (
	"sync"

	"github.com/mcoot/planetgame/internal/model"
)

// Session owns the single game hosted by the process and serializes all
// access to it. Callers never hold a pointer into the game outside the lock.
type Session struct {
	mu   sync.Mutex
	game *model.Game
}

// NewSession creates a session around an empty game
func NewSession() *Session {
	return &Session{game: model.NewGame()}
}

// Update runs fn with exclusive access to the game. fn must validate before
// mutating so that a returned error leaves the game untouched.
func (s *Session) Update(fn func(g *model.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// View runs fn under the same lock as Update. fn must not retain g.
func (s *Session) View(fn func(g *model.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Snapshot returns a deep copy of the game
func (s *Session) Snapshot() *model.Game {
	var c *model.Game
	s.View(func(g *model.Game) {
		c = g.Clone()
	})
	return c
}

// Status is a summary of the game
type Status struct {
	State       model.GameState
	CurrentTurn int
	Players     int
	Planets     int
	Deployments int
}

// Status returns a consistent summary of the game
func (s *Session) Status() Status {
	var st Status
	s.View(func(g *model.Game) {
		st = Status{
			State:       g.State(),
			CurrentTurn: g.CurrentTurn,
			Players:     len(g.Players),
			Planets:     len(g.Planets),
			Deployments: len(g.Deployments),
		}
	})
	return st
}
