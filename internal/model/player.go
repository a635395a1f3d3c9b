package model

import "time"

// MaxPlayers is the size of the color palette; one color per seat
const MaxPlayers = 6

// PlayerColors is the fixed palette indexed by join number
var PlayerColors = [MaxPlayers]string{"green", "yellow", "cyan", "magenta", "red", "blue"}

// Identity is a registered name with its credential and session token.
// Identities outlive games: the registry is never reset between games.
type Identity struct {
	Name           string
	CredentialHash string // bcrypt hash of the presented password hash
	SessionToken   string
	CreatedAt      time.Time
}

// Player is an identity seated in the current game
type Player struct {
	Name   string
	Number int // join order, 0-indexed, immutable
	Ready  bool
}

// Color returns the palette label for the player's seat
func (p *Player) Color() string {
	if p.Number < 0 || p.Number >= MaxPlayers {
		return ""
	}
	return PlayerColors[p.Number]
}
