package model

// PlanetNames is the alphabet planets are named from, in generation order
const PlanetNames = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Planet is a fixed point on the map that can hold and launch ships
type Planet struct {
	Name       string
	X          int
	Y          int
	Production int
	KillPct    int
	Owner      string // player name, empty when neutral
	Ships      int
}

// IsNeutral returns true if no player owns the planet
func (p *Planet) IsNeutral() bool {
	return p.Owner == ""
}

// OwnedBy returns true if the named player owns the planet
func (p *Planet) OwnedBy(name string) bool {
	return !p.IsNeutral() && p.Owner == name
}
