package galaxy

import (
	"github.com/mcoot/planetgame/internal/dependencies/random"
	"github.com/mcoot/planetgame/internal/model"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 10

	HomeProduction = 10
	HomeKillPct    = 40

	// Neutral planets draw production and kill percentage from [0, max)
	MaxNeutralProduction = 10
	MaxNeutralKillPct    = 40
)

// Generator builds the planet set when a game starts
type Generator struct {
	random random.Random
	width  int
	height int
}

// New creates a Generator for a width x height map. Non-positive sizes
// fall back to the defaults.
func New(random random.Random, width, height int) *Generator {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Generator{
		random: random,
		width:  width,
		height: height,
	}
}

// Width returns the map width
func (g *Generator) Width() int {
	return g.width
}

// Height returns the map height
func (g *Generator) Height() int {
	return g.height
}

// Generate returns one home planet per player in join order, followed by a
// neutral planet for every remaining letter of the alphabet
func (g *Generator) Generate(players []*model.Player) []*model.Planet {
	planets := make([]*model.Planet, 0, len(model.PlanetNames))

	for i, name := range model.PlanetNames {
		if i < len(players) {
			planets = append(planets, g.home(string(name), players[i].Name))
		} else {
			planets = append(planets, g.neutral(string(name)))
		}
	}

	return planets
}

func (g *Generator) home(name, owner string) *model.Planet {
	return &model.Planet{
		Name:       name,
		X:          g.random.Intn(g.width),
		Y:          g.random.Intn(g.height),
		Production: HomeProduction,
		KillPct:    HomeKillPct,
		Owner:      owner,
		Ships:      HomeProduction,
	}
}

func (g *Generator) neutral(name string) *model.Planet {
	p := &model.Planet{
		Name: name,
		X:    g.random.Intn(g.width),
		Y:    g.random.Intn(g.height),
	}
	p.Production = g.random.Intn(MaxNeutralProduction)
	p.KillPct = g.random.Intn(MaxNeutralKillPct)
	p.Ships = p.Production
	return p
}
