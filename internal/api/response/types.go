package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/services/fleet"
	"github.com/mcoot/planetgame/internal/services/game"
	"github.com/mcoot/planetgame/internal/services/lobby"
)

// Player represents a seated player in API responses
type Player struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Ready  bool   `json:"ready"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		Number: p.Number,
		Name:   p.Name,
		Color:  p.Color(),
		Ready:  p.Ready,
	}
}

// PlayersResponse lists seated players in join order
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// PlayersFromModel converts a player list
func PlayersFromModel(players []model.Player) PlayersResponse {
	resp := PlayersResponse{Players: make([]Player, len(players))}
	for i, p := range players {
		resp.Players[i] = PlayerFromModel(p)
	}
	return resp
}

// Planet represents a planet in API responses. Owner is null when neutral.
type Planet struct {
	Name       string  `json:"name"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Production int     `json:"production"`
	KillPct    int     `json:"kill_pct"`
	Owner      *string `json:"owner"`
	Ships      int     `json:"ships"`
}

// PlanetFromModel converts a model.Planet to a response Planet
func PlanetFromModel(p model.Planet) Planet {
	planet := Planet{
		Name:       p.Name,
		X:          p.X,
		Y:          p.Y,
		Production: p.Production,
		KillPct:    p.KillPct,
		Ships:      p.Ships,
	}
	if !p.IsNeutral() {
		owner := p.Owner
		planet.Owner = &owner
	}
	return planet
}

// PlanetsResponse lists planets in generation order
type PlanetsResponse struct {
	Planets []Planet `json:"planets"`
}

// PlanetsFromModel converts a planet list
func PlanetsFromModel(planets []model.Planet) PlanetsResponse {
	resp := PlanetsResponse{Planets: make([]Planet, len(planets))}
	for i, p := range planets {
		resp.Planets[i] = PlanetFromModel(p)
	}
	return resp
}

// JoinResponse is the response for joining the game. The caller's own
// session token is included so a client that authenticated with a name and
// password can use the token for later requests.
type JoinResponse struct {
	Player        Player `json:"player"`
	AlreadyJoined bool   `json:"already_joined"`
	SessionToken  string `json:"session_token"`
}

// JoinFromResult creates a JoinResponse
func JoinFromResult(r lobby.JoinResult, token string) JoinResponse {
	return JoinResponse{
		Player:        PlayerFromModel(r.Player),
		AlreadyJoined: r.AlreadyJoined,
		SessionToken:  token,
	}
}

// ReadyResponse is the response for marking ready
type ReadyResponse struct {
	Player  Player `json:"player"`
	Started bool   `json:"started"`
}

// ReadyFromResult creates a ReadyResponse
func ReadyFromResult(r lobby.ReadyResult) ReadyResponse {
	return ReadyResponse{
		Player:  PlayerFromModel(r.Player),
		Started: r.Started,
	}
}

// Deployment represents a fleet in transit
type Deployment struct {
	Player      string `json:"player"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	ArrivalTurn int    `json:"arrival_turn"`
	Ships       int    `json:"ships"`
	KillPct     int    `json:"kill_pct"`
}

// DeploymentFromModel converts a model.Deployment
func DeploymentFromModel(d model.Deployment) Deployment {
	return Deployment{
		Player:      d.Player,
		Source:      d.Source,
		Destination: d.Destination,
		ArrivalTurn: d.ArrivalTurn,
		Ships:       d.Ships,
		KillPct:     d.KillPct,
	}
}

// DeploymentsResponse lists deployments in launch order
type DeploymentsResponse struct {
	Deployments []Deployment `json:"deployments"`
}

// DeploymentsFromModel converts a deployment list
func DeploymentsFromModel(deployments []model.Deployment) DeploymentsResponse {
	resp := DeploymentsResponse{Deployments: make([]Deployment, len(deployments))}
	for i, d := range deployments {
		resp.Deployments[i] = DeploymentFromModel(d)
	}
	return resp
}

// DeployResponse is the response for a deploy order
type DeployResponse struct {
	Outcome        string      `json:"outcome"`
	Deployment     *Deployment `json:"deployment,omitempty"`
	RemainingShips int         `json:"remaining_ships"`
}

// DeployFromResult creates a DeployResponse
func DeployFromResult(r fleet.DeployResult) DeployResponse {
	resp := DeployResponse{
		Outcome:        string(r.Outcome),
		RemainingShips: r.RemainingShips,
	}
	if r.Outcome == fleet.OutcomeDeployed {
		d := DeploymentFromModel(r.Deployment)
		resp.Deployment = &d
	}
	return resp
}

// Game is the game status summary
type Game struct {
	State             string `json:"state"`
	CurrentTurn       int    `json:"current_turn"`
	Players           int    `json:"players"`
	Planets           int    `json:"planets"`
	Deployments       int    `json:"deployments"`
	MaxPlayers        int    `json:"max_players"`
	MinPlayersToStart int    `json:"min_players_to_start"`
	DeployPolicy      string `json:"deploy_policy"`
}

// GameFromStatus creates a Game response
func GameFromStatus(st game.Status, minPlayers int, policy fleet.DeployPolicy) Game {
	return Game{
		State:             string(st.State),
		CurrentTurn:       st.CurrentTurn,
		Players:           st.Players,
		Planets:           st.Planets,
		Deployments:       st.Deployments,
		MaxPlayers:        model.MaxPlayers,
		MinPlayersToStart: minPlayers,
		DeployPolicy:      string(policy),
	}
}

// Session is the response for issuing a session token
type Session struct {
	Name         string `json:"name"`
	SessionToken string `json:"session_token"`
}

// Health is the response for the health check
type Health struct {
	Status     string `json:"status"`
	Identities int    `json:"identities"`
	Clients    int    `json:"event_clients"`
}

// JSON writes v as the response body with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
