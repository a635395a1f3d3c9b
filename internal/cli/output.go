package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSession(v)
	case JoinResult:
		o.printJoinResult(v)
	case ReadyResult:
		o.printReadyResult(v)
	case PlayersResult:
		o.printPlayers(v.Players)
	case PlanetsResult:
		o.printPlanets(v.Planets)
	case DeployResult:
		o.printDeployResult(v)
	case DeploymentsResult:
		o.printDeployments(v.Deployments)
	case GameStatus:
		o.printGameStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Ready  bool   `json:"ready"`
}

// SessionResult response type
type SessionResult struct {
	Name         string `json:"name"`
	SessionToken string `json:"session_token"`
}

// JoinResult response type
type JoinResult struct {
	Player        Player `json:"player"`
	AlreadyJoined bool   `json:"already_joined"`
	SessionToken  string `json:"session_token"`
}

// ReadyResult response type
type ReadyResult struct {
	Player  Player `json:"player"`
	Started bool   `json:"started"`
}

// PlayersResult response type
type PlayersResult struct {
	Players []Player `json:"players"`
}

// Planet response type
type Planet struct {
	Name       string  `json:"name"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Production int     `json:"production"`
	KillPct    int     `json:"kill_pct"`
	Owner      *string `json:"owner"`
	Ships      int     `json:"ships"`
}

// PlanetsResult response type
type PlanetsResult struct {
	Planets []Planet `json:"planets"`
}

// Deployment response type
type Deployment struct {
	Player      string `json:"player"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	ArrivalTurn int    `json:"arrival_turn"`
	Ships       int    `json:"ships"`
	KillPct     int    `json:"kill_pct"`
}

// DeployResult response type
type DeployResult struct {
	Outcome        string      `json:"outcome"`
	Deployment     *Deployment `json:"deployment,omitempty"`
	RemainingShips int         `json:"remaining_ships"`
}

// DeploymentsResult response type
type DeploymentsResult struct {
	Deployments []Deployment `json:"deployments"`
}

// GameStatus response type
type GameStatus struct {
	State             string `json:"state"`
	CurrentTurn       int    `json:"current_turn"`
	Players           int    `json:"players"`
	Planets           int    `json:"planets"`
	Deployments       int    `json:"deployments"`
	MaxPlayers        int    `json:"max_players"`
	MinPlayersToStart int    `json:"min_players_to_start"`
	DeployPolicy      string `json:"deploy_policy"`
}

// HealthResult response type
type HealthResult struct {
	Status       string `json:"status"`
	Identities   int    `json:"identities"`
	EventClients int    `json:"event_clients"`
}

func (o *Output) printPlayer(p Player) {
	ready := "not ready"
	if p.Ready {
		ready = "ready"
	}
	fmt.Fprintf(o.w, "#%d %-12s %-8s %s\n", p.Number, p.Name, p.Color, ready)
}

func (o *Output) printSession(s SessionResult) {
	fmt.Fprintf(o.w, "Player: %s\n", s.Name)
	fmt.Fprintf(o.w, "Token: %s\n", s.SessionToken)
}

func (o *Output) printJoinResult(j JoinResult) {
	if j.AlreadyJoined {
		fmt.Fprintln(o.w, "Already joined")
	} else {
		fmt.Fprintln(o.w, "Joined")
	}
	o.printPlayer(j.Player)
}

func (o *Output) printReadyResult(r ReadyResult) {
	o.printPlayer(r.Player)
	if r.Started {
		fmt.Fprintln(o.w, "Game started")
	}
}

func (o *Output) printPlayers(players []Player) {
	fmt.Fprintf(o.w, "Players (%d):\n", len(players))
	for _, p := range players {
		o.printPlayer(p)
	}
}

func (o *Output) printPlanets(planets []Planet) {
	if len(planets) == 0 {
		fmt.Fprintln(o.w, "No planets yet")
		return
	}
	fmt.Fprintf(o.w, "%-4s %-7s %-5s %-5s %-6s %s\n", "NAME", "POS", "PROD", "KILL", "SHIPS", "OWNER")
	for _, p := range planets {
		owner := "-"
		if p.Owner != nil {
			owner = *p.Owner
		}
		pos := fmt.Sprintf("%d,%d", p.X, p.Y)
		fmt.Fprintf(o.w, "%-4s %-7s %-5d %-5d %-6d %s\n", p.Name, pos, p.Production, p.KillPct, p.Ships, owner)
	}
}

func (o *Output) printDeployment(d Deployment) {
	fmt.Fprintf(o.w, "%s -> %s  %d ships  arrives turn %d\n", d.Source, d.Destination, d.Ships, d.ArrivalTurn)
}

func (o *Output) printDeployResult(r DeployResult) {
	if r.Deployment != nil {
		o.printDeployment(*r.Deployment)
	} else {
		fmt.Fprintln(o.w, "No ships deployed")
	}
	fmt.Fprintf(o.w, "Remaining ships: %d\n", r.RemainingShips)
}

func (o *Output) printDeployments(deployments []Deployment) {
	fmt.Fprintf(o.w, "Deployments (%d):\n", len(deployments))
	for _, d := range deployments {
		o.printDeployment(d)
	}
}

func (o *Output) printGameStatus(g GameStatus) {
	fmt.Fprintf(o.w, "State: %s\n", strings.ToUpper(g.State))
	fmt.Fprintf(o.w, "Turn: %d\n", g.CurrentTurn)
	fmt.Fprintf(o.w, "Players: %d/%d (start needs %d)\n", g.Players, g.MaxPlayers, g.MinPlayersToStart)
	fmt.Fprintf(o.w, "Planets: %d\n", g.Planets)
	fmt.Fprintf(o.w, "Deployments: %d\n", g.Deployments)
	fmt.Fprintf(o.w, "Deploy policy: %s\n", g.DeployPolicy)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Identities: %d\n", h.Identities)
	fmt.Fprintf(o.w, "Event clients: %d\n", h.EventClients)
}
