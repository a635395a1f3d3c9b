package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerReady   EventType = "player_ready"
	EventGameStarted   EventType = "game_started"
	EventFleetDeployed EventType = "fleet_deployed"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player,omitempty"` // The player who triggered the event
	Payload   any       `json:"payload,omitempty"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players []string `json:"players"`
	Planets int      `json:"planets"`
}

// FleetDeployedPayload contains data for fleet deployed events.
// Ship counts are omitted so opponents only learn that a fleet left.
type FleetDeployedPayload struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	ArrivalTurn int    `json:"arrival_turn"`
}
