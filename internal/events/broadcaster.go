package events

import (
	"github.com/mcoot/planetgame/internal/dependencies/clock"
	"github.com/mcoot/planetgame/internal/model"
)

// Broadcaster turns game transitions into events on the hub
type Broadcaster struct {
	hub   *Hub
	clock clock.Clock
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, clock clock.Clock) *Broadcaster {
	return &Broadcaster{
		hub:   hub,
		clock: clock,
	}
}

// PlayerJoined announces a newly seated player
func (b *Broadcaster) PlayerJoined(player model.Player) {
	b.publish(model.EventPlayerJoined, player.Name, model.PlayerJoinedPayload{
		Number: player.Number,
		Color:  player.Color(),
	})
}

// PlayerReady announces a ready mark
func (b *Broadcaster) PlayerReady(name string) {
	b.publish(model.EventPlayerReady, name, nil)
}

// GameStarted announces the lobby closing and the planet count
func (b *Broadcaster) GameStarted(triggeredBy string, players []model.Player, planets int) {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	b.publish(model.EventGameStarted, triggeredBy, model.GameStartedPayload{
		Players: names,
		Planets: planets,
	})
}

// FleetDeployed announces a launch without revealing the ship count
func (b *Broadcaster) FleetDeployed(d model.Deployment) {
	b.publish(model.EventFleetDeployed, d.Player, model.FleetDeployedPayload{
		Source:      d.Source,
		Destination: d.Destination,
		ArrivalTurn: d.ArrivalTurn,
	})
}

func (b *Broadcaster) publish(eventType model.EventType, player string, payload any) {
	b.hub.Publish(model.Event{
		Type:      eventType,
		Timestamp: b.clock.Now(),
		Player:    player,
		Payload:   payload,
	})
}
