package events

import (
	"time"
)

// Event is anything published on the bus during a game.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent is embedded by every game event.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventMetadata places an event in the round and turn sequence. Turn is zero
// for events outside the turn loop.
type EventMetadata struct {
	Round int `json:"round,omitempty"`
	Turn  int `json:"turn,omitempty"`
}

// EventHandler receives events of the type it was subscribed for.
type EventHandler func(Event)

// Subscriber receives every event it declares interest in.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}
