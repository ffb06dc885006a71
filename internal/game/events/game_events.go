package events

import (
	"time"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeRoundStarted    = "round.started"
	TypeRoundEnded      = "round.ended"
	TypeCardsDealt      = "cards.dealt"
	TypeCardPlayed      = "card.played"
	TypePlayerPassed    = "player.passed"
	TypeMoveRejected    = "move.rejected"
	TypePlayerFinished  = "player.finished"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	NumPlayers     int
	Mode           string
	ScoreThreshold int
	PlayerNames    []string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers int, mode string, threshold int, names []string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:      newBase(TypeGameStarted, gameID),
		NumPlayers:     numPlayers,
		Mode:           mode,
		ScoreThreshold: threshold,
		PlayerNames:    names,
	}
}

// GameEndedEvent is published once final placements are known
type GameEndedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Placements []core.Placement
	Scores     []int
	Duration   time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, rounds int, placements []core.Placement, scores []int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Metadata:   EventMetadata{Round: rounds},
		Placements: placements,
		Scores:     scores,
		Duration:   duration,
	}
}

// RoundStartedEvent is published after a round has been dealt
type RoundStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Table    *core.TableLayout
}

// NewRoundStartedEvent creates a new RoundStartedEvent
func NewRoundStartedEvent(gameID string, round int, table *core.TableLayout) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: newBase(TypeRoundStarted, gameID),
		Metadata:  EventMetadata{Round: round},
		Table:     table,
	}
}

// RoundEndedEvent is published when a round stops, either because every
// player finished or because a full cycle passed without a play.
type RoundEndedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Stalemate bool
	Winner    int
	Penalties []int
	Scores    []int
	Table     *core.TableLayout
}

// NewRoundEndedEvent creates a new RoundEndedEvent. winner is -1 when no
// player emptied their hand.
func NewRoundEndedEvent(gameID string, round int, stalemate bool, winner int, penalties, scores []int, table *core.TableLayout) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent: newBase(TypeRoundEnded, gameID),
		Metadata:  EventMetadata{Round: round},
		Stalemate: stalemate,
		Winner:    winner,
		Penalties: penalties,
		Scores:    scores,
		Table:     table,
	}
}

// CardsDealtEvent reports the hand sizes after a deal
type CardsDealtEvent struct {
	BaseEvent
	Metadata  EventMetadata
	HandSizes []int
}

// NewCardsDealtEvent creates a new CardsDealtEvent
func NewCardsDealtEvent(gameID string, round int, handSizes []int) *CardsDealtEvent {
	return &CardsDealtEvent{
		BaseEvent: newBase(TypeCardsDealt, gameID),
		Metadata:  EventMetadata{Round: round},
		HandSizes: handSizes,
	}
}

// CardPlayedEvent is published for every accepted play
type CardPlayedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	PlayerID  int
	Card      core.Card
	CardsLeft int
}

// NewCardPlayedEvent creates a new CardPlayedEvent
func NewCardPlayedEvent(gameID string, round, turn, playerID int, card core.Card, cardsLeft int) *CardPlayedEvent {
	return &CardPlayedEvent{
		BaseEvent: newBase(TypeCardPlayed, gameID),
		Metadata:  EventMetadata{Round: round, Turn: turn},
		PlayerID:  playerID,
		Card:      card,
		CardsLeft: cardsLeft,
	}
}

// PlayerPassedEvent is published whenever a turn ends without a play
type PlayerPassedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	PlayerID  int
	CardsLeft int
}

// NewPlayerPassedEvent creates a new PlayerPassedEvent
func NewPlayerPassedEvent(gameID string, round, turn, playerID, cardsLeft int) *PlayerPassedEvent {
	return &PlayerPassedEvent{
		BaseEvent: newBase(TypePlayerPassed, gameID),
		Metadata:  EventMetadata{Round: round, Turn: turn},
		PlayerID:  playerID,
		CardsLeft: cardsLeft,
	}
}

// MoveRejectedEvent carries the diagnostic for a play that broke the rules.
// The turn is still recorded as a pass.
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	PlayerID int
	Card     core.Card
	Err      error
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, round, turn, playerID int, card core.Card, err error) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata:  EventMetadata{Round: round, Turn: turn},
		PlayerID:  playerID,
		Card:      card,
		Err:       err,
	}
}

// PlayerFinishedEvent is published when a player's placement is fixed
type PlayerFinishedEvent struct {
	BaseEvent
	Metadata EventMetadata
	PlayerID int
	Rank     int
}

// NewPlayerFinishedEvent creates a new PlayerFinishedEvent
func NewPlayerFinishedEvent(gameID string, round, playerID, rank int) *PlayerFinishedEvent {
	return &PlayerFinishedEvent{
		BaseEvent: newBase(TypePlayerFinished, gameID),
		Metadata:  EventMetadata{Round: round},
		PlayerID:  playerID,
		Rank:      rank,
	}
}

// StateTransitionEvent is published when the game changes phase
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
