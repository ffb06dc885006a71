package game

import "github.com/mitchelldurbincs/sevens/internal/game/core"

// ActionType represents the resolved type of a turn
type ActionType int

const (
	ActionTypePlay ActionType = iota
	ActionTypePass
	ActionTypeRejected
)

func (t ActionType) String() string {
	switch t {
	case ActionTypePlay:
		return "play"
	case ActionTypePass:
		return "pass"
	case ActionTypeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Action records one turn of the game history
type Action struct {
	Round    int
	Turn     int
	PlayerID int
	Type     ActionType
	Card     core.Card // zero unless Type is play or rejected
}
