package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration    = errors.New("invalid configuration")
	ErrMissingStrategy         = fmt.Errorf("%w: missing strategy", ErrInvalidConfiguration)
	ErrResolution              = errors.New("strategy resolution failed")
	ErrIllegalMove             = errors.New("illegal move")
	ErrInvalidStrategyResponse = errors.New("invalid strategy response")
	ErrInvalidCard             = errors.New("invalid card")
	ErrUnsupported             = errors.New("unsupported")
	ErrInvalidPlayer           = errors.New("invalid player ID")
	ErrStrategyPanic           = errors.New("strategy panicked")
)

// WrapActionError adds player and card context to a play error.
func WrapActionError(action *PlayAction, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("player action: %w", err)
	}
	return fmt.Errorf("player %d: play %s: %w", action.PlayerID, action.Card, err)
}

// WrapGameStateError adds round and phase context to an engine error.
func WrapGameStateError(round int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game round %d [%s]: %w", round, phase, err)
}

// WrapPlayerError adds player context to an error.
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError is a structured error carrying the round and seat it happened in.
type GameError struct {
	Round     int
	PlayerID  int
	Operation string
	Err       error
}

// NewGameError creates a GameError. A negative playerID means no seat.
func NewGameError(round, playerID int, operation string, err error) *GameError {
	return &GameError{Round: round, PlayerID: playerID, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.PlayerID >= 0 {
		return fmt.Sprintf("round %d: player %d %s: %v", e.Round, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("round %d: %s: %v", e.Round, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }
