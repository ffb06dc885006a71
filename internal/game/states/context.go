package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext is the mutable game bookkeeping the phase hooks read and write.
type GameContext struct {
	GameID string
	Logger zerolog.Logger

	// Seat bounds checked before every deal
	PlayerCount int
	MinPlayers  int
	MaxPlayers  int

	// Round counts deals in the current game and is zero while idle.
	Round     int
	StartTime time.Time

	// Stalemate records how the most recent round ended.
	Stalemate bool

	// Error is required to enter PhaseError and cleared on leaving it.
	Error error
}

// NewGameContext returns an idle context for a game with the given seat bounds.
func NewGameContext(gameID string, minPlayers, maxPlayers int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:     gameID,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
		Logger:     logger,
	}
}

// SeatsValid reports whether PlayerCount lies within the seat bounds.
func (gc *GameContext) SeatsValid() bool {
	return gc.MinPlayers <= gc.PlayerCount && gc.PlayerCount <= gc.MaxPlayers
}

// Elapsed is the time since the first deal of the game, zero before it.
func (gc *GameContext) Elapsed() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

func (gc *GameContext) resetGame() {
	gc.Round = 0
	gc.StartTime = time.Time{}
	gc.Stalemate = false
	gc.Error = nil
}
