package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Seat limits for a single game
const (
	MinPlayers = 3
	MaxPlayers = 7
)

// DefaultMaxRounds caps a scoring game that never reaches its threshold
const DefaultMaxRounds = 1000

// Mode selects the game variant
type Mode int

const (
	// ModeSingleRound plays one round; players are ranked by finishing order
	// then by cards remaining.
	ModeSingleRound Mode = iota
	// ModeScoring plays rounds until a cumulative penalty reaches the threshold.
	ModeScoring
)

func (m Mode) String() string {
	switch m {
	case ModeSingleRound:
		return "single"
	case ModeScoring:
		return "scoring"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "single_round":
		return ModeSingleRound, nil
	case "scoring":
		return ModeScoring, nil
	default:
		return ModeSingleRound, fmt.Errorf("%w: unknown game mode %q", core.ErrInvalidConfiguration, s)
	}
}
