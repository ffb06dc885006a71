package states

import (
	"errors"
	"fmt"
	"time"
)

// hookState implements State from a set of optional callbacks.
type hookState struct {
	phase    GamePhase
	enter    func(*GameContext) error
	exit     func(*GameContext) error
	validate func(*GameContext) error
}

func (s *hookState) Phase() GamePhase { return s.phase }

func (s *hookState) Enter(ctx *GameContext) error { return call(s.enter, ctx) }

func (s *hookState) Exit(ctx *GameContext) error { return call(s.exit, ctx) }

func (s *hookState) Validate(ctx *GameContext) error { return call(s.validate, ctx) }

func call(fn func(*GameContext) error, ctx *GameContext) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// NewIdleState clears the per-game counters on entry.
func NewIdleState() State {
	return &hookState{
		phase: PhaseIdle,
		enter: func(ctx *GameContext) error {
			ctx.resetGame()
			return nil
		},
		exit: func(ctx *GameContext) error {
			ctx.Logger.Debug().Int("player_count", ctx.PlayerCount).Msg("Game starting")
			return nil
		},
	}
}

// NewDealingState advances the round counter. Dealing needs a legal seat count.
func NewDealingState() State {
	return &hookState{
		phase: PhaseDealing,
		validate: func(ctx *GameContext) error {
			if !ctx.SeatsValid() {
				return fmt.Errorf("player count %d outside [%d, %d]", ctx.PlayerCount, ctx.MinPlayers, ctx.MaxPlayers)
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			ctx.Round++
			ctx.Stalemate = false
			if ctx.StartTime.IsZero() {
				ctx.StartTime = time.Now()
			}
			ctx.Logger.Debug().Int("round", ctx.Round).Msg("Dealing round")
			return nil
		},
	}
}

// NewTurnLoopState is active while seats are asked for cards.
func NewTurnLoopState() State {
	return &hookState{
		phase:    PhaseTurnLoop,
		validate: requireRound("turn loop requires a dealt round"),
		exit: func(ctx *GameContext) error {
			ctx.Logger.Debug().
				Int("round", ctx.Round).
				Bool("stalemate", ctx.Stalemate).
				Msg("Turn loop stopped")
			return nil
		},
	}
}

// NewRoundEndState is entered after every round, before penalties are applied.
func NewRoundEndState() State {
	return &hookState{phase: PhaseRoundEnd}
}

// NewFinishedState holds a completed game until the next run.
func NewFinishedState() State {
	return &hookState{
		phase:    PhaseFinished,
		validate: requireRound("cannot finish a game with no rounds"),
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().
				Int("rounds", ctx.Round).
				Dur("game_duration", ctx.Elapsed()).
				Msg("Game finished")
			return nil
		},
	}
}

// NewErrorState records the failure held in GameContext.Error.
func NewErrorState() State {
	return &hookState{
		phase: PhaseError,
		validate: func(ctx *GameContext) error {
			if ctx.Error == nil {
				return fmt.Errorf("error state requires an error in context")
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			ctx.Logger.Error().Err(ctx.Error).Int("round", ctx.Round).Msg("Game aborted")
			return nil
		},
		exit: func(ctx *GameContext) error {
			ctx.Error = nil
			return nil
		},
	}
}

func requireRound(msg string) func(*GameContext) error {
	err := errors.New(msg)
	return func(ctx *GameContext) error {
		if ctx.Round < 1 {
			return err
		}
		return nil
	}
}

func defaultStates() []State {
	return []State{
		NewIdleState(),
		NewDealingState(),
		NewTurnLoopState(),
		NewRoundEndState(),
		NewFinishedState(),
		NewErrorState(),
	}
}
