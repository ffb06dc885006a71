package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/events"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
)

// This file contains scoring and ranking for the game engine.

// scoreRound charges every seat its remaining cards and publishes the result.
// Only the scoring variant accumulates points.
func (e *Engine) scoreRound(stalemate bool, logger zerolog.Logger) {
	gs := e.gs
	penalties := rules.RoundPenalties(gs.Hands())

	var scores []int
	if e.mode == ModeScoring {
		for id := range gs.Players {
			gs.Players[id].Score += penalties[id]
		}
		scores = gs.Scores()
	}

	winner := -1
	if len(gs.FinishOrder) > 0 {
		winner = gs.FinishOrder[0]
	}

	event := logger.Info().
		Bool("stalemate", stalemate).
		Int("winner", winner).
		Ints("penalties", penalties)
	if scores != nil {
		event = event.Ints("scores", scores)
	}
	event.Msg("Round ended")

	e.eventBus.Publish(events.NewRoundEndedEvent(e.gameID, gs.Round, stalemate, winner, penalties, scores, gs.Table.Clone()))
}

// gameFinished reports whether another round should be dealt
func (e *Engine) gameFinished() (bool, string) {
	if e.mode != ModeScoring {
		return true, "Single round complete"
	}
	return e.winCondition.CheckGameOver(e.gs.Scores(), e.gs.Round)
}

// placements ranks every seat once the game is over
func (e *Engine) placements() []core.Placement {
	if e.mode == ModeScoring {
		return e.winCondition.RankByScore(e.gs.Scores())
	}
	return rules.RankByCardsRemaining(e.gs.FinishOrder, rules.RoundPenalties(e.gs.Hands()))
}
