package rules

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// DefaultScoreThreshold ends a scoring game once any cumulative score reaches it
const DefaultScoreThreshold = 50

// WinConditionChecker handles round/game end detection and final rankings
type WinConditionChecker struct {
	logger    zerolog.Logger
	threshold int
	maxRounds int
}

// NewWinConditionChecker creates a new win condition checker. A maxRounds of
// zero disables the round cap.
func NewWinConditionChecker(logger zerolog.Logger, threshold, maxRounds int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:    logger.With().Str("component", "WinConditionChecker").Logger(),
		threshold: threshold,
		maxRounds: maxRounds,
	}
}

// Threshold returns the score threshold
func (wc *WinConditionChecker) Threshold() int {
	return wc.threshold
}

// CheckGameOver reports whether a scoring game ends after the given round.
func (wc *WinConditionChecker) CheckGameOver(scores []int, round int) (bool, string) {
	for id, score := range scores {
		if score >= wc.threshold {
			wc.logger.Info().
				Int("player_id", id).
				Int("score", score).
				Int("threshold", wc.threshold).
				Msg("Score threshold reached")
			return true, "score threshold reached"
		}
	}
	if wc.maxRounds > 0 && round >= wc.maxRounds {
		wc.logger.Warn().Int("rounds", round).Msg("Round cap reached before any player hit the threshold")
		return true, "round cap reached"
	}
	return false, ""
}

// RankByScore orders players for a finished scoring game: players below the
// threshold first by ascending score, then players at or above it by
// ascending score. Ties go to the lower player ID.
func (wc *WinConditionChecker) RankByScore(scores []int) []core.Placement {
	ids := make([]int, len(scores))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(a, b int) bool {
		sa, sb := scores[ids[a]], scores[ids[b]]
		overA, overB := sa >= wc.threshold, sb >= wc.threshold
		if overA != overB {
			return !overA
		}
		if sa != sb {
			return sa < sb
		}
		return ids[a] < ids[b]
	})
	return toPlacements(ids, 1)
}

// IsRoundOver reports whether at most one seat still holds cards.
func IsRoundOver(hands []core.Hand) bool {
	holding := 0
	for _, h := range hands {
		if len(h) > 0 {
			holding++
		}
	}
	return holding <= 1
}

// RoundPenalties returns each seat's remaining hand size.
func RoundPenalties(hands []core.Hand) []int {
	penalties := make([]int, len(hands))
	for i, h := range hands {
		penalties[i] = len(h)
	}
	return penalties
}

// RankByCardsRemaining ranks a single round. Players in finishedOrder take
// ranks 1..k in that order; the rest follow by ascending cards remaining,
// ties to the lower ID. The result is ordered by rank.
func RankByCardsRemaining(finishedOrder []int, remaining []int) []core.Placement {
	done := make(map[int]bool, len(finishedOrder))
	placements := make([]core.Placement, 0, len(remaining))
	for _, id := range finishedOrder {
		if id < 0 || id >= len(remaining) || done[id] {
			continue
		}
		done[id] = true
		placements = append(placements, core.Placement{PlayerID: id, Rank: len(placements) + 1})
	}

	var rest []int
	for id := range remaining {
		if !done[id] {
			rest = append(rest, id)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		if remaining[rest[a]] != remaining[rest[b]] {
			return remaining[rest[a]] < remaining[rest[b]]
		}
		return rest[a] < rest[b]
	})
	return append(placements, toPlacements(rest, len(placements)+1)...)
}

func toPlacements(ids []int, firstRank int) []core.Placement {
	placements := make([]core.Placement, len(ids))
	for i, id := range ids {
		placements[i] = core.Placement{PlayerID: id, Rank: firstRank + i}
	}
	return placements
}
