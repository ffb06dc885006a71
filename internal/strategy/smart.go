package strategy

import (
	"math"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
)

const (
	unlockWeight   = 4
	giftWeight     = 2
	maxSuitPenalty = 3
)

// SmartStrategy scores each playable card. It favours cards that make more of
// its own hand playable and avoids opening table slots it cannot fill itself,
// more so in suits where opponents have been active or while they are stuck.
type SmartStrategy struct {
	base
	opponentSuitPlays [core.NumSuits]int
	opponentPasses    int
}

func NewSmartStrategy() *SmartStrategy {
	return &SmartStrategy{}
}

func (s *SmartStrategy) Initialize(playerID int) {
	s.base.Initialize(playerID)
	s.opponentSuitPlays = [core.NumSuits]int{}
	s.opponentPasses = 0
}

func (s *SmartStrategy) ObserveMove(playerID int, card core.Card) {
	if playerID == s.playerID || !card.Suit.Valid() {
		return
	}
	s.opponentSuitPlays[card.Suit]++
	s.opponentPasses = 0
}

func (s *SmartStrategy) ObservePass(playerID int) {
	if playerID != s.playerID {
		s.opponentPasses++
	}
}

func (s *SmartStrategy) SelectCardToPlay(hand []core.Card, table core.TableView) int {
	best, bestScore := Pass, math.MinInt
	for _, i := range rules.PlayableIndices(hand, table) {
		if score := s.score(hand, i, table); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (s *SmartStrategy) score(hand []core.Card, index int, table core.TableView) int {
	card := hand[index]
	after := withCard{TableView: table, card: card}

	unlocked, sameSuit := 0, 0
	for j, other := range hand {
		if j == index {
			continue
		}
		if other.Suit == card.Suit {
			sameSuit++
		}
		if !core.IsPlayable(other, table) && core.IsPlayable(other, after) {
			unlocked++
		}
	}

	gifts := 0
	for _, r := range []core.Rank{card.Rank - 1, card.Rank + 1} {
		if !r.Valid() || table.IsExposed(card.Suit, r) {
			continue
		}
		if !core.Hand(hand).Contains(core.NewCard(card.Suit, r)) {
			gifts++
		}
	}

	pressure := s.opponentSuitPlays[card.Suit]
	if s.opponentPasses > 0 {
		pressure++
	}
	if pressure > maxSuitPenalty {
		pressure = maxSuitPenalty
	}

	return unlockWeight*unlocked - giftWeight*gifts*(1+pressure) + sameSuit
}

func (s *SmartStrategy) Name() string { return "SmartStrategy" }

// withCard is a table view with one extra card exposed.
type withCard struct {
	core.TableView
	card core.Card
}

func (w withCard) IsExposed(suit core.Suit, rank core.Rank) bool {
	if suit == w.card.Suit && rank == w.card.Rank {
		return true
	}
	return w.TableView.IsExposed(suit, rank)
}

func (w withCard) ExposedRanks(suit core.Suit) []core.Rank {
	ranks := w.TableView.ExposedRanks(suit)
	if suit != w.card.Suit || w.TableView.IsExposed(suit, w.card.Rank) {
		return ranks
	}
	out := make([]core.Rank, 0, len(ranks)+1)
	inserted := false
	for _, r := range ranks {
		if !inserted && w.card.Rank < r {
			out = append(out, w.card.Rank)
			inserted = true
		}
		out = append(out, r)
	}
	if !inserted {
		out = append(out, w.card.Rank)
	}
	return out
}
