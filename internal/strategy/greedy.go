package strategy

import (
	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// GreedyStrategy plays the highest playable rank, first in hand on ties.
type GreedyStrategy struct {
	base
}

func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

func (s *GreedyStrategy) SelectCardToPlay(hand []core.Card, table core.TableView) int {
	best := Pass
	for i, card := range hand {
		if !core.IsPlayable(card, table) {
			continue
		}
		if best == Pass || card.Rank > hand[best].Rank {
			best = i
		}
	}
	return best
}

func (s *GreedyStrategy) Name() string { return "GreedyStrategy" }
