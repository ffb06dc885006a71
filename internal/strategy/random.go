package strategy

import (
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
)

// RandomStrategy plays a uniformly chosen playable card.
type RandomStrategy struct {
	base
	rng *rand.Rand
}

// NewRandomStrategy creates a random player. A nil rng is seeded from the clock.
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) SelectCardToPlay(hand []core.Card, table core.TableView) int {
	playable := rules.PlayableIndices(hand, table)
	if len(playable) == 0 {
		return Pass
	}
	return playable[s.rng.Intn(len(playable))]
}

func (s *RandomStrategy) Name() string { return "RandomStrategy" }
