package testutil

import (
	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// ObservedMove is one ObserveMove call seen by a RecordingStrategy.
type ObservedMove struct {
	PlayerID int
	Card     core.Card
}

// RecordingStrategy records every call the engine makes and delegates the
// choice to Choose. A nil Choose always passes.
type RecordingStrategy struct {
	StrategyName string
	Choose       func(hand []core.Card, table core.TableView) int

	Initialized []int
	Moves       []ObservedMove
	Passes      []int
	HandSizes   []int
}

func (s *RecordingStrategy) Initialize(playerID int) {
	s.Initialized = append(s.Initialized, playerID)
}

func (s *RecordingStrategy) SelectCardToPlay(hand []core.Card, table core.TableView) int {
	s.HandSizes = append(s.HandSizes, len(hand))
	if s.Choose == nil {
		return -1
	}
	return s.Choose(hand, table)
}

func (s *RecordingStrategy) ObserveMove(playerID int, card core.Card) {
	s.Moves = append(s.Moves, ObservedMove{PlayerID: playerID, Card: card})
}

func (s *RecordingStrategy) ObservePass(playerID int) {
	s.Passes = append(s.Passes, playerID)
}

func (s *RecordingStrategy) Name() string {
	if s.StrategyName == "" {
		return "RecordingStrategy"
	}
	return s.StrategyName
}

// NewPassStrategy returns a strategy that never plays.
func NewPassStrategy() *RecordingStrategy {
	return &RecordingStrategy{StrategyName: "PassStrategy"}
}

// NewFixedIndexStrategy always answers index, whatever the hand.
func NewFixedIndexStrategy(index int) *RecordingStrategy {
	return &RecordingStrategy{
		StrategyName: "FixedIndexStrategy",
		Choose:       func([]core.Card, core.TableView) int { return index },
	}
}

// NewFirstPlayableStrategy plays the first playable card in hand order.
func NewFirstPlayableStrategy() *RecordingStrategy {
	return &RecordingStrategy{
		StrategyName: "FirstPlayableStrategy",
		Choose: func(hand []core.Card, table core.TableView) int {
			for i, c := range hand {
				if core.IsPlayable(c, table) {
					return i
				}
			}
			return -1
		},
	}
}

// NewFirstUnplayableStrategy always names a card the rules reject, or passes
// when every card is playable.
func NewFirstUnplayableStrategy() *RecordingStrategy {
	return &RecordingStrategy{
		StrategyName: "FirstUnplayableStrategy",
		Choose: func(hand []core.Card, table core.TableView) int {
			for i, c := range hand {
				if !core.IsPlayable(c, table) {
					return i
				}
			}
			return -1
		},
	}
}

// NewPanicStrategy panics on every selection.
func NewPanicStrategy() *RecordingStrategy {
	return &RecordingStrategy{
		StrategyName: "PanicStrategy",
		Choose:       func([]core.Card, core.TableView) int { panic("strategy failure") },
	}
}
