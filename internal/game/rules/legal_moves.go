package rules

import "github.com/mitchelldurbincs/sevens/internal/game/core"

// LegalMoveCalculator computes which cards of a hand can be played
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalCardMask returns one flag per hand position, true when that card
// may be played on the table.
func (lmc *LegalMoveCalculator) GetLegalCardMask(hand []core.Card, table core.TableView) []bool {
	mask := make([]bool, len(hand))
	for i, card := range hand {
		mask[i] = core.IsPlayable(card, table)
	}
	return mask
}

// HasLegalMove reports whether any card in hand is playable.
func (lmc *LegalMoveCalculator) HasLegalMove(hand []core.Card, table core.TableView) bool {
	for _, card := range hand {
		if core.IsPlayable(card, table) {
			return true
		}
	}
	return false
}

// PlayableIndices returns the hand positions of every playable card, in hand order.
func PlayableIndices(hand []core.Card, table core.TableView) []int {
	var indices []int
	for i, card := range hand {
		if core.IsPlayable(card, table) {
			indices = append(indices, i)
		}
	}
	return indices
}
