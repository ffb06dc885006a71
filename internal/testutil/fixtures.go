package testutil

import (
	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Card is shorthand for core.NewCard in table-driven tests.
func Card(suit core.Suit, rank core.Rank) core.Card {
	return core.NewCard(suit, rank)
}

// SuitRun returns ranks lo..hi of one suit in ascending order.
func SuitRun(suit core.Suit, lo, hi core.Rank) []core.Card {
	var cards []core.Card
	for r := lo; r <= hi; r++ {
		cards = append(cards, core.NewCard(suit, r))
	}
	return cards
}

// CreateTestTable returns a layout with the given cards exposed.
func CreateTestTable(cards ...core.Card) *core.TableLayout {
	table := core.NewTableLayout()
	for _, c := range cards {
		table.Expose(c.Suit, c.Rank)
	}
	return table
}

// CardMap numbers cards from zero the way a card source would.
func CardMap(cards []core.Card) map[uint64]core.Card {
	m := make(map[uint64]core.Card, len(cards))
	for i, c := range cards {
		m[uint64(i)] = c
	}
	return m
}
