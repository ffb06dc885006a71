package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

func TestPlayableIndices(t *testing.T) {
	table := core.NewTableLayout()
	table.Expose(core.Hearts, core.SevenRank)
	table.Expose(core.Hearts, core.SevenRank+1)

	hand := []core.Card{
		core.NewCard(core.Hearts, core.SevenRank+2), // 9♥ next to 8♥
		core.NewCard(core.Clubs, core.SevenRank),    // unclaimed pivot
		core.NewCard(core.Hearts, core.SevenRank-2), // 5♥ not adjacent
		core.NewCard(core.Hearts, core.SevenRank-1), // 6♥ next to 7♥
		core.NewCard(core.Spades, core.SevenRank+1), // spades not opened
		core.NewCard(core.Suit(9), core.SevenRank),  // invalid
	}

	assert.Equal(t, []int{0, 1, 3}, PlayableIndices(hand, table))
	assert.Nil(t, PlayableIndices(nil, table))

	lmc := NewLegalMoveCalculator()
	assert.Equal(t, []bool{true, true, false, true, false, false}, lmc.GetLegalCardMask(hand, table))
	assert.True(t, lmc.HasLegalMove(hand, table))
	assert.False(t, lmc.HasLegalMove(hand[4:], table))
	assert.Empty(t, lmc.GetLegalCardMask(nil, table))
}
