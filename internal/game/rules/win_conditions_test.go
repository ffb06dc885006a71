package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

func ranksArePermutation(t *testing.T, placements []core.Placement, n int) {
	t.Helper()
	require.Len(t, placements, n)
	seenIDs := make(map[int]bool)
	for i, p := range placements {
		assert.Equal(t, i+1, p.Rank)
		assert.False(t, seenIDs[p.PlayerID], "duplicate player %d", p.PlayerID)
		seenIDs[p.PlayerID] = true
	}
}

func TestRankByCardsRemaining(t *testing.T) {
	tests := []struct {
		name      string
		finished  []int
		remaining []int
		want      []core.Placement
	}{
		{
			name:      "nobody finished, ties to lower id",
			remaining: []int{3, 1, 3, 0},
			want:      []core.Placement{{PlayerID: 3, Rank: 1}, {PlayerID: 1, Rank: 2}, {PlayerID: 0, Rank: 3}, {PlayerID: 2, Rank: 4}},
		},
		{
			name:      "finished players keep their order",
			finished:  []int{2, 0},
			remaining: []int{0, 5, 0, 2},
			want:      []core.Placement{{PlayerID: 2, Rank: 1}, {PlayerID: 0, Rank: 2}, {PlayerID: 3, Rank: 3}, {PlayerID: 1, Rank: 4}},
		},
		{
			name:      "everyone finished",
			finished:  []int{1, 2, 0},
			remaining: []int{0, 0, 0},
			want:      []core.Placement{{PlayerID: 1, Rank: 1}, {PlayerID: 2, Rank: 2}, {PlayerID: 0, Rank: 3}},
		},
		{
			name:      "bogus finished ids ignored",
			finished:  []int{7, 1, 1, -1},
			remaining: []int{4, 0, 4},
			want:      []core.Placement{{PlayerID: 1, Rank: 1}, {PlayerID: 0, Rank: 2}, {PlayerID: 2, Rank: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankByCardsRemaining(tt.finished, tt.remaining)
			assert.Equal(t, tt.want, got)
			ranksArePermutation(t, got, len(tt.remaining))
		})
	}
}

func TestRoundPenaltiesAndRoundOver(t *testing.T) {
	hands := []core.Hand{
		{core.NewCard(core.Clubs, 0), core.NewCard(core.Clubs, 1)},
		nil,
		{core.NewCard(core.Spades, 12)},
	}
	assert.Equal(t, []int{2, 0, 1}, RoundPenalties(hands))
	assert.False(t, IsRoundOver(hands))

	hands[0] = nil
	assert.True(t, IsRoundOver(hands))
	assert.True(t, IsRoundOver([]core.Hand{nil, nil, nil}))
}

func TestWinConditionChecker(t *testing.T) {
	wc := NewWinConditionChecker(zerolog.Nop(), DefaultScoreThreshold, 10)
	assert.Equal(t, 50, wc.Threshold())

	t.Run("CheckGameOver", func(t *testing.T) {
		over, reason := wc.CheckGameOver([]int{10, 49, 0}, 3)
		assert.False(t, over)
		assert.Empty(t, reason)

		over, reason = wc.CheckGameOver([]int{10, 50, 0}, 3)
		assert.True(t, over)
		assert.Equal(t, "score threshold reached", reason)

		over, reason = wc.CheckGameOver([]int{0, 0, 0}, 10)
		assert.True(t, over)
		assert.Equal(t, "round cap reached", reason)

		uncapped := NewWinConditionChecker(zerolog.Nop(), 50, 0)
		over, _ = uncapped.CheckGameOver([]int{0, 0, 0}, 100000)
		assert.False(t, over)
	})

	t.Run("RankByScore single reacher is last", func(t *testing.T) {
		got := wc.RankByScore([]int{12, 55, 3, 12})
		assert.Equal(t, []core.Placement{{PlayerID: 2, Rank: 1}, {PlayerID: 0, Rank: 2}, {PlayerID: 3, Rank: 3}, {PlayerID: 1, Rank: 4}}, got)
	})

	t.Run("RankByScore several reachers", func(t *testing.T) {
		got := wc.RankByScore([]int{60, 51, 20, 51, 49})
		assert.Equal(t, []core.Placement{{PlayerID: 2, Rank: 1}, {PlayerID: 4, Rank: 2}, {PlayerID: 1, Rank: 3}, {PlayerID: 3, Rank: 4}, {PlayerID: 0, Rank: 5}}, got)
		ranksArePermutation(t, got, 5)
	})

	t.Run("RankByScore nobody reached", func(t *testing.T) {
		got := wc.RankByScore([]int{4, 4, 1})
		assert.Equal(t, []core.Placement{{PlayerID: 2, Rank: 1}, {PlayerID: 0, Rank: 2}, {PlayerID: 1, Rank: 3}}, got)
	})
}
