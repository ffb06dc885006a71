package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		action   *PlayAction
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			action: &PlayAction{PlayerID: 1, Card: NewCard(Spades, SevenRank)},
			err:    nil,
			isNil:  true,
		},
		{
			name:     "illegal move with card",
			action:   &PlayAction{PlayerID: 1, Card: NewCard(Spades, 9)},
			err:      ErrIllegalMove,
			expected: "player 1: play 10♠: illegal move",
		},
		{
			name:     "invalid card",
			action:   &PlayAction{PlayerID: 2, Card: NewCard(7, 40)},
			err:      ErrInvalidCard,
			expected: "player 2: play Card(suit=7, rank=40): invalid card",
		},
		{
			name:     "generic action fallback",
			action:   nil,
			err:      ErrIllegalMove,
			expected: "player action: illegal move",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapGameStateError(t *testing.T) {
	tests := []struct {
		name     string
		round    int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{name: "nil error returns nil", round: 1, phase: "dealing", isNil: true},
		{
			name:     "turn loop error",
			round:    3,
			phase:    "turn loop",
			err:      ErrIllegalMove,
			expected: "game round 3 [turn loop]: illegal move",
		},
		{
			name:     "plain error",
			round:    1,
			phase:    "dealing",
			err:      fmt.Errorf("empty deck"),
			expected: "game round 1 [dealing]: empty deck",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapGameStateError(tt.round, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapPlayerError(t *testing.T) {
	assert.Nil(t, WrapPlayerError(1, "select card", nil))

	err := WrapPlayerError(3, "select card", ErrInvalidStrategyResponse)
	assert.Equal(t, "player 3 select card: invalid strategy response", err.Error())
	assert.ErrorIs(t, err, ErrInvalidStrategyResponse)
}

func TestGameError(t *testing.T) {
	t.Run("with player ID", func(t *testing.T) {
		err := NewGameError(2, 4, "select card", ErrInvalidStrategyResponse)
		assert.Equal(t, "round 2: player 4 select card: invalid strategy response", err.Error())
		assert.ErrorIs(t, err, ErrInvalidStrategyResponse)
	})

	t.Run("without player ID", func(t *testing.T) {
		err := NewGameError(5, -1, "deal", ErrInvalidConfiguration)
		assert.Equal(t, "round 5: deal: invalid configuration", err.Error())
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		gameErr := NewGameError(7, 1, "observe move", fmt.Errorf("boom"))

		var extracted *GameError
		require.True(t, errors.As(fmt.Errorf("wrapped: %w", gameErr), &extracted))
		assert.Equal(t, 7, extracted.Round)
		assert.Equal(t, 1, extracted.PlayerID)
		assert.Equal(t, "observe move", extracted.Operation)
	})
}

func TestMissingStrategyIsConfigurationError(t *testing.T) {
	assert.ErrorIs(t, ErrMissingStrategy, ErrInvalidConfiguration)
	assert.NotErrorIs(t, ErrResolution, ErrInvalidConfiguration)
}
