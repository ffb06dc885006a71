package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Valid(t *testing.T) {
	assert.True(t, NewCard(Clubs, MinRank).Valid())
	assert.True(t, NewCard(Spades, MaxRank).Valid())
	assert.False(t, NewCard(Suit(-1), 3).Valid())
	assert.False(t, NewCard(Suit(4), 3).Valid())
	assert.False(t, NewCard(Hearts, -1).Valid())
	assert.False(t, NewCard(Hearts, 13).Valid())
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "7♠", NewCard(Spades, SevenRank).String())
	assert.Equal(t, "A♣", NewCard(Clubs, 0).String())
	assert.Equal(t, "K♥", NewCard(Hearts, 12).String())
	assert.Equal(t, "10♦", NewCard(Diamonds, 9).String())
}

func TestCard_Equality(t *testing.T) {
	assert.Equal(t, NewCard(Hearts, 4), Card{Suit: Hearts, Rank: 4})
	assert.NotEqual(t, NewCard(Hearts, 4), NewCard(Spades, 4))
}

func TestHand_Remove(t *testing.T) {
	hand := Hand{NewCard(Clubs, 1), NewCard(Clubs, 2), NewCard(Clubs, 3)}

	hand = hand.Remove(1)
	assert.Equal(t, Hand{NewCard(Clubs, 1), NewCard(Clubs, 3)}, hand)

	hand = hand.Remove(5)
	assert.Len(t, hand, 2)
	hand = hand.Remove(-1)
	assert.Len(t, hand, 2)
}

func TestHand_CloneIsIndependent(t *testing.T) {
	hand := Hand{NewCard(Clubs, 1), NewCard(Clubs, 2)}
	clone := hand.Clone()
	clone[0] = NewCard(Spades, 12)

	assert.Equal(t, NewCard(Clubs, 1), hand[0])
	assert.True(t, hand.Contains(NewCard(Clubs, 2)))
	assert.Equal(t, -1, hand.IndexOf(NewCard(Spades, 12)))
	assert.Nil(t, Hand(nil).Clone())
}
