package core

import "github.com/mitchelldurbincs/sevens/pkg/sevens"

// Card types are defined by the public plugin contract and aliased here so
// the engine packages keep a single import.
type (
	Suit = sevens.Suit
	Rank = sevens.Rank
	Card = sevens.Card
)

const (
	Clubs    = sevens.Clubs
	Diamonds = sevens.Diamonds
	Hearts   = sevens.Hearts
	Spades   = sevens.Spades

	NumSuits = sevens.NumSuits

	MinRank   = sevens.MinRank
	MaxRank   = sevens.MaxRank
	SevenRank = sevens.SevenRank
	NumRanks  = sevens.NumRanks
)

// NewCard builds a card without validating it.
func NewCard(suit Suit, rank Rank) Card {
	return sevens.NewCard(suit, rank)
}

// Hand is a player's ordered collection of cards.
type Hand []Card

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Remove deletes the card at index, preserving order. Out of range indices
// leave the hand untouched.
func (h Hand) Remove(index int) Hand {
	if index < 0 || index >= len(h) {
		return h
	}
	return append(h[:index], h[index+1:]...)
}

// Contains reports whether the hand holds the card.
func (h Hand) Contains(c Card) bool {
	return h.IndexOf(c) >= 0
}

// IndexOf returns the index of the first matching card or -1.
func (h Hand) IndexOf(c Card) int {
	for i, card := range h {
		if card == c {
			return i
		}
	}
	return -1
}

// Placement is one entry of a game result: rank 1 is the best.
type Placement struct {
	PlayerID int `json:"player_id"`
	Rank     int `json:"rank"`
}

// NamedPlacement is a placement keyed by player name instead of seat.
type NamedPlacement struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}
