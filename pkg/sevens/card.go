package sevens

import "fmt"

// Suit identifies one of the four card suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// Rank is a 0-indexed card rank: 0 is the ace, 12 the king.
type Rank int

const (
	MinRank Rank = 0
	MaxRank Rank = 12
	// SevenRank is the pivot rank that opens a suit on the table.
	SevenRank Rank = 6
)

// NumRanks is the number of ranks per suit.
const NumRanks = int(MaxRank-MinRank) + 1

var suitSymbols = [NumSuits]string{"♣", "♦", "♥", "♠"}
var suitNames = [NumSuits]string{"Clubs", "Diamonds", "Hearts", "Spades"}

// Valid reports whether the suit is one of the four standard suits.
func (s Suit) Valid() bool { return s >= Clubs && s <= Spades }

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Valid reports whether the rank lies in MinRank..MaxRank.
func (r Rank) Valid() bool { return r >= MinRank && r <= MaxRank }

// Display returns the conventional 1..13 rank value.
func (r Rank) Display() int { return int(r) + 1 }

func (r Rank) String() string {
	switch r {
	case 0:
		return "A"
	case 10:
		return "J"
	case 11:
		return "Q"
	case 12:
		return "K"
	}
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return fmt.Sprintf("%d", r.Display())
}

// Card is an immutable (suit, rank) pair. Cards compare with ==.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard builds a card without validating it. Invalid cards are rejected
// when they are played, not when they are created.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Valid reports whether both suit and rank are in range.
func (c Card) Valid() bool { return c.Suit.Valid() && c.Rank.Valid() }

// IsPivot reports whether the card has the pivot rank.
func (c Card) IsPivot() bool { return c.Rank == SevenRank }

func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Card(suit=%d, rank=%d)", int(c.Suit), int(c.Rank))
	}
	return c.Rank.String() + c.Suit.Symbol()
}
