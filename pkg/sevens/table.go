package sevens

// TableView is the read-only face of the table handed to strategies.
type TableView interface {
	IsExposed(suit Suit, rank Rank) bool
	ExposedRanks(suit Suit) []Rank
}

// IsPlayable is the single legality rule of the game. A card is playable
// when it is a pivot and its suit has no pivot exposed yet, or when its
// suit is open and a neighbouring rank is already on the table.
func IsPlayable(card Card, table TableView) bool {
	if !card.Valid() {
		return false
	}
	suitOpen := table.IsExposed(card.Suit, SevenRank)
	if card.Rank == SevenRank && !suitOpen {
		return true
	}
	if !suitOpen {
		return false
	}
	if card.Rank > MinRank && table.IsExposed(card.Suit, card.Rank-1) {
		return true
	}
	return card.Rank < MaxRank && table.IsExposed(card.Suit, card.Rank+1)
}
