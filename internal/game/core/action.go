package core

// PlayAction is a player's request to put a card on the table.
type PlayAction struct {
	PlayerID int
	Card     Card
}

// Validate checks the card against the table using IsPlayable.
func (a *PlayAction) Validate(table TableView) error {
	if !a.Card.Valid() {
		return ErrInvalidCard
	}
	if !IsPlayable(a.Card, table) {
		return ErrIllegalMove
	}
	return nil
}

// ApplyPlayAction validates the action and exposes the card.
func ApplyPlayAction(table *TableLayout, a *PlayAction) error {
	if err := a.Validate(table); err != nil {
		return err
	}
	table.Expose(a.Card.Suit, a.Card.Rank)
	return nil
}
