package core

import (
	"sort"
	"strings"

	"github.com/mitchelldurbincs/sevens/pkg/sevens"
)

// TableView is the read-only table a strategy sees.
type TableView = sevens.TableView

// TableLayout maps each suit to the set of ranks currently on the table.
// Within a round ranks are only ever added.
type TableLayout struct {
	exposed map[Suit]map[Rank]struct{}
}

// NewTableLayout creates an empty layout.
func NewTableLayout() *TableLayout {
	return &TableLayout{exposed: make(map[Suit]map[Rank]struct{})}
}

// NewPivotLayout creates a layout with every suit's pivot rank exposed.
func NewPivotLayout() *TableLayout {
	t := NewTableLayout()
	for s := Clubs; s <= Spades; s++ {
		t.Expose(s, SevenRank)
	}
	return t
}

func (t *TableLayout) IsExposed(suit Suit, rank Rank) bool {
	ranks, ok := t.exposed[suit]
	if !ok {
		return false
	}
	_, ok = ranks[rank]
	return ok
}

// Expose puts a rank on the table. Exposing an exposed rank is a no-op.
func (t *TableLayout) Expose(suit Suit, rank Rank) {
	ranks, ok := t.exposed[suit]
	if !ok {
		ranks = make(map[Rank]struct{})
		t.exposed[suit] = ranks
	}
	ranks[rank] = struct{}{}
}

// Clear drops every entry. Used at round boundaries.
func (t *TableLayout) Clear() {
	for s := range t.exposed {
		delete(t.exposed, s)
	}
}

// ExposedRanks returns the exposed ranks of a suit in ascending order.
func (t *TableLayout) ExposedRanks(suit Suit) []Rank {
	ranks := make([]Rank, 0, len(t.exposed[suit]))
	for r := range t.exposed[suit] {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

// Len returns the total number of exposed cards.
func (t *TableLayout) Len() int {
	n := 0
	for _, ranks := range t.exposed {
		n += len(ranks)
	}
	return n
}

// Clone returns a deep copy of the layout.
func (t *TableLayout) Clone() *TableLayout {
	out := NewTableLayout()
	for s, ranks := range t.exposed {
		for r := range ranks {
			out.Expose(s, r)
		}
	}
	return out
}

// Equal reports whether two layouts expose exactly the same cards.
func (t *TableLayout) Equal(other *TableLayout) bool {
	if t.Len() != other.Len() {
		return false
	}
	for s, ranks := range t.exposed {
		for r := range ranks {
			if !other.IsExposed(s, r) {
				return false
			}
		}
	}
	return true
}

// String renders one line per suit, e.g. "♠ 6 7 8".
func (t *TableLayout) String() string {
	var sb strings.Builder
	for s := Clubs; s <= Spades; s++ {
		sb.WriteString(s.Symbol())
		for _, r := range t.ExposedRanks(s) {
			sb.WriteString(" ")
			sb.WriteString(r.String())
		}
		if s != Spades {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// IsPlayable reports whether card may be played on table.
func IsPlayable(card Card, table TableView) bool {
	return sevens.IsPlayable(card, table)
}
