package game

import "github.com/mitchelldurbincs/sevens/internal/game/core"

type Player struct {
	ID       int
	Name     string
	Hand     core.Hand
	Score    int // cumulative penalty points
	Finished bool
	Rank     int // finishing rank in the current round, 0 while playing
}

type GameState struct {
	Round       int
	Turn        int // turns taken in the current round
	Table       *core.TableLayout
	Players     []Player
	FinishOrder []int
	SincePlay   int // consecutive turns without a play
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	clone := &GameState{
		Round:       gs.Round,
		Turn:        gs.Turn,
		Players:     make([]Player, len(gs.Players)),
		FinishOrder: append([]int(nil), gs.FinishOrder...),
		SincePlay:   gs.SincePlay,
	}
	if gs.Table != nil {
		clone.Table = gs.Table.Clone()
	}
	for i, p := range gs.Players {
		p.Hand = p.Hand.Clone()
		clone.Players[i] = p
	}
	return clone
}

// Hands returns the live hands indexed by seat
func (gs *GameState) Hands() []core.Hand {
	hands := make([]core.Hand, len(gs.Players))
	for i := range gs.Players {
		hands[i] = gs.Players[i].Hand
	}
	return hands
}

// Scores returns the cumulative scores indexed by seat
func (gs *GameState) Scores() []int {
	scores := make([]int, len(gs.Players))
	for i := range gs.Players {
		scores[i] = gs.Players[i].Score
	}
	return scores
}

// ActiveCount returns the number of players still taking turns
func (gs *GameState) ActiveCount() int {
	n := 0
	for i := range gs.Players {
		if !gs.Players[i].Finished {
			n++
		}
	}
	return n
}
