// Package strategy defines the contract every Sevens player implements and
// ships the built-in Random, Greedy and Smart players.
package strategy

import (
	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/pkg/sevens"
)

// Pass is the index a strategy returns when it does not play.
const Pass = sevens.Pass

// Strategy is the player contract published in pkg/sevens.
type Strategy = sevens.Strategy

// base holds the seat a strategy was initialized with.
type base struct {
	playerID int
}

func (b *base) Initialize(playerID int) { b.playerID = playerID }

// PlayerID returns the seat passed to Initialize.
func (b *base) PlayerID() int { return b.playerID }

func (b *base) ObserveMove(int, core.Card) {}

func (b *base) ObservePass(int) {}
