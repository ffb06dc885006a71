package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/mitchelldurbincs/sevens/internal/display"
	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// This file contains all text rendering functionality for the game engine.

// withRenderer subscribes a display renderer for the duration of fn.
func (e *Engine) withRenderer(w io.Writer, fn func() error) error {
	renderer := display.NewRenderer(w)
	e.eventBus.Subscribe(renderer)
	defer e.eventBus.Unsubscribe(renderer.ID())

	if err := fn(); err != nil {
		return err
	}
	if err := renderer.Err(); err != nil {
		e.logger.Warn().Err(err).Msg("Game trace was not fully written")
	}
	return nil
}

// Board returns the table followed by playerID's hand, with playable cards
// highlighted. A negative playerID renders only the table.
func (e *Engine) Board(playerID int) string {
	var sb strings.Builder

	table := e.Table()
	for s := core.Clubs; s <= core.Spades; s++ {
		sb.WriteString(s.Symbol())
		sb.WriteString(" ")
		for r := core.MinRank; r <= core.MaxRank; r++ {
			if table.IsExposed(s, r) {
				sb.WriteString(fmt.Sprintf("%3s", r.String()))
			} else {
				sb.WriteString("  ·")
			}
		}
		sb.WriteString("\n")
	}

	if e.gs == nil || playerID < 0 || playerID >= len(e.gs.Players) {
		return sb.String()
	}

	p := e.gs.Players[playerID]
	sb.WriteString(fmt.Sprintf("\n%s-%d:", p.Name, playerID))
	legal := e.legalMoves.GetLegalCardMask(p.Hand, table)
	for i, c := range p.Hand {
		sb.WriteString(" ")
		if legal[i] {
			sb.WriteString(pterm.LightGreen(c.String()))
		} else {
			sb.WriteString(c.String())
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
