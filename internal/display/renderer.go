// Package display renders a running game as a human-readable trace.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/events"
)

// SubscriberID is the event bus ID of a Renderer.
const SubscriberID = "display"

// Renderer is an event subscriber that prints the game trace and final
// ranking to a writer. It only observes; it never touches game state.
type Renderer struct {
	mu    sync.Mutex
	w     io.Writer
	names []string
	err   error
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) ID() string { return SubscriberID }

func (r *Renderer) InterestedIn(eventType string) bool {
	return eventType != events.TypeStateTransition
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Renderer) HandleEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		r.names = append([]string(nil), e.PlayerNames...)
		r.printf("%s", pterm.DefaultHeader.WithFullWidth(false).Sprintf("Sevens: %d players, %s", e.NumPlayers, e.Mode))
		for id := range r.names {
			r.printf("  seat %d: %s\n", id, pterm.LightCyan(r.name(id)))
		}

	case *events.RoundStartedEvent:
		r.printf("%s", pterm.DefaultSection.Sprintf("Round %d", e.Metadata.Round))
		if e.Table != nil && e.Table.Len() > 0 {
			r.printf("Table seeded with %d card(s)\n", e.Table.Len())
		}

	case *events.CardsDealtEvent:
		parts := make([]string, len(e.HandSizes))
		for id, n := range e.HandSizes {
			parts[id] = fmt.Sprintf("%s=%d", r.name(id), n)
		}
		r.printf("Dealt: %s\n", strings.Join(parts, ", "))

	case *events.CardPlayedEvent:
		r.printf("  %s plays %s (%d left)\n", r.name(e.PlayerID), pterm.LightYellow(e.Card.String()), e.CardsLeft)

	case *events.PlayerPassedEvent:
		r.printf("  %s passes (%d left)\n", r.name(e.PlayerID), e.CardsLeft)

	case *events.MoveRejectedEvent:
		r.printf("  %s\n", pterm.LightRed(fmt.Sprintf("%s tried %s: %v, counted as a pass", r.name(e.PlayerID), e.Card, e.Err)))

	case *events.PlayerFinishedEvent:
		r.printf("  %s\n", pterm.LightGreen(fmt.Sprintf("%s finished at rank %d", r.name(e.PlayerID), e.Rank)))

	case *events.RoundEndedEvent:
		r.renderRoundEnd(e)

	case *events.GameEndedEvent:
		r.renderRanking(e.Placements, e.Scores)
	}
}

func (r *Renderer) renderRoundEnd(e *events.RoundEndedEvent) {
	if e.Stalemate {
		r.printf("Round %d ended in a stalemate\n", e.Metadata.Round)
	} else {
		r.printf("Round %d over\n", e.Metadata.Round)
	}
	if e.Table != nil {
		r.printf("%s\n", pterm.DefaultBox.WithTitle("Table").Sprint(e.Table.String()))
	}
	if len(e.Scores) == 0 {
		return
	}
	data := pterm.TableData{{"Player", "Penalty", "Score"}}
	for id, score := range e.Scores {
		penalty := 0
		if id < len(e.Penalties) {
			penalty = e.Penalties[id]
		}
		data = append(data, []string{r.name(id), strconv.Itoa(penalty), strconv.Itoa(score)})
	}
	r.renderTable(data)
}

func (r *Renderer) renderRanking(placements []core.Placement, scores []int) {
	r.printf("%s", pterm.DefaultSection.Sprint("Final ranking"))
	header := []string{"Rank", "Player"}
	if len(scores) > 0 {
		header = append(header, "Score")
	}
	data := pterm.TableData{header}
	for _, p := range placements {
		row := []string{strconv.Itoa(p.Rank), r.name(p.PlayerID)}
		if len(scores) > 0 && p.PlayerID < len(scores) {
			row = append(row, strconv.Itoa(scores[p.PlayerID]))
		}
		data = append(data, row)
	}
	r.renderTable(data)
}

func (r *Renderer) renderTable(data pterm.TableData) {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		r.setErr(err)
		return
	}
	r.printf("%s\n", out)
}

func (r *Renderer) name(id int) string {
	if id >= 0 && id < len(r.names) && r.names[id] != "" {
		return fmt.Sprintf("%s-%d", r.names[id], id)
	}
	return fmt.Sprintf("player-%d", id)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil {
		r.setErr(err)
	}
}

func (r *Renderer) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// FinalRankLines formats placements as "name-id -> Final Rank r", one per player.
func FinalRankLines(placements []core.Placement, names []string) []string {
	lines := make([]string, len(placements))
	for i, p := range placements {
		name := "player"
		if p.PlayerID >= 0 && p.PlayerID < len(names) && names[p.PlayerID] != "" {
			name = names[p.PlayerID]
		}
		lines[i] = fmt.Sprintf("%s-%d -> Final Rank %d", name, p.PlayerID, p.Rank)
	}
	return lines
}
