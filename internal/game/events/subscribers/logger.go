package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/events"
)

// LoggerSubscriber writes one structured log line per game event.
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	only     map[string]struct{}
	payload  bool
}

// NewLoggerSubscriber logs at logLevel; zerolog.NoLevel logs at info.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	if logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", id).Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given event types. An empty list
// logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	ls.only = nil
	if len(eventTypes) == 0 {
		return
	}
	ls.only = make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		ls.only[t] = struct{}{}
	}
}

// SetDevMode attaches the full JSON event to every line.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.payload = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.only == nil {
		return true
	}
	_, ok := ls.only[eventType]
	return ok
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	ev := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID())

	msg := describe(ev, event)

	if ls.payload {
		if data, err := json.Marshal(event); err == nil {
			ev.RawJSON("event_data", data)
		}
	}
	ev.Msg(msg)
}

// describe adds the fields of a known event and returns its log message.
func describe(ev *zerolog.Event, event events.Event) string {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		ev.Int("num_players", e.NumPlayers).
			Str("mode", e.Mode).
			Int("score_threshold", e.ScoreThreshold).
			Strs("players", e.PlayerNames)
		return "Game started"

	case *events.GameEndedEvent:
		ev.Int("rounds", e.Metadata.Round).
			Ints("scores", e.Scores).
			Dur("duration", e.Duration)
		if len(e.Placements) > 0 {
			ev.Int("winner", e.Placements[0].PlayerID)
		}
		return "Game ended"

	case *events.RoundStartedEvent:
		ev.Int("round", e.Metadata.Round)
		if e.Table != nil {
			ev.Int("exposed", e.Table.Len())
		}
		return "Round started"

	case *events.RoundEndedEvent:
		ev.Int("round", e.Metadata.Round).
			Bool("stalemate", e.Stalemate).
			Int("winner", e.Winner).
			Ints("penalties", e.Penalties).
			Ints("scores", e.Scores)
		return "Round ended"

	case *events.CardsDealtEvent:
		ev.Int("round", e.Metadata.Round).Ints("hand_sizes", e.HandSizes)
		return "Cards dealt"

	case *events.CardPlayedEvent:
		ev.Int("round", e.Metadata.Round).
			Int("turn", e.Metadata.Turn).
			Int("player_id", e.PlayerID).
			Stringer("card", e.Card).
			Int("cards_left", e.CardsLeft)
		return "Card played"

	case *events.PlayerPassedEvent:
		ev.Int("round", e.Metadata.Round).
			Int("turn", e.Metadata.Turn).
			Int("player_id", e.PlayerID).
			Int("cards_left", e.CardsLeft)
		return "Player passed"

	case *events.MoveRejectedEvent:
		ev.Int("round", e.Metadata.Round).
			Int("turn", e.Metadata.Turn).
			Int("player_id", e.PlayerID).
			Stringer("card", e.Card).
			AnErr("reason", e.Err)
		return "Move rejected"

	case *events.PlayerFinishedEvent:
		ev.Int("round", e.Metadata.Round).
			Int("player_id", e.PlayerID).
			Int("rank", e.Rank)
		return "Player finished"

	case *events.StateTransitionEvent:
		ev.Str("from", e.FromState).
			Str("to", e.ToState).
			Str("reason", e.Reason)
		return "Phase changed"
	}
	return "Game event"
}
