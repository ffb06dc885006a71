// Package deck provides the card-source and table-seed collaborators: it
// reads card lists and starting layouts from text files and falls back to a
// standard deck when no file is usable.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Standard returns the 52-card deck ordered by suit then rank.
func Standard() []core.Card {
	cards := make([]core.Card, 0, core.NumSuits*core.NumRanks)
	for s := core.Clubs; s <= core.Spades; s++ {
		for r := core.MinRank; r <= core.MaxRank; r++ {
			cards = append(cards, core.NewCard(s, r))
		}
	}
	return cards
}

// StandardMap returns the standard deck keyed by card ID 0..51.
func StandardMap() map[uint64]core.Card {
	return ToMap(Standard())
}

// ToMap keys cards by their position in the slice.
func ToMap(cards []core.Card) map[uint64]core.Card {
	m := make(map[uint64]core.Card, len(cards))
	for i, c := range cards {
		m[uint64(i)] = c
	}
	return m
}

// FromMap returns the cards ordered by card ID.
func FromMap(m map[uint64]core.Card) []core.Card {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	cards := make([]core.Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, m[id])
	}
	return cards
}

// Shuffle permutes the cards in place with the given source.
func Shuffle(cards []core.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Deal distributes cards round-robin starting at seat 0 until the cards run
// out. Hand sizes differ by at most one.
func Deal(cards []core.Card, numPlayers int) []core.Hand {
	if numPlayers <= 0 {
		return nil
	}
	hands := make([]core.Hand, numPlayers)
	per := len(cards)/numPlayers + 1
	for i := range hands {
		hands[i] = make(core.Hand, 0, per)
	}
	for i, c := range cards {
		seat := i % numPlayers
		hands[seat] = append(hands[seat], c)
	}
	return hands
}

// LoadCards reads "suit rank" lines from path. Malformed lines are logged and
// skipped. A missing or unreadable file yields the standard deck.
func LoadCards(path string, logger zerolog.Logger) (map[uint64]core.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Info().Str("path", path).Err(err).Msg("Card file not usable, generating standard deck")
		return StandardMap(), nil
	}
	defer f.Close()

	cards, err := ParseCards(f, logger)
	if err != nil {
		return nil, fmt.Errorf("reading cards from %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("cards", len(cards)).Msg("Cards loaded from file")
	return cards, nil
}

// ParseCards reads "suit rank" lines. Lines starting with '#' are comments.
func ParseCards(r io.Reader, logger zerolog.Logger) (map[uint64]core.Card, error) {
	cards := make(map[uint64]core.Card)
	var id uint64
	err := scanPairs(r, func(lineNo int, line string, suit, rank int, perr error) {
		if perr != nil {
			logger.Warn().Int("line", lineNo).Str("content", line).Err(perr).Msg("Skipping malformed card line")
			return
		}
		cards[id] = core.NewCard(core.Suit(suit), core.Rank(rank))
		id++
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// LoadInitialLayout reads the starting table from "suit rank" lines. Only
// pivot cards are accepted; anything else is logged and ignored. A missing
// or unreadable file exposes every suit's pivot.
func LoadInitialLayout(path string, logger zerolog.Logger) (*core.TableLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Info().Str("path", path).Err(err).Msg("Layout file not usable, exposing every pivot")
		return core.NewPivotLayout(), nil
	}
	defer f.Close()

	layout, err := ParseLayout(f, logger)
	if err != nil {
		return nil, fmt.Errorf("reading layout from %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("exposed", layout.Len()).Msg("Table layout loaded from file")
	return layout, nil
}

// ParseLayout reads pivot cards from "suit rank" lines.
func ParseLayout(r io.Reader, logger zerolog.Logger) (*core.TableLayout, error) {
	layout := core.NewTableLayout()
	err := scanPairs(r, func(lineNo int, line string, suit, rank int, perr error) {
		if perr != nil {
			logger.Warn().Int("line", lineNo).Str("content", line).Err(perr).Msg("Skipping malformed layout line")
			return
		}
		c := core.NewCard(core.Suit(suit), core.Rank(rank))
		if !c.Valid() || !c.IsPivot() {
			logger.Warn().Int("suit", suit).Int("rank", rank).Msg("Ignoring non-pivot card in layout")
			return
		}
		layout.Expose(c.Suit, c.Rank)
	})
	if err != nil {
		return nil, err
	}
	return layout, nil
}

var errFormat = errors.New("expected two integers: suit rank")

func scanPairs(r io.Reader, fn func(lineNo int, line string, suit, rank int, err error)) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			fn(lineNo, line, 0, 0, errFormat)
			continue
		}
		suit, err1 := strconv.Atoi(fields[0])
		rank, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			fn(lineNo, line, 0, 0, errFormat)
			continue
		}
		fn(lineNo, line, suit, rank, nil)
	}
	return scanner.Err()
}
