package deck

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

func TestStandard(t *testing.T) {
	cards := Standard()
	require.Len(t, cards, 52)

	seen := make(map[core.Card]bool)
	for _, c := range cards {
		assert.True(t, c.Valid(), "card %v should be valid", c)
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Equal(t, core.NewCard(core.Clubs, 0), cards[0])
	assert.Equal(t, core.NewCard(core.Spades, 12), cards[51])
}

func TestMapRoundTripKeepsOrder(t *testing.T) {
	cards := Standard()
	assert.Equal(t, cards, FromMap(ToMap(cards)))
}

func TestDeal_SizesWithinOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for players := 3; players <= 7; players++ {
		for _, k := range []int{0, 1, 12, 13, 52} {
			cards := Standard()[:k]
			Shuffle(cards, rng)
			hands := Deal(cards, players)
			require.Len(t, hands, players)

			total, minSize, maxSize := 0, k, 0
			for _, h := range hands {
				total += len(h)
				if len(h) < minSize {
					minSize = len(h)
				}
				if len(h) > maxSize {
					maxSize = len(h)
				}
			}
			assert.Equal(t, k, total, "players=%d k=%d", players, k)
			assert.LessOrEqual(t, maxSize-minSize, 1, "players=%d k=%d", players, k)
		}
	}
}

func TestDeal_RoundRobinFromSeatZero(t *testing.T) {
	cards := Standard()[:5]
	hands := Deal(cards, 3)
	assert.Equal(t, core.Hand{cards[0], cards[3]}, hands[0])
	assert.Equal(t, core.Hand{cards[1], cards[4]}, hands[1])
	assert.Equal(t, core.Hand{cards[2]}, hands[2])
	assert.Nil(t, Deal(cards, 0))
}

func TestShuffle_Deterministic(t *testing.T) {
	a, b := Standard(), Standard()
	Shuffle(a, rand.New(rand.NewSource(42)))
	Shuffle(b, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
	assert.NotEqual(t, Standard(), a)
}

func TestParseCards(t *testing.T) {
	input := "# deck\n0 6\n1 5\nbad line\n3\n\n2 12\n"
	cards, err := ParseCards(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []core.Card{
		core.NewCard(core.Clubs, 6),
		core.NewCard(core.Diamonds, 5),
		core.NewCard(core.Hearts, 12),
	}, FromMap(cards))
}

func TestLoadCards_MissingFileFallsBack(t *testing.T) {
	cards, err := LoadCards(filepath.Join(t.TempDir(), "missing.txt"), zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, cards, 52)
}

func TestLoadCards_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 5\n0 6\n0 7\n"), 0o644))

	cards, err := LoadCards(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParseCards_ReadError(t *testing.T) {
	cards, err := ParseCards(failingReader{}, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, cards)
}

func TestParseLayout_OnlyPivots(t *testing.T) {
	layout, err := ParseLayout(strings.NewReader("0 6\n1 6\n2 3\n9 6\nx y\n"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, layout.Len())
	assert.True(t, layout.IsExposed(core.Clubs, core.SevenRank))
	assert.True(t, layout.IsExposed(core.Diamonds, core.SevenRank))
	assert.False(t, layout.IsExposed(core.Hearts, 3))
}

func TestLoadInitialLayout_MissingFileExposesPivots(t *testing.T) {
	layout, err := LoadInitialLayout(filepath.Join(t.TempDir(), "none"), zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, layout.Equal(core.NewPivotLayout()))
}
