package strategy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Kind names a built-in strategy.
type Kind string

const (
	KindRandom Kind = "random"
	KindGreedy Kind = "greedy"
	KindSmart  Kind = "smart"
)

// Kinds lists every built-in strategy.
func Kinds() []Kind {
	return []Kind{KindRandom, KindGreedy, KindSmart}
}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("strategy kind %q: %w", s, core.ErrUnsupported)
}

// New builds a fresh built-in strategy. rng only feeds KindRandom; nil seeds
// from the clock.
func New(kind Kind, rng *rand.Rand) (Strategy, error) {
	switch kind {
	case KindRandom:
		return NewRandomStrategy(rng), nil
	case KindGreedy:
		return NewGreedyStrategy(), nil
	case KindSmart:
		return NewSmartStrategy(), nil
	default:
		return nil, fmt.Errorf("strategy kind %q: %w", kind, core.ErrUnsupported)
	}
}
