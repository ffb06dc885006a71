// Package sevens is the public contract between the Sevens engine and the
// players it seats. Strategies built outside this module, including Go
// plugins loaded with the plugin package, import only this package.
//
// A plugin is a main package built with -buildmode=plugin that exports
//
//	func CreateStrategy() sevens.Strategy
//
// The engine calls CreateStrategy once per seat the plugin is bound to. The
// plugin must be built with the same Go toolchain and the same version of
// this module as the host binary.
package sevens

// Pass is the index a strategy returns when it does not play.
const Pass = -1

// PluginSymbol is the factory a Go plugin exports.
const PluginSymbol = "CreateStrategy"

// Strategy decides which card a seat plays. The engine calls Initialize once
// per game before any other method. Hands are copies; the table is read-only.
type Strategy interface {
	Initialize(playerID int)
	// SelectCardToPlay returns an index into hand or Pass. Any index outside
	// the hand counts as a pass; a legal index naming an unplayable card is
	// rejected and also counts as a pass.
	SelectCardToPlay(hand []Card, table TableView) int
	ObserveMove(playerID int, card Card)
	ObservePass(playerID int)
	Name() string
}

// Factory creates a fresh strategy. Plugins export one under PluginSymbol.
type Factory func() Strategy
