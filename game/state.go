package game

import (
	"golang.org/x/exp/slices"

	"tabletop/random"
)

// Result is the outcome of a finished game.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultDraw Result = "draw"
)

// State is the authoritative snapshot of one game instance. Each game
// defines its own concrete state struct with bespoke board and component
// fields and embeds Base to satisfy this interface.
//
// A hydrated state is the only mutable entity in the model. Exactly one
// logical owner (the engine's apply loop) may mutate a given instance at a
// time; anyone else works on a copy.
type State interface {
	Core() *Base
}

// Base carries the bookkeeping every game state shares. MachineState must
// always name an entry in the owning definition's handler table.
// ActivePlayerIDs is empty exactly when the game has reached a terminal
// state.
type Base struct {
	MachineState     string        `json:"machineState" validate:"required"`
	ActivePlayerIDs  []string      `json:"activePlayerIds"`
	ActionCount      int           `json:"actionCount"`
	Result           Result        `json:"result,omitempty"`
	WinningPlayerIDs []string      `json:"winningPlayerIds,omitempty"`
	Random           random.Source `json:"random"`
	Turns            GroupTracker  `json:"turns"`
	Rounds           GroupTracker  `json:"rounds"`
	Phases           GroupTracker  `json:"phases"`
}

// NewBase returns a Base positioned at the given initial machine state,
// taking ownership of the game's random cursor.
func NewBase(machineState string, src random.Source) Base {
	return Base{
		MachineState: machineState,
		Random:       src,
		Turns:        GroupTracker{Kind: GroupTurn},
		Rounds:       GroupTracker{Kind: GroupRound},
		Phases:       GroupTracker{Kind: GroupPhase},
	}
}

func (b *Base) Core() *Base {
	return b
}

// IsActivePlayer reports whether it is currently playerID's turn/decision.
func (b *Base) IsActivePlayer(playerID string) bool {
	return slices.Contains(b.ActivePlayerIDs, playerID)
}

// SetActivePlayers replaces the active player set.
func (b *Base) SetActivePlayers(playerIDs ...string) {
	b.ActivePlayerIDs = playerIDs
}

// Terminal reports whether the game has finished.
func (b *Base) Terminal() bool {
	return b.Result != ResultNone
}

// Finish records the outcome and clears the active player set, which is
// what marks the state terminal.
func (b *Base) Finish(result Result, winnerIDs ...string) {
	b.Result = result
	b.WinningPlayerIDs = winnerIDs
	b.ActivePlayerIDs = nil
}

// PlayerState is the per-seat in-game progress record games embed. One
// exists per seated player from initialization on; players who leave are
// marked in the roster, never removed here.
type PlayerState struct {
	PlayerID string `json:"playerId" validate:"required"`
	Color    string `json:"color,omitempty"`
}
