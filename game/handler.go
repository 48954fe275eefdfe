package game

import (
	"tabletop/errs"
	"tabletop/random"
)

// Context is everything a state handler may read while deciding validity,
// running entry effects, or picking the next state. Handlers are stateless;
// all game data flows through here.
type Context struct {
	Game       *Game
	State      State
	Definition *Definition
}

// Rand returns the state's deterministic random cursor. Handlers must take
// randomness from here and nowhere else, or replay breaks.
func (c *Context) Rand() *random.Source {
	return &c.State.Core().Random
}

// StateHandler governs one named machine state: which actions are legal,
// what happens on entry, and where an applied action leads next.
type StateHandler interface {
	// IsValidAction is a pure predicate checked before Apply. It must
	// consider the action type, the acting player against the active
	// player set, and any state-specific legality constraints. An invalid
	// action never reaches Apply.
	IsValidAction(action HydratedAction, ctx *Context) bool

	// ValidActionsForPlayer enumerates the action type names currently
	// legal for the player: the UI's affordance list and the server-side
	// allow-list.
	ValidActionsForPlayer(playerID string, ctx *Context) []string

	// Enter runs exactly once, synchronously, whenever the machine
	// transitions into this state, the initial state at game start
	// included. It carries deterministic derived effects only: no I/O.
	Enter(ctx *Context) error

	// OnAction runs after IsValidAction passed and Apply mutated the
	// state. It returns the next machine state's name; returning the
	// current name is a self-loop and does not re-enter.
	OnAction(action HydratedAction, ctx *Context) (string, error)
}

// TerminalHandler is the handler for finished-game states: every action is
// invalid, no player has legal actions, and being asked to transition is a
// hard error. Games embed it and override Enter to compute the outcome.
type TerminalHandler struct{}

func (TerminalHandler) IsValidAction(HydratedAction, *Context) bool {
	return false
}

func (TerminalHandler) ValidActionsForPlayer(string, *Context) []string {
	return nil
}

func (TerminalHandler) Enter(*Context) error {
	return nil
}

func (TerminalHandler) OnAction(action HydratedAction, ctx *Context) (string, error) {
	return "", errs.Newf(errs.IllegalAction,
		"no actions are legal in terminal state %q", ctx.State.Core().MachineState)
}
