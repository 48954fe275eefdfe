// Package game defines the shared contract every board game implements:
// the action envelope, the state model, machine-state handlers, and the
// definition table the engine consumes uniformly.
package game

import "time"

// Action is the envelope for a single player-issued or system-issued move.
// Index is the action's position in the game's total-order log: zero-based,
// strictly increasing, gapless over non-deleted actions. Once persisted an
// action is immutable except for the soft-deletion fields used when forking
// a game.
type Action struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type" validate:"required"`
	Index       int            `json:"index"`
	PlayerID    string         `json:"playerId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
	DeletedAt   *time.Time     `json:"deletedAt,omitempty"`
	RevealsInfo bool           `json:"revealsInfo,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Envelope returns the action's envelope. Concrete actions embed Action and
// satisfy HydratedAction through this method.
func (a *Action) Envelope() *Action {
	return a
}

// Deleted reports whether the action has been soft-deleted by a fork.
func (a *Action) Deleted() bool {
	return a.DeletedAt != nil
}

// HydratedAction is a validated, typed action ready to run. Apply mutates
// the hydrated state in place and is called exactly once per action during
// forward play; it must not touch anything outside the given state.
type HydratedAction interface {
	Envelope() *Action
	Apply(s State) error
}
