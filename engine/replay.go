package engine

import (
	"tabletop/errs"
	"tabletop/game"
	"tabletop/hydrate"
)

// Replay reconstructs a game's current state by re-running its ordered
// action log from the recorded seed. It is the same code path as live play,
// which is what makes the result identical: given the same seed and log,
// the final state is a deterministic function of inputs only.
//
// Actions must arrive in strictly ascending, gapless index order over the
// non-deleted entries; soft-deleted actions (forked-away moves) are
// skipped. A log violating the ordering invariant is a storage-layer bug
// and is reported as a configuration error.
func (e *Engine) Replay(g *game.Game, rawActions []map[string]any) (game.State, error) {
	state, err := e.initialState(g)
	if err != nil {
		return nil, err
	}

	for _, raw := range rawActions {
		env, err := hydrate.Hydrate[game.Action](raw)
		if err != nil {
			return nil, err
		}
		if env.Deleted() {
			continue
		}
		if want := state.Core().ActionCount; env.Index != want {
			return nil, errs.Newf(errs.Configuration,
				"action log for game %s out of order: expected index %d, got %d", g.ID, want, env.Index).
				WithMeta("actionId", env.ID)
		}
		state, _, err = e.ProcessAction(g, state, raw)
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}
