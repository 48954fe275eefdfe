package engine

import (
	"github.com/google/uuid"

	"tabletop/errs"
	"tabletop/game"
	"tabletop/hydrate"
)

// ProcessAction runs one action through the pipeline against a working copy
// of s: hydrate and validate the action, check it against the current
// machine state's handler, apply it, stamp the envelope, ask the handler
// for the next state, and enter that state if it differs.
//
// On success the returned state is the mutated copy and the envelope is the
// accepted action with its log index assigned. On any failure the input
// state is untouched, so a failed apply can never corrupt what the caller
// has persisted.
func (e *Engine) ProcessAction(g *game.Game, s game.State, rawAction map[string]any) (game.State, *game.Action, error) {
	working, err := e.copyState(s)
	if err != nil {
		return nil, nil, err
	}

	action, err := e.def.Hydrator.HydrateAction(rawAction)
	if err != nil {
		return nil, nil, err
	}
	env := action.Envelope()

	core := working.Core()
	handler, err := e.def.Handler(core.MachineState)
	if err != nil {
		return nil, nil, err
	}

	ctx := &game.Context{Game: g, State: working, Definition: e.def}
	if !handler.IsValidAction(action, ctx) {
		return nil, nil, errs.Newf(errs.IllegalAction,
			"action %q by player %q is not legal in state %q", env.Type, env.PlayerID, core.MachineState).
			WithMeta("actionType", env.Type).
			WithMeta("playerId", env.PlayerID).
			WithMeta("machineState", core.MachineState)
	}

	// The envelope gets its position in the log before apply so the action
	// and any group bookkeeping it does agree on the index.
	env.Index = core.ActionCount
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	if env.CreatedAt.IsZero() {
		env.CreatedAt = e.now()
	}

	if err := action.Apply(working); err != nil {
		return nil, nil, err
	}
	core.ActionCount++

	next, err := handler.OnAction(action, ctx)
	if err != nil {
		return nil, nil, err
	}
	if next != core.MachineState {
		if err := e.enter(ctx, next); err != nil {
			return nil, nil, err
		}
	}

	g.ActionCount = core.ActionCount
	if core.Terminal() {
		g.Finish(e.now())
	}

	e.logAccepted(g, working, env)
	return working, env, nil
}

// enter moves the machine into a new state and runs its entry effects.
func (e *Engine) enter(ctx *game.Context, machineState string) error {
	handler, err := e.def.Handler(machineState)
	if err != nil {
		return err
	}
	ctx.State.Core().MachineState = machineState
	return handler.Enter(ctx)
}

// copyState snapshots a state through its own dehydrated form, which is the
// only copy semantics every game already supports.
func (e *Engine) copyState(s game.State) (game.State, error) {
	raw, err := hydrate.Dehydrate(s)
	if err != nil {
		return nil, err
	}
	return e.def.Hydrator.HydrateState(raw)
}

func (e *Engine) logAccepted(g *game.Game, s game.State, env *game.Action) {
	evt := e.logger.Debug()
	if !evt.Enabled() {
		return
	}
	core := s.Core()
	evt.Str("gameId", g.ID).
		Str("actionType", env.Type).
		Int("index", env.Index).
		Str("playerId", env.PlayerID).
		Str("machineState", core.MachineState).
		Strs("activePlayers", core.ActivePlayerIDs).
		Msg("action accepted")
	if e.def.StateLogger != nil {
		e.def.StateLogger(&e.logger, s)
	}
}

// ProcessRaw is the inbound service boundary: raw dehydrated state plus raw
// action in, updated dehydrated state plus the accepted envelope out. Any
// failure surfaces as a categorized error for the route layer to map.
func (e *Engine) ProcessRaw(g *game.Game, rawState, rawAction map[string]any) (map[string]any, *game.Action, error) {
	state, err := e.def.Hydrator.HydrateState(rawState)
	if err != nil {
		return nil, nil, err
	}
	next, env, err := e.ProcessAction(g, state, rawAction)
	if err != nil {
		return nil, nil, err
	}
	out, err := hydrate.Dehydrate(next)
	if err != nil {
		return nil, nil, err
	}
	return out, env, nil
}
