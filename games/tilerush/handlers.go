package tilerush

import "tabletop/game"

// startOfTurn is the sole live state: the active player draws or passes,
// play rotates, and the game ends when the bag runs dry.
type startOfTurn struct{}

func (startOfTurn) IsValidAction(action game.HydratedAction, ctx *game.Context) bool {
	st := ctx.State.(*State)
	env := action.Envelope()
	if !st.IsActivePlayer(env.PlayerID) {
		return false
	}
	switch env.Type {
	case ActionDrawTile:
		return !st.Bag.IsEmpty()
	case ActionPass:
		return true
	default:
		return false
	}
}

func (startOfTurn) ValidActionsForPlayer(playerID string, ctx *game.Context) []string {
	st := ctx.State.(*State)
	if !st.IsActivePlayer(playerID) {
		return nil
	}
	actions := []string{ActionPass}
	if !st.Bag.IsEmpty() {
		actions = append([]string{ActionDrawTile}, actions...)
	}
	return actions
}

// Enter opens the first turn span at game start. Later turns are opened by
// the actions themselves; the self-loop never re-enters.
func (startOfTurn) Enter(ctx *game.Context) error {
	st := ctx.State.(*State)
	if st.Turns.Current() != nil {
		return nil
	}
	return st.Turns.Begin(game.ActionGroup{
		Start:     st.ActionCount,
		PlayerIDs: append([]string{}, st.ActivePlayerIDs...),
	})
}

func (startOfTurn) OnAction(action game.HydratedAction, ctx *game.Context) (string, error) {
	st := ctx.State.(*State)
	if st.Bag.IsEmpty() {
		return StateEndOfGame, nil
	}
	return StateStartOfTurn, nil
}

// endOfGame computes the outcome on entry and locks the machine.
type endOfGame struct {
	game.TerminalHandler
}

func (endOfGame) Enter(ctx *game.Context) error {
	st := ctx.State.(*State)
	st.Turns.Close(st.ActionCount)

	best := 0
	var winners []string
	for _, p := range st.Players {
		switch {
		case p.Score > best:
			best = p.Score
			winners = []string{p.PlayerID}
		case p.Score == best:
			winners = append(winners, p.PlayerID)
		}
	}

	// Single max scorer wins; tied max scorers draw.
	if len(winners) == 1 {
		st.Finish(game.ResultWin, winners...)
	} else {
		st.Finish(game.ResultDraw, winners...)
	}
	return nil
}
