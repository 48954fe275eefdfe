package tilerush

import (
	"tabletop/errs"
	"tabletop/game"
	"tabletop/hydrate"
)

// DrawTileAction takes the top tile from the bag and banks its points.
type DrawTileAction struct {
	game.Action
}

func (a *DrawTileAction) Apply(s game.State) error {
	st := s.(*State)
	tile, err := st.Bag.Draw()
	if err != nil {
		return err
	}
	p := st.Player(a.PlayerID)
	p.Tiles = append(p.Tiles, tile)
	p.Score += tile.Points
	return st.endTurn(a.PlayerID)
}

// PassAction skips the turn.
type PassAction struct {
	game.Action
}

func (a *PassAction) Apply(s game.State) error {
	return s.(*State).endTurn(a.PlayerID)
}

// hydrator dispatches on the envelope's type over the game's closed set of
// action variants.
type hydrator struct{}

func (hydrator) HydrateAction(raw map[string]any) (game.HydratedAction, error) {
	env, err := hydrate.Hydrate[game.Action](raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case ActionDrawTile:
		a, err := hydrate.Hydrate[DrawTileAction](raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	case ActionPass:
		a, err := hydrate.Hydrate[PassAction](raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, errs.Newf(errs.UnknownType, "unknown action type %q for game %q", env.Type, ID)
	}
}

func (hydrator) HydrateState(raw map[string]any) (game.State, error) {
	s, err := hydrate.Hydrate[State](raw)
	if err != nil {
		return nil, err
	}
	return s, nil
}
