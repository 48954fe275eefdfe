package homestead

import (
	"tabletop/errs"
	"tabletop/game"
	"tabletop/hydrate"
)

// PlaceBidAction raises the standing bid on the current lot.
type PlaceBidAction struct {
	game.Action
	Amount int `json:"amount" validate:"min=1"`
}

func (a *PlaceBidAction) Apply(s game.State) error {
	st := s.(*State)
	p := st.Player(a.PlayerID)
	p.Bid = a.Amount
	st.HighBid = a.Amount
	st.HighBidderID = a.PlayerID
	return nil
}

// PassBidAction drops the player out of the current auction.
type PassBidAction struct {
	game.Action
}

func (a *PassBidAction) Apply(s game.State) error {
	st := s.(*State)
	st.Player(a.PlayerID).Passed = true

	var live []string
	for _, p := range st.Players {
		if !p.Passed {
			live = append(live, p.PlayerID)
		}
	}
	st.SetActivePlayers(live...)
	return nil
}

type hydrator struct{}

func (hydrator) HydrateAction(raw map[string]any) (game.HydratedAction, error) {
	env, err := hydrate.Hydrate[game.Action](raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case ActionPlaceBid:
		a, err := hydrate.Hydrate[PlaceBidAction](raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	case ActionPassBid:
		a, err := hydrate.Hydrate[PassBidAction](raw)
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

func hydrateConfig(raw map[string]any) (*Config, error) {
	return hydrate.HydrateStrict[Config](raw)
}
