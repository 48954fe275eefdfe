package homestead

import "tabletop/game"

// auctionBidding is the live state for every round. Entering it at game
// start opens the first auction; later auctions are opened by the action
// that settles the previous one, so the self-loop never re-enters.
type auctionBidding struct{}

func (auctionBidding) IsValidAction(action game.HydratedAction, ctx *game.Context) bool {
	st := ctx.State.(*State)
	env := action.Envelope()
	p := st.Player(env.PlayerID)
	if p == nil || p.Passed || !st.IsActivePlayer(env.PlayerID) {
		return false
	}
	switch env.Type {
	case ActionPlaceBid:
		bid, ok := action.(*PlaceBidAction)
		if !ok {
			return false
		}
		if env.PlayerID == st.HighBidderID {
			return false
		}
		return bid.Amount >= st.HighBid+st.MinIncrement && bid.Amount <= p.Funds
	case ActionPassBid:
		// The standing high bidder is committed and cannot back out.
		return env.PlayerID != st.HighBidderID
	default:
		return false
	}
}

func (auctionBidding) ValidActionsForPlayer(playerID string, ctx *game.Context) []string {
	st := ctx.State.(*State)
	p := st.Player(playerID)
	if p == nil || p.Passed || !st.IsActivePlayer(playerID) || playerID == st.HighBidderID {
		return nil
	}
	var actions []string
	if p.Funds >= st.HighBid+st.MinIncrement {
		actions = append(actions, ActionPlaceBid)
	}
	return append(actions, ActionPassBid)
}

func (auctionBidding) Enter(ctx *game.Context) error {
	st := ctx.State.(*State)
	if st.CurrentLot == nil {
		return beginAuction(st)
	}
	return nil
}

func (auctionBidding) OnAction(action game.HydratedAction, ctx *game.Context) (string, error) {
	st := ctx.State.(*State)
	if !st.auctionDone() {
		return StateAuctionBidding, nil
	}

	resolveAuction(st)
	if st.Rounds.Count() >= st.RoundsTotal || st.Deck.IsEmpty() {
		return StateEndOfGame, nil
	}
	if err := beginAuction(st); err != nil {
		return "", err
	}
	return StateAuctionBidding, nil
}

// beginAuction draws the next lot, resets bids, and opens the round and
// bidding-phase spans.
func beginAuction(st *State) error {
	lot, err := st.Deck.Draw()
	if err != nil {
		return err
	}
	st.CurrentLot = &lot
	st.HighBid = 0
	st.HighBidderID = ""

	var active []string
	for _, p := range st.Players {
		p.Passed = false
		p.Bid = 0
		active = append(active, p.PlayerID)
	}
	st.SetActivePlayers(active...)

	if err := st.Rounds.Begin(game.ActionGroup{Start: st.ActionCount}); err != nil {
		return err
	}
	return st.Phases.Begin(game.ActionGroup{Start: st.ActionCount, Name: StateAuctionBidding})
}

// resolveAuction settles the current lot: the standing high bidder pays
// and takes it; with no bids the lot is discarded.
func resolveAuction(st *State) {
	if st.HighBidderID != "" {
		winner := st.Player(st.HighBidderID)
		winner.Funds -= st.HighBid
		winner.Lots = append(winner.Lots, *st.CurrentLot)
	}
	st.CurrentLot = nil
	st.HighBid = 0
	st.HighBidderID = ""
}

// endOfGame scores holdings on entry and locks the machine.
type endOfGame struct {
	game.TerminalHandler
}

func (endOfGame) Enter(ctx *game.Context) error {
	st := ctx.State.(*State)
	st.Rounds.Close(st.ActionCount)
	st.Phases.Close(st.ActionCount)

	best := 0
	var winners []string
	for _, p := range st.Players {
		switch {
		case p.Holdings() > best:
			best = p.Holdings()
			winners = []string{p.PlayerID}
		case p.Holdings() == best:
			winners = append(winners, p.PlayerID)
		}
	}

	if len(winners) == 1 {
		st.Finish(game.ResultWin, winners...)
	} else {
		st.Finish(game.ResultDraw, winners...)
	}
	return nil
}
