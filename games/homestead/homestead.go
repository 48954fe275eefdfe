// Package homestead implements a round-based auction game: each round one
// land lot comes up from a shuffled deck, players bid or pass, and the last
// bidder standing pays their bid for it. Highest total lot value after the
// final round wins.
package homestead

import (
	"tabletop/bag"
	"tabletop/errs"
	"tabletop/game"
	"tabletop/random"
	"tabletop/utils"
)

const ID = "homestead"

// Machine states.
const (
	StateAuctionBidding = "auctionBidding"
	StateEndOfGame      = "endOfGame"
)

// Action types.
const (
	ActionPlaceBid = "placeBid"
	ActionPassBid  = "passBid"
)

const startingFunds = 20

var playerColors = []string{"amber", "teal", "plum", "olive"}

// Config holds the game's rule variants. The two toggles are mutually
// exclusive: switching one on forces the other off.
type Config struct {
	LongGame      bool `json:"longGame"`
	QuickAuctions bool `json:"quickAuctions"`
}

// RoundsTotal derives the number of auction rounds from the variant.
func (c Config) RoundsTotal() int {
	if c.LongGame {
		return 6
	}
	return 4
}

// MinIncrement is how much a new bid must exceed the standing high bid by.
func (c Config) MinIncrement() int {
	if c.QuickAuctions {
		return 2
	}
	return 1
}

// Lot is one parcel up for auction.
type Lot struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

// PlayerState is one player's in-game progress.
type PlayerState struct {
	game.PlayerState
	Funds  int   `json:"funds"`
	Lots   []Lot `json:"lots,omitempty"`
	Bid    int   `json:"bid"`
	Passed bool  `json:"passed"`
}

// Holdings is the player's win metric: total value of lots won.
func (p *PlayerState) Holdings() int {
	total := 0
	for _, lot := range p.Lots {
		total += lot.Value
	}
	return total
}

// State is the full game state.
type State struct {
	game.Base
	Players      []*PlayerState `json:"players" validate:"required,dive"`
	Deck         *bag.Bag[Lot]  `json:"deck" validate:"required"`
	CurrentLot   *Lot           `json:"currentLot,omitempty"`
	HighBid      int            `json:"highBid"`
	HighBidderID string         `json:"highBidderId,omitempty"`
	RoundsTotal  int            `json:"roundsTotal" validate:"min=1"`
	MinIncrement int            `json:"minIncrement" validate:"min=1"`
}

// Player returns the in-game state for a seat id, or nil.
func (s *State) Player(id string) *PlayerState {
	for _, p := range s.Players {
		if p.PlayerID == id {
			return p
		}
	}
	return nil
}

// liveBidders counts players still in the current auction.
func (s *State) liveBidders() int {
	return utils.CountIf(s.Players, func(p *PlayerState) bool { return !p.Passed })
}

// auctionDone reports whether the current auction is settled: everyone
// passed, or one live player remains and the standing bid is theirs.
func (s *State) auctionDone() bool {
	live := s.liveBidders()
	if live == 0 {
		return true
	}
	if live > 1 {
		return false
	}
	for _, p := range s.Players {
		if !p.Passed {
			return p.PlayerID == s.HighBidderID
		}
	}
	return false
}

// Definition wires the game into the engine's shape.
func Definition() *game.Definition {
	return &game.Definition{
		ID: ID,
		Metadata: game.Metadata{
			Name:        "Homestead",
			Description: "Bid for land lots, round by round; richest spread wins.",
			MinPlayers:  2,
			MaxPlayers:  4,
		},
		Initialize: initialize,
		Hydrator:   hydrator{},
		StateHandlers: map[string]game.StateHandler{
			StateAuctionBidding: auctionBidding{},
			StateEndOfGame:      endOfGame{},
		},
		APIActions: map[string]game.ActionFactory{
			ActionPlaceBid: func() game.HydratedAction { return &PlaceBidAction{} },
			ActionPassBid:  func() game.HydratedAction { return &PassBidAction{} },
		},
		PlayerColors: playerColors,
		Configurator: game.SchemaConfigurator[Config]{AfterUpdate: exclusiveVariants},
	}
}

func exclusiveVariants(cfg *Config, upd game.FieldUpdate) error {
	if cfg.LongGame && cfg.QuickAuctions {
		switch upd.ID {
		case "longGame":
			cfg.QuickAuctions = false
		case "quickAuctions":
			cfg.LongGame = false
		default:
			return errs.Newf(errs.Validation, "longGame and quickAuctions cannot both be enabled")
		}
	}
	return nil
}

// initialize shuffles the lot deck from the game seed and seats the joined
// players with their starting funds.
func initialize(g *game.Game, src random.Source) (game.State, error) {
	cfg := Config{}
	if g.Config != nil {
		typed, err := hydrateConfig(g.Config)
		if err != nil {
			return nil, err
		}
		cfg = *typed
	}

	s := &State{Base: game.NewBase(StateAuctionBidding, src)}
	s.RoundsTotal = cfg.RoundsTotal()
	s.MinIncrement = cfg.MinIncrement()

	for i, p := range g.JoinedPlayers() {
		s.Players = append(s.Players, &PlayerState{
			PlayerState: game.PlayerState{
				PlayerID: p.ID,
				Color:    playerColors[i%len(playerColors)],
			},
			Funds: startingFunds,
		})
	}

	// One lot per round; values cycle 2..6 so rounds differ in stakes.
	lots := make([]Lot, s.RoundsTotal)
	for i := range lots {
		lots[i] = Lot{ID: i, Value: i%5 + 2}
	}
	s.Deck = bag.New(lots, s.Random.Float)

	return s, nil
}
