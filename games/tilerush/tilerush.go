// Package tilerush implements a small tile-drafting game: a shuffled bag of
// scored tiles, players drawing or passing in turn order until the bag runs
// out, highest total wins.
package tilerush

import (
	"tabletop/bag"
	"tabletop/game"
	"tabletop/random"
	"tabletop/utils"
)

const ID = "tilerush"

// Machine states.
const (
	StateStartOfTurn = "startOfTurn"
	StateEndOfGame   = "endOfGame"
)

// Action types.
const (
	ActionDrawTile = "drawTile"
	ActionPass     = "pass"
)

var playerColors = []string{"red", "blue", "green", "yellow"}

// Tile is one drawable piece.
type Tile struct {
	ID     int `json:"id"`
	Points int `json:"points"`
}

// PlayerState is one player's in-game progress.
type PlayerState struct {
	game.PlayerState
	Score int    `json:"score"`
	Tiles []Tile `json:"tiles,omitempty"`
}

// State is the full board state.
type State struct {
	game.Base
	Players []*PlayerState `json:"players" validate:"required,dive"`
	Bag     *bag.Bag[Tile] `json:"bag" validate:"required"`
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

// seatOrder returns player ids in seating order.
func (s *State) seatOrder() []string {
	ids := make([]string, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.PlayerID
	}
	return ids
}

// nextPlayer returns the seat after current, wrapping around.
func (s *State) nextPlayer(current string) string {
	order := s.seatOrder()
	i := utils.FindIndex(order, current)
	return order[(i+1)%len(order)]
}

// endTurn rotates the active player and opens the next turn span.
func (s *State) endTurn(current string) error {
	next := s.nextPlayer(current)
	s.SetActivePlayers(next)
	return s.Turns.Begin(game.ActionGroup{Start: s.ActionCount + 1, PlayerIDs: []string{next}})
}

// Definition wires the game into the engine's shape.
func Definition() *game.Definition {
	return &game.Definition{
		ID: ID,
		Metadata: game.Metadata{
			Name:        "Tile Rush",
			Description: "Draft scored tiles from a shuffled bag before it runs dry.",
			MinPlayers:  2,
			MaxPlayers:  4,
		},
		Initialize: initialize,
		Hydrator:   hydrator{},
		StateHandlers: map[string]game.StateHandler{
			StateStartOfTurn: startOfTurn{},
			StateEndOfGame:   endOfGame{},
		},
		APIActions: map[string]game.ActionFactory{
			ActionDrawTile: func() game.HydratedAction { return &DrawTileAction{} },
			ActionPass:     func() game.HydratedAction { return &PassAction{} },
		},
		PlayerColors: playerColors,
	}
}

// initialize builds the bag from the game seed and seats the joined players.
func initialize(g *game.Game, src random.Source) (game.State, error) {
	s := &State{Base: game.NewBase(StateStartOfTurn, src)}

	for i, p := range g.JoinedPlayers() {
		s.Players = append(s.Players, &PlayerState{
			PlayerState: game.PlayerState{
				PlayerID: p.ID,
				Color:    playerColors[i%len(playerColors)],
			},
		})
	}

	// Six tiles per player, point values cycling 1..4.
	var tiles []Tile
	for i := 0; i < 6*len(s.Players); i++ {
		tiles = append(tiles, Tile{ID: i, Points: i%4 + 1})
	}
	s.Bag = bag.New(tiles, s.Random.Float)

	s.SetActivePlayers(s.Players[0].PlayerID)
	return s, nil
}
