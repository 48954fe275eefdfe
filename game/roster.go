package game

import (
	"time"

	"tabletop/errs"
)

// PlayerStatus tracks a seat's membership lifecycle. Seats are created when
// a game is configured, transition as users join or decline, and freeze
// once the game starts.
type PlayerStatus string

const (
	PlayerStatusOpen     PlayerStatus = "open"
	PlayerStatusReserved PlayerStatus = "reserved"
	PlayerStatusJoined   PlayerStatus = "joined"
	PlayerStatusDeclined PlayerStatus = "declined"
)

// Player is a seat in a game's roster: identity and membership, as opposed
// to PlayerState, which is in-game mutable progress.
type Player struct {
	ID      string       `json:"id" validate:"required"`
	Name    string       `json:"name,omitempty"`
	IsHuman bool         `json:"isHuman"`
	UserID  string       `json:"userId,omitempty"`
	Status  PlayerStatus `json:"status" validate:"required"`
}

// GameStatus tracks a game instance's lifecycle.
type GameStatus string

const (
	GameStatusOpen     GameStatus = "open"
	GameStatusStarted  GameStatus = "started"
	GameStatusFinished GameStatus = "finished"
)

// Game is the persistent record of one game instance: identity, seed,
// roster, and configuration. The live board state lives in the game's
// State; this record is what the storage layer keys everything on.
type Game struct {
	ID          string         `json:"id" validate:"required"`
	TypeID      string         `json:"typeId" validate:"required"`
	Seed        uint32         `json:"seed"`
	Status      GameStatus     `json:"status"`
	Players     []Player       `json:"players"`
	Config      map[string]any `json:"config,omitempty"`
	ActionCount int            `json:"actionCount"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
	FinishedAt  *time.Time     `json:"finishedAt,omitempty"`
}

// Player returns the seat with the given id, or nil.
func (g *Game) Player(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// JoinedPlayers returns the seats whose users have joined, in seat order.
func (g *Game) JoinedPlayers() []Player {
	var joined []Player
	for _, p := range g.Players {
		if p.Status == PlayerStatusJoined {
			joined = append(joined, p)
		}
	}
	return joined
}

// Join seats a user. Only open or reserved seats can be taken, and only
// before the game starts.
func (g *Game) Join(seatID, userID, name string) error {
	if g.Status != GameStatusOpen {
		return errs.Newf(errs.IllegalAction, "cannot join game in status %q", g.Status)
	}
	seat := g.Player(seatID)
	if seat == nil {
		return errs.Newf(errs.IllegalAction, "no seat %q in game %s", seatID, g.ID)
	}
	switch seat.Status {
	case PlayerStatusOpen, PlayerStatusReserved:
		seat.Status = PlayerStatusJoined
		seat.UserID = userID
		if name != "" {
			seat.Name = name
		}
		return nil
	default:
		return errs.Newf(errs.IllegalAction, "seat %q is %s", seatID, seat.Status)
	}
}

// Decline marks a seat as declined. The seat stays in the roster; the
// matching PlayerState, if the game already started, is never removed.
func (g *Game) Decline(seatID string) error {
	if g.Status != GameStatusOpen {
		return errs.Newf(errs.IllegalAction, "cannot decline game in status %q", g.Status)
	}
	seat := g.Player(seatID)
	if seat == nil {
		return errs.Newf(errs.IllegalAction, "no seat %q in game %s", seatID, g.ID)
	}
	seat.Status = PlayerStatusDeclined
	return nil
}

// Start freezes the roster. At least minPlayers seats must have joined.
func (g *Game) Start(minPlayers int, now time.Time) error {
	if g.Status != GameStatusOpen {
		return errs.Newf(errs.IllegalAction, "cannot start game in status %q", g.Status)
	}
	if joined := len(g.JoinedPlayers()); joined < minPlayers {
		return errs.Newf(errs.IllegalAction, "need %d joined players, have %d", minPlayers, joined)
	}
	g.Status = GameStatusStarted
	g.StartedAt = &now
	return nil
}

// Finish records that the game reached a terminal state.
func (g *Game) Finish(now time.Time) {
	if g.Status == GameStatusFinished {
		return
	}
	g.Status = GameStatusFinished
	g.FinishedAt = &now
}
