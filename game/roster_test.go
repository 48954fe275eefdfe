package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/errs"
)

func openGame() *Game {
	return &Game{
		ID:     "g1",
		TypeID: "sample",
		Status: GameStatusOpen,
		Players: []Player{
			{ID: "seat1", Status: PlayerStatusOpen},
			{ID: "seat2", Status: PlayerStatusReserved, UserID: "u2"},
			{ID: "seat3", Status: PlayerStatusOpen},
		},
	}
}

func TestJoinAndDecline(t *testing.T) {
	g := openGame()

	require.NoError(t, g.Join("seat1", "u1", "Alice"))
	assert.Equal(t, PlayerStatusJoined, g.Player("seat1").Status)
	assert.Equal(t, "u1", g.Player("seat1").UserID)
	assert.Equal(t, "Alice", g.Player("seat1").Name)

	require.NoError(t, g.Join("seat2", "u2", ""))

	require.NoError(t, g.Decline("seat3"))
	assert.Equal(t, PlayerStatusDeclined, g.Player("seat3").Status)

	err := g.Join("seat3", "u3", "Carol")
	require.Error(t, err, "declined seat cannot be joined")
	assert.True(t, errs.Is(err, errs.IllegalAction))

	assert.Len(t, g.JoinedPlayers(), 2)
}

func TestJoinUnknownSeat(t *testing.T) {
	g := openGame()
	err := g.Join("nope", "u1", "")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.IllegalAction))
}

func TestStartFreezesRoster(t *testing.T) {
	g := openGame()
	now := time.Now()

	err := g.Start(2, now)
	require.Error(t, err, "not enough joined players")

	require.NoError(t, g.Join("seat1", "u1", ""))
	require.NoError(t, g.Join("seat2", "u2", ""))
	require.NoError(t, g.Start(2, now))

	assert.Equal(t, GameStatusStarted, g.Status)
	require.NotNil(t, g.StartedAt)

	// Frozen: no joins, declines, or restarts.
	assert.Error(t, g.Join("seat3", "u3", ""))
	assert.Error(t, g.Decline("seat3"))
	assert.Error(t, g.Start(2, now))
}

func TestFinishIsIdempotent(t *testing.T) {
	g := openGame()
	first := time.Now()
	g.Finish(first)
	require.Equal(t, GameStatusFinished, g.Status)

	g.Finish(first.Add(time.Hour))
	assert.Equal(t, first, *g.FinishedAt)
}
