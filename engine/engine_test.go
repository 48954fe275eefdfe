package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/engine"
	"tabletop/errs"
	"tabletop/game"
	"tabletop/games/tilerush"
	"tabletop/hydrate"
)

func twoSeats() []game.Player {
	return []game.Player{
		{ID: "p1", Name: "Alice", IsHuman: true, UserID: "u1", Status: game.PlayerStatusJoined},
		{ID: "p2", Name: "Bob", IsHuman: true, UserID: "u2", Status: game.PlayerStatusJoined},
	}
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(tilerush.Definition())
	require.NoError(t, err)
	return e
}

func createGame(t *testing.T, e *engine.Engine, seed uint32) (*game.Game, game.State) {
	t.Helper()
	g, s, err := e.CreateGame(engine.CreateOptions{Seed: &seed, Players: twoSeats()})
	require.NoError(t, err)
	return g, s
}

// stateBytes canonicalizes a state through its dehydrated form for
// byte-for-byte comparison.
func stateBytes(t *testing.T, s game.State) []byte {
	t.Helper()
	raw, err := hydrate.Dehydrate(s)
	require.NoError(t, err)
	buf, err := json.Marshal(raw)
	require.NoError(t, err)
	return buf
}

func action(typ, playerID string) map[string]any {
	return map[string]any{"type": typ, "playerId": playerID}
}

func activePlayer(s game.State) string {
	return s.Core().ActivePlayerIDs[0]
}

func TestNewRejectsIncompleteDefinition(t *testing.T) {
	def := tilerush.Definition()
	def.StateHandlers = nil
	_, err := engine.New(def)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Configuration))
}

func TestCreateGameValidatesSeatCount(t *testing.T) {
	e := newEngine(t)
	_, _, err := e.CreateGame(engine.CreateOptions{Players: twoSeats()[:1]})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Configuration))
}

func TestCreateGameDeterminism(t *testing.T) {
	e := newEngine(t)
	_, s1 := createGame(t, e, 42)
	_, s2 := createGame(t, e, 42)

	assert.Equal(t, stateBytes(t, s1), stateBytes(t, s2),
		"same seed must produce byte-identical initial states")

	_, s3 := createGame(t, e, 43)
	assert.NotEqual(t, stateBytes(t, s1), stateBytes(t, s3))
}

func TestPassThroughAction(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	require.Equal(t, []string{"p1"}, s.Core().ActivePlayerIDs)

	next, env, err := e.ProcessAction(g, s, action(tilerush.ActionPass, "p1"))
	require.NoError(t, err)

	assert.Equal(t, 1, next.Core().ActionCount)
	assert.Equal(t, tilerush.StateStartOfTurn, next.Core().MachineState)
	assert.Equal(t, []string{"p2"}, next.Core().ActivePlayerIDs)

	assert.Equal(t, 0, env.Index)
	assert.NotEmpty(t, env.ID)
	assert.False(t, env.CreatedAt.IsZero())

	assert.Equal(t, 0, s.Core().ActionCount, "input state stays untouched")
	assert.Equal(t, 1, g.ActionCount)
}

func TestInvalidActorRejectedBeforeMutation(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	before := stateBytes(t, s)

	_, _, err := e.ProcessAction(g, s, action(tilerush.ActionPass, "p2"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.IllegalAction))

	meta := errs.MetaOf(err)
	assert.Equal(t, "p2", meta["playerId"])
	assert.Equal(t, tilerush.StateStartOfTurn, meta["machineState"])

	assert.Equal(t, before, stateBytes(t, s), "rejection leaves the state byte-for-byte unchanged")
}

func TestUnknownActionType(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)

	_, _, err := e.ProcessAction(g, s, action("teleport", "p1"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.UnknownType))
}

func TestMalformedActionRejected(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)

	_, _, err := e.ProcessAction(g, s, map[string]any{"playerId": "p1"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Validation))
	assert.NotEmpty(t, errs.MetaOf(err)["violations"])
}

// playOut draws tiles until the game ends, returning the accepted action
// log in dehydrated form plus the final state.
func playOut(t *testing.T, e *engine.Engine, g *game.Game, s game.State) ([]map[string]any, game.State) {
	t.Helper()
	var log []map[string]any
	for !s.Core().Terminal() {
		next, env, err := e.ProcessAction(g, s, action(tilerush.ActionDrawTile, activePlayer(s)))
		require.NoError(t, err)
		raw, err := hydrate.Dehydrate(env)
		require.NoError(t, err)
		log = append(log, raw)
		s = next
	}
	return log, s
}

func TestTerminalTransitionAndLockout(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)

	log, final := playOut(t, e, g, s)
	require.Len(t, log, 12, "two players, six tiles each")

	core := final.Core()
	assert.Equal(t, tilerush.StateEndOfGame, core.MachineState)
	assert.Empty(t, core.ActivePlayerIDs)
	assert.Contains(t, []game.Result{game.ResultWin, game.ResultDraw}, core.Result)
	if core.Result == game.ResultWin {
		assert.Len(t, core.WinningPlayerIDs, 1)
	} else {
		assert.GreaterOrEqual(t, len(core.WinningPlayerIDs), 2)
	}
	assert.Equal(t, game.GameStatusFinished, g.Status)

	// No action of any type is accepted once the machine is terminal.
	for _, typ := range []string{tilerush.ActionDrawTile, tilerush.ActionPass} {
		for _, p := range []string{"p1", "p2"} {
			_, _, err := e.ProcessAction(g, final, action(typ, p))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.IllegalAction))
		}
	}
}

func TestReplayReproducesLiveState(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	log, final := playOut(t, e, g, s)

	g2 := &game.Game{ID: g.ID, TypeID: g.TypeID, Seed: g.Seed, Players: twoSeats(), Status: game.GameStatusStarted}
	replayed, err := e.Replay(g2, log)
	require.NoError(t, err)

	assert.Equal(t, stateBytes(t, final), stateBytes(t, replayed),
		"replay from the seed and log must be byte-identical to live play")
}

func TestReplaySplitEquivalence(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	log, final := playOut(t, e, g, s)

	for _, k := range []int{0, 1, 5, len(log) - 1, len(log)} {
		g2 := &game.Game{ID: g.ID, TypeID: g.TypeID, Seed: g.Seed, Players: twoSeats(), Status: game.GameStatusStarted}
		state, err := e.Replay(g2, log[:k])
		require.NoError(t, err)
		for _, raw := range log[k:] {
			state, _, err = e.ProcessAction(g2, state, raw)
			require.NoError(t, err)
		}
		assert.Equal(t, stateBytes(t, final), stateBytes(t, state), "split at %d", k)
	}
}

func TestReplaySkipsSoftDeletedActions(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)

	next, env, err := e.ProcessAction(g, s, action(tilerush.ActionPass, "p1"))
	require.NoError(t, err)
	raw, err := hydrate.Dehydrate(env)
	require.NoError(t, err)

	deleted := map[string]any{
		"id":        "forked-away",
		"type":      tilerush.ActionDrawTile,
		"index":     99,
		"playerId":  "p1",
		"deletedAt": "2026-01-02T15:04:05Z",
	}

	g2 := &game.Game{ID: g.ID, TypeID: g.TypeID, Seed: g.Seed, Players: twoSeats(), Status: game.GameStatusStarted}
	replayed, err := e.Replay(g2, []map[string]any{deleted, raw})
	require.NoError(t, err)
	assert.Equal(t, stateBytes(t, next), stateBytes(t, replayed))
}

func TestReplayRejectsGappedLog(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	log, _ := playOut(t, e, g, s)

	g2 := &game.Game{ID: g.ID, TypeID: g.TypeID, Seed: g.Seed, Players: twoSeats(), Status: game.GameStatusStarted}
	_, err := e.Replay(g2, []map[string]any{log[0], log[2]})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Configuration))
}

func TestProcessRawBoundary(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)
	rawState, err := hydrate.Dehydrate(s)
	require.NoError(t, err)

	nextRaw, env, err := e.ProcessRaw(g, rawState, action(tilerush.ActionPass, "p1"))
	require.NoError(t, err)

	assert.Equal(t, float64(1), nextRaw["actionCount"])
	assert.Equal(t, tilerush.ActionPass, env.Type)

	// The raw result hydrates back to a working state.
	_, _, err = e.ProcessRaw(g, nextRaw, action(tilerush.ActionPass, "p2"))
	require.NoError(t, err)
}

func TestValidActions(t *testing.T) {
	e := newEngine(t)
	g, s := createGame(t, e, 42)

	actions, err := e.ValidActions(g, s, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{tilerush.ActionDrawTile, tilerush.ActionPass}, actions)

	actions, err = e.ValidActions(g, s, "p2")
	require.NoError(t, err)
	assert.Empty(t, actions, "inactive players have no legal actions")
}
