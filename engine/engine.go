// Package engine drives arbitrary board games through a single action
// pipeline: hydrate, check validity, apply, pick the next machine state,
// enter it. The engine performs no I/O and keeps no per-game cache; replay
// of an action log from the recorded seed is a pure fold.
//
// The engine is synchronous and single-threaded per game-state value.
// Callers must serialize action applications for one game instance; two
// different games are fully independent.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tabletop/errs"
	"tabletop/game"
	"tabletop/random"
)

// Engine runs one game definition. It is stateless between calls: every
// operation receives the game record and state it works on.
type Engine struct {
	def    *game.Definition
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine debug output to the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the engine's clock, used to stamp accepted actions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New builds an engine for a definition, rejecting incomplete ones.
func New(def *game.Definition, options ...Option) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		def:    def,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Definition returns the definition this engine runs.
func (e *Engine) Definition() *game.Definition {
	return e.def
}

// CreateOptions parameterizes game creation. A zero Seed pointer means
// "mint a fresh non-deterministic seed"; tests and forks pass an explicit
// one.
type CreateOptions struct {
	GameID  string
	Seed    *uint32
	Players []game.Player
	Config  map[string]any
}

// CreateGame mints a game record, validates the config and roster against
// the definition, runs the game's initializer from the seed, and enters the
// initial machine state. The roster is frozen from here on.
func (e *Engine) CreateGame(opts CreateOptions) (*game.Game, game.State, error) {
	joined := 0
	for _, p := range opts.Players {
		if p.Status == game.PlayerStatusJoined {
			joined++
		}
	}
	meta := e.def.Metadata
	if joined < meta.MinPlayers || joined > meta.MaxPlayers {
		return nil, nil, errs.Newf(errs.Configuration,
			"game %q seats %d-%d players, got %d", e.def.ID, meta.MinPlayers, meta.MaxPlayers, joined)
	}

	if e.def.Configurator != nil && opts.Config != nil {
		if err := e.def.Configurator.ValidateConfig(opts.Config); err != nil {
			return nil, nil, err
		}
	}

	seed := random.Seed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	id := opts.GameID
	if id == "" {
		id = uuid.NewString()
	}

	now := e.now()
	g := &game.Game{
		ID:        id,
		TypeID:    e.def.ID,
		Seed:      seed,
		Status:    game.GameStatusStarted,
		Players:   opts.Players,
		Config:    opts.Config,
		CreatedAt: now,
		StartedAt: &now,
	}

	state, err := e.initialState(g)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Debug().
		Str("gameId", g.ID).
		Str("gameType", g.TypeID).
		Uint32("seed", seed).
		Str("machineState", state.Core().MachineState).
		Msg("game created")

	return g, state, nil
}

// initialState runs the initializer and enters the initial machine state,
// exactly once, before any action is processed. Replay starts from here too.
func (e *Engine) initialState(g *game.Game) (game.State, error) {
	state, err := e.def.Initialize(g, random.NewSource(g.Seed))
	if err != nil {
		return nil, err
	}
	ctx := &game.Context{Game: g, State: state, Definition: e.def}
	handler, err := e.def.Handler(state.Core().MachineState)
	if err != nil {
		return nil, err
	}
	if err := handler.Enter(ctx); err != nil {
		return nil, err
	}
	return state, nil
}

// ValidActions returns the action type names currently legal for a player:
// the allow-list the route layer checks and the UI renders.
func (e *Engine) ValidActions(g *game.Game, s game.State, playerID string) ([]string, error) {
	handler, err := e.def.Handler(s.Core().MachineState)
	if err != nil {
		return nil, err
	}
	ctx := &game.Context{Game: g, State: s, Definition: e.def}
	return handler.ValidActionsForPlayer(playerID, ctx), nil
}
