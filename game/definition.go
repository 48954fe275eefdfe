package game

import (
	"sort"

	"github.com/rs/zerolog"

	"tabletop/errs"
	"tabletop/random"
)

// Metadata describes a game for listings and seat-count validation.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MinPlayers  int    `json:"minPlayers"`
	MaxPlayers  int    `json:"maxPlayers"`
}

// Initializer builds a game's initial hydrated state from the frozen roster
// and the seeded random cursor. It must store the cursor in the state's
// Base and take all setup randomness (shuffles, random picks) from it.
type Initializer func(g *Game, src random.Source) (State, error)

// Hydrator turns raw data into a game's typed actions and state. Action
// hydration dispatches on the envelope's type field over the closed set of
// variants the game registers; an unrecognized type is a configuration
// mistake, not a user error.
type Hydrator interface {
	HydrateAction(raw map[string]any) (HydratedAction, error)
	HydrateState(raw map[string]any) (State, error)
}

// StateLogger lets a game dump whatever it finds useful about a state
// through the engine's logger after each accepted action.
type StateLogger func(logger *zerolog.Logger, s State)

// ActionFactory returns a zero value of one concrete action variant.
type ActionFactory func() HydratedAction

// Definition is the composition root binding one game's pieces into the
// shape the engine consumes uniformly. APIActions doubles as the table the
// route layer uses to generate one endpoint per action type, so its keys
// must cover every type the hydrator accepts.
type Definition struct {
	ID            string
	Metadata      Metadata
	Initialize    Initializer
	Hydrator      Hydrator
	StateHandlers map[string]StateHandler
	APIActions    map[string]ActionFactory
	PlayerColors  []string
	Configurator  Configurator
	StateLogger   StateLogger
}

// Handler looks up the handler for a machine state. The handler table is
// total over reachable states; a miss is fatal.
func (d *Definition) Handler(machineState string) (StateHandler, error) {
	h, ok := d.StateHandlers[machineState]
	if !ok {
		return nil, errs.Newf(errs.Configuration,
			"game %q has no handler for machine state %q", d.ID, machineState)
	}
	return h, nil
}

// ActionTypes returns the registered action type names, sorted.
func (d *Definition) ActionTypes() []string {
	types := make([]string, 0, len(d.APIActions))
	for t := range d.APIActions {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks the definition for completeness before an engine will
// accept it.
func (d *Definition) Validate() error {
	switch {
	case d.ID == "":
		return errs.New(errs.Configuration, "definition has no id")
	case d.Initialize == nil:
		return errs.Newf(errs.Configuration, "game %q has no initializer", d.ID)
	case d.Hydrator == nil:
		return errs.Newf(errs.Configuration, "game %q has no hydrator", d.ID)
	case len(d.StateHandlers) == 0:
		return errs.Newf(errs.Configuration, "game %q has no state handlers", d.ID)
	case len(d.APIActions) == 0:
		return errs.Newf(errs.Configuration, "game %q registers no actions", d.ID)
	case d.Metadata.MinPlayers < 1 || d.Metadata.MaxPlayers < d.Metadata.MinPlayers:
		return errs.Newf(errs.Configuration, "game %q has invalid player bounds", d.ID)
	}
	return nil
}

// Registry is the table of installed game definitions, keyed by id. The
// route layer walks it to expose one API surface per game.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry builds a registry from the given definitions.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a definition, rejecting duplicates and incomplete tables.
func (r *Registry) Register(d *Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, exists := r.defs[d.ID]; exists {
		return errs.Newf(errs.Configuration, "game %q registered twice", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Get returns the definition for id.
func (r *Registry) Get(id string) (*Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, errs.Newf(errs.UnknownType, "no game definition %q", id)
	}
	return d, nil
}

// List returns all registered definitions sorted by id.
func (r *Registry) List() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
