package game

import (
	"tabletop/hydrate"
)

// FieldUpdate is a single config field change coming from the game setup
// screen.
type FieldUpdate struct {
	ID    string `json:"id" validate:"required"`
	Value any    `json:"value"`
}

// Configurator validates and updates a game's configurable rule variants.
// It is a narrow, game-specific validation surface, not a rules engine.
type Configurator interface {
	// ValidateConfig checks a raw config object and fails with every field
	// error aggregated.
	ValidateConfig(cfg map[string]any) error

	// UpdateConfig applies one field update and returns the new config.
	// The input map is not mutated.
	UpdateConfig(cfg map[string]any, upd FieldUpdate) (map[string]any, error)
}

// SchemaConfigurator is a Configurator backed by a typed config struct C:
// validation is C's schema tags, updates are set-then-revalidate. AfterUpdate,
// when set, runs on the typed config after each update so games can enforce
// cross-field rules such as forcing one of two mutually exclusive toggles
// off when the other is switched on.
type SchemaConfigurator[C any] struct {
	AfterUpdate func(cfg *C, upd FieldUpdate) error
}

func (s SchemaConfigurator[C]) ValidateConfig(cfg map[string]any) error {
	_, err := hydrate.HydrateStrict[C](cfg)
	return err
}

func (s SchemaConfigurator[C]) UpdateConfig(cfg map[string]any, upd FieldUpdate) (map[string]any, error) {
	next := make(map[string]any, len(cfg)+1)
	for k, v := range cfg {
		next[k] = v
	}
	next[upd.ID] = upd.Value

	typed, err := hydrate.HydrateStrict[C](next)
	if err != nil {
		return nil, err
	}
	if s.AfterUpdate != nil {
		if err := s.AfterUpdate(typed, upd); err != nil {
			return nil, err
		}
	}
	return hydrate.Dehydrate(typed)
}
