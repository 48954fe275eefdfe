package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/errs"
	"tabletop/random"
)

type stubHydrator struct{}

func (stubHydrator) HydrateAction(map[string]any) (HydratedAction, error) { return &stubAction{}, nil }
func (stubHydrator) HydrateState(map[string]any) (State, error)           { return &stubState{}, nil }

func stubDefinition() *Definition {
	return &Definition{
		ID:       "sample",
		Metadata: Metadata{Name: "Sample", MinPlayers: 2, MaxPlayers: 4},
		Initialize: func(g *Game, src random.Source) (State, error) {
			return &stubState{Base: NewBase("startOfTurn", src)}, nil
		},
		Hydrator: stubHydrator{},
		StateHandlers: map[string]StateHandler{
			"startOfTurn": TerminalHandler{},
			"endOfGame":   TerminalHandler{},
		},
		APIActions: map[string]ActionFactory{
			"pass": func() HydratedAction { return &stubAction{} },
			"draw": func() HydratedAction { return &stubAction{} },
		},
	}
}

func TestDefinitionHandlerLookup(t *testing.T) {
	d := stubDefinition()

	h, err := d.Handler("startOfTurn")
	require.NoError(t, err)
	require.NotNil(t, h)

	_, err = d.Handler("noSuchState")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Configuration))
}

func TestDefinitionValidate(t *testing.T) {
	require.NoError(t, stubDefinition().Validate())

	for name, breakIt := range map[string]func(*Definition){
		"missing id":           func(d *Definition) { d.ID = "" },
		"missing initializer":  func(d *Definition) { d.Initialize = nil },
		"missing hydrator":     func(d *Definition) { d.Hydrator = nil },
		"no handlers":          func(d *Definition) { d.StateHandlers = nil },
		"no actions":           func(d *Definition) { d.APIActions = nil },
		"bad player bounds":    func(d *Definition) { d.Metadata.MaxPlayers = 1 },
		"zero minimum players": func(d *Definition) { d.Metadata.MinPlayers = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			d := stubDefinition()
			breakIt(d)
			err := d.Validate()
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.Configuration))
		})
	}
}

func TestDefinitionActionTypes(t *testing.T) {
	assert.Equal(t, []string{"draw", "pass"}, stubDefinition().ActionTypes())
}

func TestRegistry(t *testing.T) {
	d := stubDefinition()
	r, err := NewRegistry(d)
	require.NoError(t, err)

	got, err := r.Get("sample")
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = r.Get("missing")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.UnknownType))

	err = r.Register(d)
	require.Error(t, err, "duplicate registration")

	assert.Len(t, r.List(), 1)
}
