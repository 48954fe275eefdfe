package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	t.Run("engine error", func(t *testing.T) {
		err := New(IllegalAction, "bid too low")
		assert.Equal(t, IllegalAction, CategoryOf(err))
		assert.True(t, Is(err, IllegalAction))
		assert.False(t, Is(err, Validation))
	})

	t.Run("wrapped engine error", func(t *testing.T) {
		err := fmt.Errorf("processing action: %w", New(UnknownType, "no such action"))
		assert.Equal(t, UnknownType, CategoryOf(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, Category(""), CategoryOf(errors.New("nope")))
		assert.False(t, Is(errors.New("nope"), Validation))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("decode failed")
	err := Wrap(cause, Validation, "schema check failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "decode failed")
}

func TestWithMeta(t *testing.T) {
	err := New(Validation, "schema check failed").
		WithMeta("violations", []string{"Type is required"}).
		WithMeta("actionId", "a1")

	meta := MetaOf(err)
	require.NotNil(t, meta)
	assert.Equal(t, []string{"Type is required"}, meta["violations"])
	assert.Equal(t, "a1", meta["actionId"])

	assert.Nil(t, MetaOf(errors.New("plain")))
}
