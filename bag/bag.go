// Package bag implements a generic, order-randomized multiset used by games
// for card and tile decks.
package bag

import (
	"tabletop/errs"
	"tabletop/random"
)

// Bag holds a shuffled collection of items drawn one at a time. Drawn items
// are not physically removed: Remaining is a cursor into the backing array,
// and everything at or past it counts as already consumed. An outer undo
// layer rewinds a draw by bumping Remaining back up, so the backing array
// must be left intact.
//
// Fields are exported so a bag can live inside a serialized game state.
type Bag[T any] struct {
	Items     []T `json:"items"`
	Remaining int `json:"remaining"`
}

// New builds a bag from items, shuffling a private copy with r. Games must
// pass the state's seeded generator here; anything else breaks replay.
func New[T any](items []T, r random.Func) *Bag[T] {
	backing := make([]T, len(items))
	copy(backing, items)
	random.Shuffle(len(backing), func(i, j int) {
		backing[i], backing[j] = backing[j], backing[i]
	}, r)
	return &Bag[T]{Items: backing, Remaining: len(backing)}
}

// Draw consumes and returns the top remaining item. State handlers must
// guarantee draw-eligibility first; an empty draw is a logic bug.
func (b *Bag[T]) Draw() (T, error) {
	var zero T
	if b.Remaining == 0 {
		return zero, errs.New(errs.EmptyResource, "drawing from empty bag")
	}
	b.Remaining--
	return b.Items[b.Remaining], nil
}

// Peek returns the item the next Draw would yield without consuming it.
func (b *Bag[T]) Peek() (T, error) {
	var zero T
	if b.Remaining == 0 {
		return zero, errs.New(errs.EmptyResource, "peeking into empty bag")
	}
	return b.Items[b.Remaining-1], nil
}

// Count returns the number of items still drawable.
func (b *Bag[T]) Count() int {
	return b.Remaining
}

// IsEmpty reports whether all items have been drawn.
func (b *Bag[T]) IsEmpty() bool {
	return b.Remaining == 0
}
