// Package random provides the deterministic pseudo-random number stream that
// is the sole source of randomness for game setup and shuffling. Replaying a
// game's action log from its recorded 32-bit seed must reproduce identical
// shuffles and random picks at every step, so the generator algorithm is
// pinned here rather than borrowed from math/rand, whose output is not
// stable across Go releases.
//
// Non-deterministic randomness (crypto/rand) is used in exactly one place:
// minting a fresh seed at game creation, outside the replay-sensitive path.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Func produces the next pseudo-random float64 in [0,1).
type Func func() float64

// increment is the Weyl-sequence step of the 32-bit mixing generator. The
// nth output depends only on seed and n, which is what makes a stream
// cursor (see Source) cheap to persist and restore.
const increment uint32 = 0x6D2B79F5

// value returns the nth output (1-based) of the stream for seed.
func value(seed uint32, n int) float64 {
	t := seed + uint32(n)*increment
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / (1 << 32)
}

// NewSeed returns a deterministic generator for the given seed. The same
// seed always yields the identical infinite output sequence.
func NewSeed(seed uint32) Func {
	return Restore(seed, 0)
}

// Restore returns a generator whose stream is fast-forwarded past the first
// calls outputs, so a game state rehydrated mid-game continues the exact
// stream it left off.
func Restore(seed uint32, calls int) Func {
	n := calls
	return func() float64 {
		n++
		return value(seed, n)
	}
}

// New mints a fresh non-deterministic seed and returns a generator for it
// along with the seed. Callers must record the seed or the game cannot be
// replayed.
func New() (Func, uint32) {
	seed := Seed()
	return NewSeed(seed), seed
}

// Seed draws a 32-bit seed from the ambient non-deterministic source.
func Seed() uint32 {
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform is broken
		panic(fmt.Sprintf("random: reading crypto seed: %v", err))
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Shuffle permutes n elements with the Fisher-Yates algorithm driven by r.
func Shuffle(n int, swap func(i, j int), r Func) {
	for i := n - 1; i > 0; i-- {
		j := int(r() * float64(i+1))
		swap(i, j)
	}
}

// Source is a serializable stream cursor: seed plus the number of outputs
// consumed so far. Game states embed one so that hydrating a stored state
// resumes the stream at the exact position it was dehydrated at.
type Source struct {
	Seed  uint32 `json:"seed"`
	Calls int    `json:"calls"`
}

// NewSource returns a cursor at the start of the stream for seed.
func NewSource(seed uint32) Source {
	return Source{Seed: seed}
}

// Float advances the cursor and returns the next output.
func (s *Source) Float() float64 {
	s.Calls++
	return value(s.Seed, s.Calls)
}

// Func exposes the cursor as a Func. Calls through the returned function
// advance the cursor.
func (s *Source) Func() Func {
	return s.Float
}
