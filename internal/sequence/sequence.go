// Package sequence generates the digit sequences and letter stimuli shown
// to participants.
package sequence

import (
	"errors"
	"math/rand/v2"
	"time"
)

// DigitCount is the size of the keypad alphabet. Digits run 0..8; 9 never
// appears because the response keypad has nine keys.
const DigitCount = 9

// ErrInvalidLength is returned when a non-positive length is requested.
var ErrInvalidLength = errors.New("sequence length must be positive")

// Source is the random source consumed by generators. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a deterministic PCG source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSource returns a source seeded from the wall clock.
func NewTimeSource() *rand.Rand {
	return NewSource(uint64(time.Now().UnixNano()))
}

// Generator produces digit sequences from a Source.
type Generator struct {
	src Source
}

// New creates a Generator reading entropy from src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// Generate returns length digits, each uniform over 0..DigitCount-1.
func (g *Generator) Generate(length int) ([]int, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	seq := make([]int, length)
	for i := range seq {
		seq[i] = g.src.IntN(DigitCount)
	}
	return seq, nil
}

// Letter returns a random uppercase letter other than exclude.
func (g *Generator) Letter(exclude rune) rune {
	for {
		r := rune('A' + g.src.IntN(26))
		if r != exclude {
			return r
		}
	}
}

// Reverse returns a reversed copy of seq.
func Reverse(seq []int) []int {
	out := make([]int, len(seq))
	for i, d := range seq {
		out[len(seq)-1-i] = d
	}
	return out
}

// Format renders digits without separators, e.g. "371".
func Format(seq []int) string {
	b := make([]byte, len(seq))
	for i, d := range seq {
		b[i] = byte('0' + d)
	}
	return string(b)
}
