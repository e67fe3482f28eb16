package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// Roller rolls a bare NdM term and returns one face result per die, in the
// order the dice were rolled.
type Roller interface {
	Roll(notation string) ([]int, error)
}

// ParseSpec parses a bare NdM term such as "2d6".
//
// N may be zero. M must be at least one. Only ASCII digits are accepted on
// either side of the d.
func ParseSpec(notation string) (Spec, error) {
	count, sides, ok := strings.Cut(notation, "d")
	if !ok || !isDigits(count) || !isDigits(sides) {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: count %q: %v", ErrInvalidNotation, count, err)
	}
	m, err := strconv.Atoi(sides)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: sides %q: %v", ErrInvalidNotation, sides, err)
	}
	spec := Spec{Count: n, Sides: m}
	if !spec.valid() {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidDiceSpec, notation)
	}
	return spec, nil
}

// String renders the spec as NdM.
func (s Spec) String() string {
	return strconv.Itoa(s.Count) + "d" + strconv.Itoa(s.Sides)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// RandRoller is a Roller backed by a seeded math/rand source.
//
// It is safe for concurrent use; rolls from concurrent callers interleave on
// the shared source, so only single-caller sequences are reproducible.
type RandRoller struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewRandRoller returns a roller seeded with seed.
func NewRandRoller(seed int64) *RandRoller {
	return &RandRoller{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed reports the seed the roller was created with.
func (r *RandRoller) Seed() int64 {
	return r.seed
}

// Roll implements Roller.
func (r *RandRoller) Roll(notation string) ([]int, error) {
	spec, err := ParseSpec(notation)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result, err := RollWithRng(r.rng, []Spec{spec})
	if err != nil {
		return nil, err
	}
	return result.Rolls[0].Results, nil
}

// RollerFunc adapts a function to the Roller interface.
type RollerFunc func(notation string) ([]int, error)

// Roll implements Roller.
func (f RollerFunc) Roll(notation string) ([]int, error) {
	return f(notation)
}
