package notation

import (
	"errors"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// onesRoller rolls every die as a 1.
var onesRoller = dice.RollerFunc(func(notation string) ([]int, error) {
	spec, err := dice.ParseSpec(notation)
	if err != nil {
		return nil, err
	}
	faces := make([]int, spec.Count)
	for i := range faces {
		faces[i] = 1
	}
	return faces, nil
})

// scriptedRoller replays faces in order and records every notation it saw.
type scriptedRoller struct {
	calls []string
	faces [][]int
}

func (s *scriptedRoller) Roll(notation string) ([]int, error) {
	s.calls = append(s.calls, notation)
	if len(s.faces) == 0 {
		return nil, errors.New("script exhausted")
	}
	next := s.faces[0]
	s.faces = s.faces[1:]
	return next, nil
}

// countingRoller rolls every die at its highest face and records how many
// dice each call asked for.
type countingRoller struct {
	counts []int
}

func (c *countingRoller) Roll(notation string) ([]int, error) {
	spec, err := dice.ParseSpec(notation)
	if err != nil {
		return nil, err
	}
	c.counts = append(c.counts, spec.Count)
	faces := make([]int, spec.Count)
	for i := range faces {
		faces[i] = spec.Sides
	}
	return faces, nil
}
