package dice

import "math/rand"

// RollWithRng rolls each spec in order from rng.
//
// Rolls in the result appear in the same order as specs, and the same rng
// state and specs always produce the same Result.
//
//   - At least one Spec must be provided, otherwise ErrMissingDice is
//     returned.
//   - Each Spec must have Sides > 0 and Count >= 0, otherwise
//     ErrInvalidDiceSpec is returned. A zero count yields an empty Roll.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if !spec.valid() {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0
	for _, spec := range specs {
		roll := rollSpec(rng, spec)
		rolls = append(rolls, roll)
		total += roll.Total
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

func (s Spec) valid() bool {
	return s.Sides > 0 && s.Count >= 0
}

func rollSpec(rng *rand.Rand, spec Spec) Roll {
	results := make([]int, spec.Count)
	total := 0
	for i := range results {
		value := rollDie(rng, spec.Sides)
		results[i] = value
		total += value
	}
	return Roll{
		Sides:   spec.Sides,
		Results: results,
		Total:   total,
	}
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}

// Faces copies the face results of each roll. Empty rolls yield empty, non-nil
// slices.
func Faces(rolls []Roll) [][]int {
	out := make([][]int, 0, len(rolls))
	for _, roll := range rolls {
		results := make([]int, len(roll.Results))
		copy(results, roll.Results)
		out = append(out, results)
	}
	return out
}
