// Package dice implements the dice-roll primitive used by notation evaluation.
//
// The primitive knows nothing about arithmetic: given a count and a number of
// sides it produces one face result per die. Expression parsing lives in the
// notation subpackage.
package dice

import "errors"

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and a non-negative count")

// ErrInvalidNotation indicates a string is not a bare NdM term.
var ErrInvalidNotation = errors.New("dice notation must have the form NdM")

// Spec describes a die to roll and how many times to roll it.
type Spec struct {
	Sides int
	Count int
}

// Roll captures the results for a single dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result captures the results from rolling multiple dice.
type Result struct {
	Rolls []Roll
	Total int
}
