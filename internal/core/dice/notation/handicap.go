package notation

import (
	"fmt"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// HandicapKind selects which of two rolls a handicap keeps.
type HandicapKind int

const (
	HandicapUnspecified HandicapKind = iota
	// Advantage keeps the higher roll.
	Advantage
	// Disadvantage keeps the lower roll.
	Disadvantage
)

func (k HandicapKind) String() string {
	switch k {
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return "unspecified"
	}
}

// ParseHandicapKind parses "advantage" or "disadvantage", ignoring case and
// surrounding space.
func ParseHandicapKind(value string) (HandicapKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "advantage":
		return Advantage, nil
	case "disadvantage":
		return Disadvantage, nil
	default:
		return HandicapUnspecified, fmt.Errorf("%w: %q", ErrUnknownHandicap, value)
	}
}

// HandicapResult holds the kept total and both raw outcomes, in roll order.
type HandicapResult struct {
	Kind     HandicapKind
	Total    int
	Outcomes [2]dice.Roll
}

// Handicap rolls expression twice through the roll primitive and keeps the
// higher total for Advantage or the lower for Disadvantage.
//
// The expression goes to the roller as a whole, so it must be a bare NdM
// term (see IsSingleDie). Each call draws twice from the roller.
func (e *Evaluator) Handicap(kind HandicapKind, expression string) (HandicapResult, error) {
	if kind != Advantage && kind != Disadvantage {
		return HandicapResult{}, fmt.Errorf("%w: %v", ErrUnknownHandicap, kind)
	}
	if e == nil || e.roller == nil {
		return HandicapResult{}, ErrRollerRequired
	}
	spec, err := dice.ParseSpec(expression)
	if err != nil {
		return HandicapResult{}, fmt.Errorf("%w: %w", ErrRollFailed, err)
	}
	if spec.Count > e.maxDice {
		return HandicapResult{}, fmt.Errorf("%w: %d exceeds %d", ErrTooManyDice, spec.Count, e.maxDice)
	}

	result := HandicapResult{Kind: kind}
	for i := range result.Outcomes {
		results, err := e.roller.Roll(expression)
		if err != nil {
			return HandicapResult{}, fmt.Errorf("%w: %s: %w", ErrRollFailed, expression, err)
		}
		outcome, err := newRoll(spec, results)
		if err != nil {
			return HandicapResult{}, err
		}
		result.Outcomes[i] = outcome
	}

	first, second := result.Outcomes[0].Total, result.Outcomes[1].Total
	if kind == Advantage {
		result.Total = max(first, second)
	} else {
		result.Total = min(first, second)
	}
	return result, nil
}
