package notation

import (
	"fmt"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// Result is the outcome of evaluating an expression.
type Result struct {
	Total int
	// Rolls holds one entry per d reduction, in the order the reductions
	// happened (precedence and parentheses first, then left to right), not
	// the order the terms appear in the source.
	Rolls []dice.Roll
}

// DefaultMaxDice is the number of dice a single d reduction may roll unless
// WithMaxDice sets another cap.
const DefaultMaxDice = 100000

// Evaluator evaluates dice notation with a fixed operator table and roller.
// An Evaluator holds no per-call state and may be shared.
type Evaluator struct {
	operators Operators
	roller    dice.Roller
	maxDice   int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOperators replaces the default operator table.
func WithOperators(ops Operators) Option {
	return func(e *Evaluator) {
		if !ops.empty() {
			e.operators = ops
		}
	}
}

// WithMaxDice caps the number of dice a single d reduction may roll. Values
// below one keep DefaultMaxDice.
func WithMaxDice(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDice = n
		}
	}
}

// New returns an Evaluator that rolls dice with roller.
func New(roller dice.Roller, opts ...Option) *Evaluator {
	e := &Evaluator{
		operators: DefaultOperators(),
		roller:    roller,
		maxDice:   DefaultMaxDice,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Operators returns the evaluator's operator table.
func (e *Evaluator) Operators() Operators {
	return e.operators
}

// MaxDice reports the cap on dice per d reduction.
func (e *Evaluator) MaxDice() int {
	return e.maxDice
}

// Evaluate tokenizes and reduces expression.
//
// Callers are expected to check IsValid first; Evaluate does not enforce the
// admission bounds but fails cleanly on malformed input with
// ErrStackUnderflow, ErrUnbalancedParentheses or ErrLeftoverOperands.
// Division truncates toward zero and fails with ErrDivisionByZero on a zero
// divisor. No partial result is returned on error.
//
// Input accepted by IsValid can still fail in three ways: a divisor that is
// or rolls zero (ErrDivisionByZero), zero-sided dice (ErrRollFailed), and a
// chained d whose left side is itself a roll total above the dice cap, as in
// 100d1000d100d2 (ErrTooManyDice). Each d reduction is bounded by MaxDice,
// so chains never allocate past the cap.
func (e *Evaluator) Evaluate(expression string) (Result, error) {
	if e == nil || e.roller == nil {
		return Result{}, ErrRollerRequired
	}
	tokens, err := e.operators.Tokenize(expression)
	if err != nil {
		return Result{}, err
	}
	if len(tokens) == 0 {
		return Result{}, ErrEmptyExpression
	}

	run := evaluation{evaluator: e}
	for _, token := range tokens {
		if err := run.consume(token); err != nil {
			return Result{}, err
		}
	}
	return run.finish()
}

// evaluation is the working state of one Evaluate call.
type evaluation struct {
	evaluator *Evaluator
	values    stack[int]
	operators stack[Token]
	rolls     []dice.Roll
}

func (r *evaluation) consume(token Token) error {
	switch token.Kind {
	case TokenNumber:
		r.values.push(token.Value)
	case TokenLeftParen:
		r.operators.push(token)
	case TokenRightParen:
		return r.closeGroup(token)
	case TokenOperator:
		op, _ := r.evaluator.operators.Lookup(token.Text[0])
		// Equal precedence reduces first, which makes every operator
		// left-associative.
		for {
			top, ok := r.operators.peek()
			if !ok || top.Kind != TokenOperator {
				break
			}
			topOp, _ := r.evaluator.operators.Lookup(top.Text[0])
			if topOp.Precedence < op.Precedence {
				break
			}
			if err := r.reduce(); err != nil {
				return err
			}
		}
		r.operators.push(token)
	}
	return nil
}

func (r *evaluation) closeGroup(closing Token) error {
	for {
		top, ok := r.operators.peek()
		if !ok {
			return fmt.Errorf("%w: unmatched ) at offset %d", ErrUnbalancedParentheses, closing.Pos)
		}
		if top.Kind == TokenLeftParen {
			r.operators.pop()
			return nil
		}
		if err := r.reduce(); err != nil {
			return err
		}
	}
}

func (r *evaluation) finish() (Result, error) {
	for {
		top, ok := r.operators.peek()
		if !ok {
			break
		}
		if top.Kind == TokenLeftParen {
			return Result{}, fmt.Errorf("%w: unmatched ( at offset %d", ErrUnbalancedParentheses, top.Pos)
		}
		if err := r.reduce(); err != nil {
			return Result{}, err
		}
	}

	switch r.values.len() {
	case 0:
		return Result{}, ErrStackUnderflow
	case 1:
		total, _ := r.values.pop()
		return Result{Total: total, Rolls: r.rolls}, nil
	default:
		return Result{}, fmt.Errorf("%w: %d values remain", ErrLeftoverOperands, r.values.len())
	}
}

// reduce pops one operator and its two operands and pushes the result.
func (r *evaluation) reduce() error {
	token, _ := r.operators.pop()
	right, ok := r.values.pop()
	if !ok {
		return fmt.Errorf("%w: %q at offset %d", ErrStackUnderflow, token.Text, token.Pos)
	}
	left, ok := r.values.pop()
	if !ok {
		return fmt.Errorf("%w: %q at offset %d", ErrStackUnderflow, token.Text, token.Pos)
	}

	op, _ := r.evaluator.operators.Lookup(token.Text[0])
	if op.Kind == OperatorRoll {
		roll, err := r.evaluator.roll(left, right)
		if err != nil {
			return err
		}
		r.rolls = append(r.rolls, roll)
		r.values.push(roll.Total)
		return nil
	}

	value, err := op.apply(left, right)
	if err != nil {
		return fmt.Errorf("%w at offset %d", err, token.Pos)
	}
	r.values.push(value)
	return nil
}

// roll rolls count dice of the given sides through the roller and checks the
// roller kept its contract.
func (e *Evaluator) roll(count, sides int) (dice.Roll, error) {
	if count > e.maxDice {
		return dice.Roll{}, fmt.Errorf("%w: %d exceeds %d", ErrTooManyDice, count, e.maxDice)
	}
	spec := dice.Spec{Count: count, Sides: sides}
	if count < 0 || sides < 1 {
		return dice.Roll{}, fmt.Errorf("%w: %s: %w", ErrRollFailed, spec, dice.ErrInvalidDiceSpec)
	}
	results, err := e.roller.Roll(spec.String())
	if err != nil {
		return dice.Roll{}, fmt.Errorf("%w: %s: %w", ErrRollFailed, spec, err)
	}
	return newRoll(spec, results)
}

func newRoll(spec dice.Spec, results []int) (dice.Roll, error) {
	if len(results) != spec.Count {
		return dice.Roll{}, fmt.Errorf("%w: %s returned %d results", ErrRollFailed, spec, len(results))
	}
	total := 0
	for _, face := range results {
		if face < 1 || face > spec.Sides {
			return dice.Roll{}, fmt.Errorf("%w: %s returned face %d", ErrRollFailed, spec, face)
		}
		total += face
	}
	return dice.Roll{Sides: spec.Sides, Results: results, Total: total}, nil
}
