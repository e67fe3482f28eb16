// Package notation validates and evaluates dice notation expressions such as
// "2d6+3*4".
//
// Evaluation is a two-stack operator-precedence reduction. Every application
// of the d operator calls the dice roll primitive and records the individual
// faces, so a Result carries both the total and the roll log in reduction
// order.
package notation

import (
	"fmt"
	"sort"
)

// OperatorKind selects the reduction an operator performs.
type OperatorKind int

const (
	OperatorUnspecified OperatorKind = iota
	OperatorAdd
	OperatorSubtract
	OperatorMultiply
	OperatorDivide
	OperatorRoll
)

func (k OperatorKind) String() string {
	switch k {
	case OperatorAdd:
		return "add"
	case OperatorSubtract:
		return "subtract"
	case OperatorMultiply:
		return "multiply"
	case OperatorDivide:
		return "divide"
	case OperatorRoll:
		return "roll"
	default:
		return "unspecified"
	}
}

// Operator binds a one-character symbol to a reduction and its precedence.
// Higher precedence binds tighter.
type Operator struct {
	Symbol     byte
	Kind       OperatorKind
	Precedence int
}

// Operators is an immutable operator table keyed by symbol.
type Operators struct {
	bySymbol map[byte]Operator
}

// NewOperators builds a table from ops. Symbols must be unique, must not be a
// digit or parenthesis, and every operator needs a known kind.
func NewOperators(ops ...Operator) (Operators, error) {
	if len(ops) == 0 {
		return Operators{}, fmt.Errorf("%w: no operators", ErrInvalidOperatorTable)
	}
	bySymbol := make(map[byte]Operator, len(ops))
	for _, op := range ops {
		if isDigit(op.Symbol) || op.Symbol == '(' || op.Symbol == ')' || op.Symbol == 0 {
			return Operators{}, fmt.Errorf("%w: reserved symbol %q", ErrInvalidOperatorTable, op.Symbol)
		}
		if op.Kind <= OperatorUnspecified || op.Kind > OperatorRoll {
			return Operators{}, fmt.Errorf("%w: symbol %q has no kind", ErrInvalidOperatorTable, op.Symbol)
		}
		if _, exists := bySymbol[op.Symbol]; exists {
			return Operators{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidOperatorTable, op.Symbol)
		}
		bySymbol[op.Symbol] = op
	}
	return Operators{bySymbol: bySymbol}, nil
}

// DefaultOperators returns the standard table: + and - bind loosest, * and /
// above them, and d tightest.
func DefaultOperators() Operators {
	ops, err := NewOperators(
		Operator{Symbol: '+', Kind: OperatorAdd, Precedence: 0},
		Operator{Symbol: '-', Kind: OperatorSubtract, Precedence: 0},
		Operator{Symbol: '*', Kind: OperatorMultiply, Precedence: 1},
		Operator{Symbol: '/', Kind: OperatorDivide, Precedence: 1},
		Operator{Symbol: 'd', Kind: OperatorRoll, Precedence: 2},
	)
	if err != nil {
		// Unreachable: the table above is fixed and valid.
		panic(err)
	}
	return ops
}

// Lookup returns the operator registered for symbol.
func (o Operators) Lookup(symbol byte) (Operator, bool) {
	op, ok := o.bySymbol[symbol]
	return op, ok
}

// symbols returns the registered symbols in byte order.
func (o Operators) symbols() []byte {
	out := make([]byte, 0, len(o.bySymbol))
	for symbol := range o.bySymbol {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (o Operators) empty() bool {
	return len(o.bySymbol) == 0
}

// apply reduces an arithmetic operator. Roll operators are handled by the
// evaluator because they need the roller.
func (op Operator) apply(left, right int) (int, error) {
	switch op.Kind {
	case OperatorAdd:
		return left + right, nil
	case OperatorSubtract:
		return left - right, nil
	case OperatorMultiply:
		return left * right, nil
	case OperatorDivide:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		// Go integer division truncates toward zero.
		return left / right, nil
	default:
		return 0, fmt.Errorf("operator %q cannot be applied arithmetically", op.Symbol)
	}
}
