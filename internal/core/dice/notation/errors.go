package notation

import "errors"

var (
	// ErrEmptyExpression indicates the expression produced no tokens.
	ErrEmptyExpression = errors.New("expression is empty")
	// ErrStackUnderflow indicates an operator had fewer than two operands.
	ErrStackUnderflow = errors.New("operator is missing an operand")
	// ErrUnbalancedParentheses indicates an unmatched ( or ).
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	// ErrDivisionByZero indicates a / reduction with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrLeftoverOperands indicates operands remained with no operator to combine them.
	ErrLeftoverOperands = errors.New("operands left without an operator")
	// ErrNumberOutOfRange indicates an integer literal does not fit in an int.
	ErrNumberOutOfRange = errors.New("number out of range")
	// ErrTooManyDice indicates a d reduction asked for more dice than allowed.
	ErrTooManyDice = errors.New("too many dice in one roll")
	// ErrRollFailed indicates the roll primitive rejected or mangled a request.
	ErrRollFailed = errors.New("dice roll failed")
	// ErrRollerRequired indicates an evaluator was built without a roller.
	ErrRollerRequired = errors.New("dice roller is required")
	// ErrUnknownHandicap indicates a handicap kind other than advantage or disadvantage.
	ErrUnknownHandicap = errors.New("handicap must be advantage or disadvantage")
	// ErrInvalidOperatorTable indicates a malformed operator configuration.
	ErrInvalidOperatorTable = errors.New("invalid operator table")
)
