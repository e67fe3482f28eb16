// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeDiceInvalidNotation       Code = "DICE_INVALID_NOTATION"
	CodeDiceEmptyExpression       Code = "DICE_EMPTY_EXPRESSION"
	CodeDiceUnbalancedParentheses Code = "DICE_UNBALANCED_PARENTHESES"
	CodeDiceDivisionByZero        Code = "DICE_DIVISION_BY_ZERO"
	CodeDiceLeftoverOperands      Code = "DICE_LEFTOVER_OPERANDS"
	CodeDiceStackUnderflow        Code = "DICE_STACK_UNDERFLOW"
	CodeDiceNumberOutOfRange      Code = "DICE_NUMBER_OUT_OF_RANGE"
	CodeDiceTooManyDice           Code = "DICE_TOO_MANY_DICE"
	CodeDiceInvalidSpec           Code = "DICE_INVALID_SPEC"
	CodeDiceUnknownHandicap       Code = "DICE_UNKNOWN_HANDICAP"
	CodeDiceHandicapNotSingleDie  Code = "DICE_HANDICAP_NOT_SINGLE_DIE"

	// Journal errors
	CodeJournalInvalidFilter    Code = "JOURNAL_INVALID_FILTER"
	CodeJournalInvalidPageToken Code = "JOURNAL_INVALID_PAGE_TOKEN"
	CodeJournalUnavailable      Code = "JOURNAL_UNAVAILABLE"
)

// IsClientError reports whether the code describes bad caller input rather
// than a failure on our side.
func (c Code) IsClientError() bool {
	switch c {
	case CodeDiceInvalidNotation,
		CodeDiceEmptyExpression,
		CodeDiceUnbalancedParentheses,
		CodeDiceDivisionByZero,
		CodeDiceLeftoverOperands,
		CodeDiceStackUnderflow,
		CodeDiceNumberOutOfRange,
		CodeDiceTooManyDice,
		CodeDiceInvalidSpec,
		CodeDiceUnknownHandicap,
		CodeDiceHandicapNotSingleDie,
		CodeJournalInvalidFilter,
		CodeJournalInvalidPageToken:
		return true
	default:
		return false
	}
}
