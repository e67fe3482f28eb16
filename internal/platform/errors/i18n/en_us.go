package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                   = "UNKNOWN"
	CodeDiceInvalidNotation       = "DICE_INVALID_NOTATION"
	CodeDiceEmptyExpression       = "DICE_EMPTY_EXPRESSION"
	CodeDiceUnbalancedParentheses = "DICE_UNBALANCED_PARENTHESES"
	CodeDiceDivisionByZero        = "DICE_DIVISION_BY_ZERO"
	CodeDiceLeftoverOperands      = "DICE_LEFTOVER_OPERANDS"
	CodeDiceStackUnderflow        = "DICE_STACK_UNDERFLOW"
	CodeDiceNumberOutOfRange      = "DICE_NUMBER_OUT_OF_RANGE"
	CodeDiceTooManyDice           = "DICE_TOO_MANY_DICE"
	CodeDiceInvalidSpec           = "DICE_INVALID_SPEC"
	CodeDiceUnknownHandicap       = "DICE_UNKNOWN_HANDICAP"
	CodeDiceHandicapNotSingleDie  = "DICE_HANDICAP_NOT_SINGLE_DIE"
	CodeJournalInvalidFilter      = "JOURNAL_INVALID_FILTER"
	CodeJournalInvalidPageToken   = "JOURNAL_INVALID_PAGE_TOKEN"
	CodeJournalUnavailable        = "JOURNAL_UNAVAILABLE"
)

var enUSMessages = map[Code]string{
	CodeUnknown:                   "Something went wrong while rolling.",
	CodeDiceInvalidNotation:       `"{{.Expression}}" is not valid dice notation.`,
	CodeDiceEmptyExpression:       "Enter a dice expression to roll.",
	CodeDiceUnbalancedParentheses: `"{{.Expression}}" has unbalanced parentheses.`,
	CodeDiceDivisionByZero:        `"{{.Expression}}" divides by zero.`,
	CodeDiceLeftoverOperands:      `"{{.Expression}}" is missing an operator between values.`,
	CodeDiceStackUnderflow:        `"{{.Expression}}" has an operator without a value.`,
	CodeDiceNumberOutOfRange:      `"{{.Expression}}" contains a number that is too large.`,
	CodeDiceTooManyDice:           `"{{.Expression}}" rolls more than {{.MaxDice}} dice at once.`,
	CodeDiceInvalidSpec:           `"{{.Expression}}" asks for dice that cannot be rolled.`,
	CodeDiceUnknownHandicap:       `"{{.Kind}}" is not a handicap; use advantage or disadvantage.`,
	CodeDiceHandicapNotSingleDie:  `Advantage and disadvantage need a single NdM roll, got "{{.Expression}}".`,
	CodeJournalInvalidFilter:      "The history filter is not valid: {{.Reason}}",
	CodeJournalInvalidPageToken:   "The history page token is not valid.",
	CodeJournalUnavailable:        "Roll history is not available.",
}

func init() {
	RegisterCatalog(BaseLocale, NewCatalog(BaseLocale, enUSMessages))
}
