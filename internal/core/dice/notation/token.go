package notation

import (
	"fmt"
	"strconv"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenNumber TokenKind = iota + 1
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of an expression.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int // set for TokenNumber
	Pos   int // byte offset in the source expression
}

// Tokenize splits expression using the default operator table.
func Tokenize(expression string) ([]Token, error) {
	return DefaultOperators().Tokenize(expression)
}

// Tokenize splits expression into tokens, left to right. A maximal run of
// digits is one number; parentheses and registered operator symbols are one
// token each; every other byte is skipped. Grammar is not checked here.
func (o Operators) Tokenize(expression string) ([]Token, error) {
	tokens := make([]Token, 0, len(expression))
	for i := 0; i < len(expression); {
		c := expression[i]
		switch {
		case isDigit(c):
			start := i
			for i < len(expression) && isDigit(expression[i]) {
				i++
			}
			text := expression[start:i]
			value, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at offset %d", ErrNumberOutOfRange, text, start)
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text, Value: value, Pos: start})
			continue
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLeftParen, Text: "(", Pos: i})
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRightParen, Text: ")", Pos: i})
		default:
			if _, ok := o.Lookup(c); ok {
				tokens = append(tokens, Token{Kind: TokenOperator, Text: string(c), Pos: i})
			}
		}
		i++
	}
	return tokens, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
