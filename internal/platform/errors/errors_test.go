package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := Wrap(CodeDiceDivisionByZero, "evaluate 1/0", stderrors.New("division by zero"))
	wrapped := fmt.Errorf("service: %w", err)

	if !stderrors.Is(wrapped, New(CodeDiceDivisionByZero, "")) {
		t.Fatal("expected match by code")
	}
	if stderrors.Is(wrapped, New(CodeDiceLeftoverOperands, "")) {
		t.Fatal("expected different code not to match")
	}
}

func TestErrorUnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("roller offline")
	err := Wrap(CodeUnknown, "evaluate", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("x: %w", New(CodeDiceTooManyDice, "too many"))); got != CodeDiceTooManyDice {
		t.Fatalf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("GetCode = %s, want UNKNOWN", got)
	}
}

func TestIsClientError(t *testing.T) {
	if !CodeDiceUnbalancedParentheses.IsClientError() {
		t.Fatal("expected unbalanced parentheses to be a client error")
	}
	if CodeJournalUnavailable.IsClientError() || CodeUnknown.IsClientError() {
		t.Fatal("expected server-side codes not to be client errors")
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeDiceInvalidNotation, "invalid", map[string]string{"Expression": "2d"})

	if got := err.LocalizedMessage("en-US"); got != `"2d" is not valid dice notation.` {
		t.Fatalf("en-US message = %q", got)
	}
	if got := err.LocalizedMessage("pt-BR"); got != `"2d" não é uma notação de dados válida.` {
		t.Fatalf("pt-BR message = %q", got)
	}
}
