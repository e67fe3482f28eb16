// Package storage defines the roll journal contract shared by the dice
// service and its backends.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidFilter indicates a journal filter that cannot be parsed.
	ErrInvalidFilter = errors.New("invalid journal filter")
	// ErrInvalidPageToken indicates a page token not issued by the journal.
	ErrInvalidPageToken = errors.New("invalid journal page token")
)

// Page size limits for journal listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Kind names the operation that produced a journal record.
type Kind string

const (
	KindEvaluate     Kind = "evaluate"
	KindAdvantage    Kind = "advantage"
	KindDisadvantage Kind = "disadvantage"
)

// Record is one journaled roll. Rolls holds the die faces of every roll in
// the order they were made.
type Record struct {
	ID         int64
	Kind       Kind
	Expression string
	Total      int
	Rolls      [][]int
	CreatedAt  time.Time
}

// Query selects one page of journal records, newest first.
type Query struct {
	PageSize  int
	PageToken string
	Filter    string
}

// Page is one page of journal records.
type Page struct {
	Records       []Record
	NextPageToken string
}

// Journal persists and lists evaluated rolls.
type Journal interface {
	AppendRoll(ctx context.Context, record Record) (Record, error)
	ListRolls(ctx context.Context, query Query) (Page, error)
}

// ClampPageSize applies the default and maximum page size.
func ClampPageSize(value int) int {
	if value <= 0 {
		return DefaultPageSize
	}
	if value > MaxPageSize {
		return MaxPageSize
	}
	return value
}
