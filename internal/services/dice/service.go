// Package dice is the application service around the notation evaluator: it
// admits expressions through the validator, evaluates them, maps failures to
// domain error codes and journals completed rolls.
package dice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	coredice "github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/dice/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/platform/timeouts"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/dicenotation/internal/services/dice"

// Span attribute keys.
const (
	attrExpression = attribute.Key("dice.expression")
	attrTotal      = attribute.Key("dice.total")
	attrRollCount  = attribute.Key("dice.roll_count")
	attrHandicap   = attribute.Key("dice.handicap")
	attrErrorCode  = attribute.Key("dice.error_code")
)

// Validation reports what the validator thinks of an expression.
type Validation struct {
	Valid     bool
	SingleDie bool
}

// Service evaluates dice expressions for transport adapters.
type Service struct {
	evaluator *notation.Evaluator
	journal   storage.Journal
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithJournal records every successful evaluation and handicap in journal.
func WithJournal(journal storage.Journal) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithTracerProvider sets the provider spans are started from. The global
// provider is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.tracer = provider.Tracer(tracerName)
		}
	}
}

// NewService builds a Service around evaluator.
func NewService(evaluator *notation.Evaluator, opts ...Option) (*Service, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	s := &Service{
		evaluator: evaluator,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Validate runs the admission checks on expression without rolling.
func (s *Service) Validate(ctx context.Context, expression string) Validation {
	_, span := s.tracer.Start(ctx, "dice.Validate", trace.WithAttributes(attrExpression.String(expression)))
	defer span.End()

	return Validation{
		Valid:     notation.IsValid(expression),
		SingleDie: notation.IsSingleDie(expression),
	}
}

// Evaluate validates and evaluates expression.
func (s *Service) Evaluate(ctx context.Context, expression string) (notation.Result, error) {
	ctx, span := s.tracer.Start(ctx, "dice.Evaluate", trace.WithAttributes(attrExpression.String(expression)))
	defer span.End()

	if strings.TrimSpace(expression) == "" {
		return notation.Result{}, s.fail(span, expression, notation.ErrEmptyExpression)
	}
	if !notation.IsValid(expression) {
		return notation.Result{}, s.fail(span, expression, apperrors.WithMetadata(
			apperrors.CodeDiceInvalidNotation,
			"expression rejected by validator",
			map[string]string{"Expression": expression},
		))
	}

	result, err := s.evaluator.Evaluate(expression)
	if err != nil {
		return notation.Result{}, s.fail(span, expression, err)
	}
	span.SetAttributes(attrTotal.Int(result.Total), attrRollCount.Int(len(result.Rolls)))

	s.record(ctx, storage.Record{
		Kind:       storage.KindEvaluate,
		Expression: expression,
		Total:      result.Total,
		Rolls:      coredice.Faces(result.Rolls),
	})
	return result, nil
}

// Handicap rolls a single NdM expression twice and keeps the better or worse
// outcome according to kind.
func (s *Service) Handicap(ctx context.Context, kind, expression string) (notation.HandicapResult, error) {
	ctx, span := s.tracer.Start(ctx, "dice.Handicap", trace.WithAttributes(
		attrExpression.String(expression),
		attrHandicap.String(kind),
	))
	defer span.End()

	handicap, err := notation.ParseHandicapKind(kind)
	if err != nil {
		return notation.HandicapResult{}, s.fail(span, expression, apperrors.WrapWithMetadata(
			apperrors.CodeDiceUnknownHandicap,
			err.Error(),
			map[string]string{"Kind": kind, "Expression": expression},
			err,
		))
	}
	if !notation.IsSingleDie(expression) {
		return notation.HandicapResult{}, s.fail(span, expression, apperrors.WithMetadata(
			apperrors.CodeDiceHandicapNotSingleDie,
			"handicap expression is not a single NdM term",
			map[string]string{"Expression": expression},
		))
	}

	result, err := s.evaluator.Handicap(handicap, expression)
	if err != nil {
		return notation.HandicapResult{}, s.fail(span, expression, err)
	}
	span.SetAttributes(attrTotal.Int(result.Total), attrRollCount.Int(len(result.Outcomes)))

	recordKind := storage.KindAdvantage
	if handicap == notation.Disadvantage {
		recordKind = storage.KindDisadvantage
	}
	s.record(ctx, storage.Record{
		Kind:       recordKind,
		Expression: expression,
		Total:      result.Total,
		Rolls:      coredice.Faces(result.Outcomes[:]),
	})
	return result, nil
}

// History lists journaled rolls, newest first.
func (s *Service) History(ctx context.Context, query storage.Query) (storage.Page, error) {
	ctx, span := s.tracer.Start(ctx, "dice.History")
	defer span.End()

	if s.journal == nil {
		return storage.Page{}, s.fail(span, "", apperrors.New(apperrors.CodeJournalUnavailable, "roll journal is disabled"))
	}
	page, err := s.journal.ListRolls(ctx, query)
	switch {
	case err == nil:
		span.SetAttributes(attrRollCount.Int(len(page.Records)))
		return page, nil
	case errors.Is(err, storage.ErrInvalidFilter):
		return storage.Page{}, s.fail(span, "", apperrors.WrapWithMetadata(
			apperrors.CodeJournalInvalidFilter,
			err.Error(),
			map[string]string{"Reason": filterReason(err)},
			err,
		))
	case errors.Is(err, storage.ErrInvalidPageToken):
		return storage.Page{}, s.fail(span, "", apperrors.Wrap(apperrors.CodeJournalInvalidPageToken, err.Error(), err))
	default:
		return storage.Page{}, s.fail(span, "", apperrors.Wrap(apperrors.CodeJournalUnavailable, "list rolls", err))
	}
}

// record journals a completed roll. Journal failures are logged and never
// reach the caller.
func (s *Service) record(ctx context.Context, record storage.Record) {
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.JournalWrite)
	defer cancel()
	if _, err := s.journal.AppendRoll(ctx, record); err != nil {
		log.Printf("dice journal: append %s %q: %v", record.Kind, record.Expression, err)
	}
}

// fail converts err to a domain error and marks the span as failed.
func (s *Service) fail(span trace.Span, expression string, err error) error {
	domainErr := s.toDomainError(expression, err)
	span.RecordError(err)
	span.SetAttributes(attrErrorCode.String(string(domainErr.Code)))
	span.SetStatus(codes.Error, domainErr.Message)
	if !domainErr.Code.IsClientError() {
		log.Printf("dice %s: %v", domainErr.Code, err)
	}
	return domainErr
}

func (s *Service) toDomainError(expression string, err error) *apperrors.Error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	metadata := map[string]string{"Expression": expression}
	code := apperrors.CodeUnknown
	switch {
	case errors.Is(err, notation.ErrEmptyExpression):
		code = apperrors.CodeDiceEmptyExpression
	case errors.Is(err, notation.ErrUnbalancedParentheses):
		code = apperrors.CodeDiceUnbalancedParentheses
	case errors.Is(err, notation.ErrDivisionByZero):
		code = apperrors.CodeDiceDivisionByZero
	case errors.Is(err, notation.ErrLeftoverOperands):
		code = apperrors.CodeDiceLeftoverOperands
	case errors.Is(err, notation.ErrStackUnderflow):
		code = apperrors.CodeDiceStackUnderflow
	case errors.Is(err, notation.ErrNumberOutOfRange):
		code = apperrors.CodeDiceNumberOutOfRange
	case errors.Is(err, notation.ErrTooManyDice):
		code = apperrors.CodeDiceTooManyDice
		metadata["MaxDice"] = fmt.Sprint(s.evaluator.MaxDice())
	case errors.Is(err, notation.ErrUnknownHandicap):
		code = apperrors.CodeDiceUnknownHandicap
	case errors.Is(err, coredice.ErrInvalidDiceSpec), errors.Is(err, coredice.ErrInvalidNotation):
		code = apperrors.CodeDiceInvalidSpec
	}
	return apperrors.WrapWithMetadata(code, err.Error(), metadata, err)
}

// filterReason strips the sentinel prefix from a wrapped filter error.
func filterReason(err error) string {
	reason := err.Error()
	if trimmed, ok := strings.CutPrefix(reason, storage.ErrInvalidFilter.Error()+": "); ok {
		return trimmed
	}
	return reason
}
