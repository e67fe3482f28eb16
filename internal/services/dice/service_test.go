package dice

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"

	coredice "github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/dice/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// maxRoller rolls every die at its highest face.
var maxRoller = coredice.RollerFunc(func(notation string) ([]int, error) {
	spec, err := coredice.ParseSpec(notation)
	if err != nil {
		return nil, err
	}
	faces := make([]int, spec.Count)
	for i := range faces {
		faces[i] = spec.Sides
	}
	return faces, nil
})

// scriptedRoller replays faces in order.
func scriptedRoller(faces ...[]int) coredice.Roller {
	return coredice.RollerFunc(func(string) ([]int, error) {
		if len(faces) == 0 {
			return nil, errors.New("script exhausted")
		}
		next := faces[0]
		faces = faces[1:]
		return next, nil
	})
}

type memJournal struct {
	mu        sync.Mutex
	records   []storage.Record
	appendErr error
	listErr   error
}

func (j *memJournal) AppendRoll(_ context.Context, record storage.Record) (storage.Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.appendErr != nil {
		return storage.Record{}, j.appendErr
	}
	record.ID = int64(len(j.records) + 1)
	j.records = append(j.records, record)
	return record, nil
}

func (j *memJournal) ListRolls(_ context.Context, _ storage.Query) (storage.Page, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.listErr != nil {
		return storage.Page{}, j.listErr
	}
	out := make([]storage.Record, 0, len(j.records))
	for i := len(j.records) - 1; i >= 0; i-- {
		out = append(out, j.records[i])
	}
	return storage.Page{Records: out}, nil
}

func newTestService(t *testing.T, roller coredice.Roller, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(notation.New(roller), opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresEvaluator(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil evaluator")
	}
}

func TestValidate(t *testing.T) {
	svc := newTestService(t, maxRoller)
	tests := []struct {
		expression string
		want       Validation
	}{
		{expression: "1d20", want: Validation{Valid: true, SingleDie: true}},
		{expression: "2d6+3", want: Validation{Valid: true}},
		{expression: "d20", want: Validation{}},
		{expression: "", want: Validation{}},
	}
	for _, tt := range tests {
		if got := svc.Validate(context.Background(), tt.expression); got != tt.want {
			t.Errorf("Validate(%q) = %+v, want %+v", tt.expression, got, tt.want)
		}
	}
}

func TestEvaluateRecordsJournal(t *testing.T) {
	journal := &memJournal{}
	svc := newTestService(t, maxRoller, WithJournal(journal))

	result, err := svc.Evaluate(context.Background(), "2d6+3")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Total != 15 {
		t.Fatalf("total = %d, want 15", result.Total)
	}
	if len(journal.records) != 1 {
		t.Fatalf("journal records = %d, want 1", len(journal.records))
	}
	record := journal.records[0]
	if record.Kind != storage.KindEvaluate || record.Expression != "2d6+3" || record.Total != 15 {
		t.Fatalf("record = %+v", record)
	}
	if !reflect.DeepEqual(record.Rolls, [][]int{{6, 6}}) {
		t.Fatalf("record rolls = %v", record.Rolls)
	}
}

func TestEvaluateJournalFailureIsNotFatal(t *testing.T) {
	journal := &memJournal{appendErr: errors.New("disk full")}
	svc := newTestService(t, maxRoller, WithJournal(journal))

	result, err := svc.Evaluate(context.Background(), "1d4")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("total = %d, want 4", result.Total)
	}
}

func TestEvaluateErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       apperrors.Code
	}{
		{name: "empty", expression: "  ", want: apperrors.CodeDiceEmptyExpression},
		{name: "rejected", expression: "1d6+", want: apperrors.CodeDiceInvalidNotation},
		{name: "missing count", expression: "d20", want: apperrors.CodeDiceInvalidNotation},
		{name: "parentheses", expression: "(1d6)", want: apperrors.CodeDiceInvalidNotation},
		{name: "division by zero", expression: "1d6/0", want: apperrors.CodeDiceDivisionByZero},
		{name: "zero sides", expression: "1d0", want: apperrors.CodeDiceInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &memJournal{}
			svc := newTestService(t, maxRoller, WithJournal(journal))

			_, err := svc.Evaluate(context.Background(), tt.expression)
			if got := apperrors.GetCode(err); got != tt.want {
				t.Fatalf("code = %s, want %s (err %v)", got, tt.want, err)
			}
			if len(journal.records) != 0 {
				t.Fatalf("failed evaluation was journaled: %+v", journal.records)
			}
		})
	}
}

func TestEvaluateTooManyDiceReportsCap(t *testing.T) {
	svc, err := NewService(notation.New(maxRoller, notation.WithMaxDice(10)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Evaluate(context.Background(), "20d6")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Code != apperrors.CodeDiceTooManyDice {
		t.Fatalf("code = %s, want %s", domainErr.Code, apperrors.CodeDiceTooManyDice)
	}
	if domainErr.Metadata["MaxDice"] != "10" {
		t.Fatalf("MaxDice metadata = %q", domainErr.Metadata["MaxDice"])
	}
	if !errors.Is(err, notation.ErrTooManyDice) {
		t.Fatalf("expected cause %v in chain", notation.ErrTooManyDice)
	}
}

func TestEvaluateChainedDiceHitDefaultCap(t *testing.T) {
	svc, err := NewService(notation.New(maxRoller))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Evaluate(context.Background(), "100d1000d100d1000")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Code != apperrors.CodeDiceTooManyDice {
		t.Fatalf("code = %s, want %s", domainErr.Code, apperrors.CodeDiceTooManyDice)
	}
	if want := strconv.Itoa(notation.DefaultMaxDice); domainErr.Metadata["MaxDice"] != want {
		t.Fatalf("MaxDice metadata = %q, want %q", domainErr.Metadata["MaxDice"], want)
	}
}

func TestHandicap(t *testing.T) {
	tests := []struct {
		kind      string
		wantTotal int
		wantKind  storage.Kind
	}{
		{kind: "advantage", wantTotal: 17, wantKind: storage.KindAdvantage},
		{kind: "Disadvantage", wantTotal: 4, wantKind: storage.KindDisadvantage},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			journal := &memJournal{}
			svc := newTestService(t, scriptedRoller([]int{4}, []int{17}), WithJournal(journal))

			result, err := svc.Handicap(context.Background(), tt.kind, "1d20")
			if err != nil {
				t.Fatalf("handicap: %v", err)
			}
			if result.Total != tt.wantTotal {
				t.Fatalf("total = %d, want %d", result.Total, tt.wantTotal)
			}
			if len(journal.records) != 1 {
				t.Fatalf("journal records = %d, want 1", len(journal.records))
			}
			record := journal.records[0]
			if record.Kind != tt.wantKind {
				t.Fatalf("record kind = %s, want %s", record.Kind, tt.wantKind)
			}
			if !reflect.DeepEqual(record.Rolls, [][]int{{4}, {17}}) {
				t.Fatalf("record rolls = %v", record.Rolls)
			}
		})
	}
}

func TestHandicapErrors(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		expression string
		want       apperrors.Code
	}{
		{name: "unknown kind", kind: "neutral", expression: "1d20", want: apperrors.CodeDiceUnknownHandicap},
		{name: "compound expression", kind: "advantage", expression: "1d20+1", want: apperrors.CodeDiceHandicapNotSingleDie},
		{name: "zero sides", kind: "advantage", expression: "1d0", want: apperrors.CodeDiceInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, maxRoller)
			_, err := svc.Handicap(context.Background(), tt.kind, tt.expression)
			if got := apperrors.GetCode(err); got != tt.want {
				t.Fatalf("code = %s, want %s (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	t.Run("journal disabled", func(t *testing.T) {
		svc := newTestService(t, maxRoller)
		_, err := svc.History(context.Background(), storage.Query{})
		if got := apperrors.GetCode(err); got != apperrors.CodeJournalUnavailable {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeJournalUnavailable)
		}
	})

	t.Run("lists records", func(t *testing.T) {
		journal := &memJournal{}
		svc := newTestService(t, maxRoller, WithJournal(journal))
		for _, expression := range []string{"1d4", "1d6"} {
			if _, err := svc.Evaluate(context.Background(), expression); err != nil {
				t.Fatalf("evaluate %s: %v", expression, err)
			}
		}
		page, err := svc.History(context.Background(), storage.Query{})
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if len(page.Records) != 2 || page.Records[0].Expression != "1d6" {
			t.Fatalf("records = %+v", page.Records)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		journal := &memJournal{listErr: errors.Join(storage.ErrInvalidFilter, errors.New("unknown field: sides"))}
		svc := newTestService(t, maxRoller, WithJournal(journal))
		_, err := svc.History(context.Background(), storage.Query{Filter: "sides = 6"})
		if got := apperrors.GetCode(err); got != apperrors.CodeJournalInvalidFilter {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeJournalInvalidFilter)
		}
	})

	t.Run("invalid page token", func(t *testing.T) {
		journal := &memJournal{listErr: storage.ErrInvalidPageToken}
		svc := newTestService(t, maxRoller, WithJournal(journal))
		_, err := svc.History(context.Background(), storage.Query{PageToken: "x"})
		if got := apperrors.GetCode(err); got != apperrors.CodeJournalInvalidPageToken {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeJournalInvalidPageToken)
		}
	})
}

func TestEvaluateSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	svc := newTestService(t, maxRoller, WithTracerProvider(provider))
	if _, err := svc.Evaluate(context.Background(), "1d8+1d8"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := svc.Evaluate(context.Background(), "1d8+"); err == nil {
		t.Fatal("expected invalid notation error")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	ok := spans[0]
	if ok.Name() != "dice.Evaluate" {
		t.Fatalf("span name = %q", ok.Name())
	}
	attrs := attributeMap(ok.Attributes())
	if attrs["dice.expression"] != attribute.StringValue("1d8+1d8") {
		t.Fatalf("expression attribute = %v", attrs["dice.expression"])
	}
	if attrs["dice.total"] != attribute.IntValue(16) {
		t.Fatalf("total attribute = %v", attrs["dice.total"])
	}
	if attrs["dice.roll_count"] != attribute.IntValue(2) {
		t.Fatalf("roll_count attribute = %v", attrs["dice.roll_count"])
	}

	failed := spans[1]
	if failed.Status().Code != codes.Error {
		t.Fatalf("failed span status = %v, want error", failed.Status().Code)
	}
	if got := attributeMap(failed.Attributes())["dice.error_code"]; got != attribute.StringValue(string(apperrors.CodeDiceInvalidNotation)) {
		t.Fatalf("error code attribute = %v", got)
	}
}

func attributeMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		out[kv.Key] = kv.Value
	}
	return out
}
