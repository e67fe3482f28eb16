package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestParseRollFilterEmpty(t *testing.T) {
	cond, err := ParseRollFilter("  ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if !cond.Empty() || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseRollFilterKindEquals(t *testing.T) {
	cond, err := ParseRollFilter(`kind = "advantage"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "kind = ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"advantage"}) {
		t.Fatalf("Params = %v", cond.Params)
	}
}

func TestParseRollFilterTotalAndExpression(t *testing.T) {
	cond, err := ParseRollFilter(`total >= 10 AND expression = "1d20"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(total >= ? AND expression = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{int64(10), "1d20"}) {
		t.Fatalf("Params = %v", cond.Params)
	}
}

func TestParseRollFilterOr(t *testing.T) {
	cond, err := ParseRollFilter(`kind = "advantage" OR kind = "disadvantage"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(kind = ? OR kind = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseRollFilterNot(t *testing.T) {
	cond, err := ParseRollFilter(`NOT kind = "evaluate"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "NOT (kind = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseRollFilterCreatedAt(t *testing.T) {
	cond, err := ParseRollFilter(`created_at > timestamp("2026-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "created_at > ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if !reflect.DeepEqual(cond.Params, []any{want}) {
		t.Fatalf("Params = %v, want [%d]", cond.Params, want)
	}
}

func TestParseRollFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter string
	}{
		{name: "unknown field", filter: `sides = 6`},
		{name: "syntax", filter: `kind = `},
		{name: "value function", filter: `created_at = duration("1h")`},
		{name: "bad timestamp", filter: `created_at = timestamp("yesterday")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRollFilter(tt.filter); err == nil {
				t.Fatalf("expected error for %q", tt.filter)
			}
		})
	}
}
