package skema_test

import (
	"reflect"
	"testing"

	"github.com/reoring/skema"
)

func TestMixed_OptionalAndRequired(t *testing.T) {
	got := mustCreate(t, wrap(skema.Mixed().Optional()), map[string]any{})
	if !reflect.DeepEqual(got, map[string]any{"n": nil}) {
		t.Fatalf("unexpected instance: %#v", got)
	}
	_, err := wrap(skema.Mixed()).Create(map[string]any{})
	if verr, ok := skema.AsValidationError(err); !ok || verr.Rule != skema.RuleRequired {
		t.Fatalf("expected required failure, got %v", err)
	}
}

func TestMixed_CandidatesInOrder(t *testing.T) {
	m := skema.Mixed(skema.String("notString"), skema.Integer("notInt"))
	for _, ok := range []any{1, "str"} {
		if err := m.Assert(ok); err != nil {
			t.Fatalf("%#v: unexpected err: %v", ok, err)
		}
	}
	// every candidate rejects: the last candidate's error is reported
	for _, bad := range []any{1.5, true, []any{}, map[string]any{}} {
		err := m.Assert(bad)
		if code := codeOf(t, err); code != "notInt" {
			t.Fatalf("%#v: expected the integer candidate's error, got %q", bad, code)
		}
	}
	err := wrap(m).Assert(map[string]any{"n": 1.5})
	if err == nil || err.Error() != "n is not an integer (found: number) (notInt)" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMixed_NilCandidate(t *testing.T) {
	expectDefinitionError(t, skema.Mixed(skema.String(), nil))
	// a broken candidate breaks the union
	expectDefinitionError(t, skema.Mixed(skema.String(), skema.Integer().Min(0.5)))
}

func TestMixed_Defaults(t *testing.T) {
	m := skema.Mixed(skema.String(), skema.Integer().Default(5)).Optional()
	if got := mustCreate(t, wrap(m), map[string]any{}); got["n"] != 5 {
		t.Fatalf("expected the candidate default, got %#v", got)
	}
	m = skema.Mixed(skema.String().Default("foo"), skema.Integer().Default(5))
	if got := mustCreate(t, wrap(m), map[string]any{}); got["n"] != "foo" {
		t.Fatalf("expected the first candidate default, got %#v", got)
	}
	m = skema.Mixed(skema.String().Default("foo"), skema.Integer()).Default(7)
	if got := mustCreate(t, wrap(m), map[string]any{}); got["n"] != 7 {
		t.Fatalf("expected the union's own default, got %#v", got)
	}
	expectDefinitionError(t, skema.Mixed(skema.String()).Default(true))
}

func TestMixed_NestedContainers(t *testing.T) {
	m := skema.Mixed(
		skema.Array(skema.Integer()),
		skema.Object().Field("id", skema.Integer()),
	)
	for _, ok := range []any{[]any{1, 2}, map[string]any{"id": 3}} {
		if err := m.Assert(ok); err != nil {
			t.Fatalf("%#v: unexpected err: %v", ok, err)
		}
	}
	verr, ok := skema.AsValidationError(m.Assert(map[string]any{"id": "x"}))
	if !ok || verr.Pointer() != "/id" {
		t.Fatalf("expected failure at /id, got %v", verr)
	}
}
