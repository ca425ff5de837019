package skema_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/reoring/skema"
)

func TestPath_Rendering(t *testing.T) {
	p := skema.Path{{Key: "pets"}, {Index: 2, IsIndex: true}, {Key: "a/b~c"}}
	if got := p.String(); got != "pets[2].a/b~c" {
		t.Fatalf("String: %q", got)
	}
	if got := p.Pointer(); got != "/pets/2/a~1b~0c" {
		t.Fatalf("Pointer: %q", got)
	}
	if got := p.Labels(); !reflect.DeepEqual(got, []string{"pets", "[2]", "a/b~c"}) {
		t.Fatalf("Labels: %v", got)
	}
	var root skema.Path
	if root.String() != "" || root.Pointer() != "/" {
		t.Fatalf("unexpected root rendering %q %q", root.String(), root.Pointer())
	}
}

func TestValidationError_Placeholders(t *testing.T) {
	e := &skema.ValidationError{
		Template: "%name: %type %value %length",
		Value:    []any{1, 2},
		Path:     skema.Path{{Key: "list"}},
	}
	if got := e.Message(); got != "list: array [1 2] 2" {
		t.Fatalf("unexpected message %q", got)
	}
	e = &skema.ValidationError{Template: "%name %type %value %length", Value: nil}
	if got := e.Message(); got != "Value null null undefined" {
		t.Fatalf("unexpected message %q", got)
	}
	e = &skema.ValidationError{Template: "%name (found: %length)", Value: "日本語", Code: "c"}
	if got := e.Error(); got != "Value (found: 3) (c)" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestAsValidationError_Wrapped(t *testing.T) {
	err := skema.String("notString").Assert(1)
	wrapped := fmt.Errorf("load: %w", err)
	verr, ok := skema.AsValidationError(wrapped)
	if !ok || verr.Code != "notString" {
		t.Fatalf("expected to unwrap the validation error, got %v", wrapped)
	}
	if _, ok := skema.AsValidationError(nil); ok {
		t.Fatalf("nil is not a validation error")
	}
	if _, ok := skema.AsValidationError(errors.New("x")); ok {
		t.Fatalf("plain errors are not validation errors")
	}
}

func TestDefinitionError_Unwrap(t *testing.T) {
	err := skema.String().Values([]any{5}).Err()
	var derr *skema.DefinitionError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DefinitionError, got %T", err)
	}
	if derr.Op != "String.Values" {
		t.Fatalf("unexpected op %q", derr.Op)
	}
	if _, ok := skema.AsValidationError(derr.Unwrap()); !ok {
		t.Fatalf("expected the member's validation error as cause, got %v", derr.Unwrap())
	}
	if got := derr.Error(); got != "skema: String.Values: allowed value 5 does not satisfy the type: Value is not a string (found: number)" {
		t.Fatalf("unexpected message %q", got)
	}
	if skema.IsDefinitionError(skema.String().Assert(1)) {
		t.Fatalf("validation errors are not definition errors")
	}
}

func TestRule_ZeroValueNeverFails(t *testing.T) {
	var r skema.Rule
	if r.Fails("anything") {
		t.Fatalf("a Rule without a predicate must not fail")
	}
	rules := skema.String().Min(2).Rules()
	if !rules[len(rules)-1].Fails("a") {
		t.Fatalf("builder rules keep their predicate")
	}
}
