package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(KeyNotString, nil); msg != "%name is not a string (found: %type)" {
		t.Fatalf("unexpected en template, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T(KeyNotString, nil); msg == "%name is not a string (found: %type)" {
		t.Fatalf("expected japanese template, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_FillsPlaceholders(t *testing.T) {
	msg := T(KeyStringTooShort, map[string]string{"min": "3"})
	if msg != "%name string length must be >= 3 (found: %length)" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTranslator_FallbackToGenericAndCode(t *testing.T) {
	if msg := T("invalid_type.widget", nil); msg != T(KeyInvalidType, nil) {
		t.Fatalf("expected generic invalid_type template, got %q", msg)
	}
	if msg := T("no_such_key", nil); msg != "no_such_key" {
		t.Fatalf("expected the key itself, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, data map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T(KeyRequired, nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T(KeyRequired, nil); msg != "%name is not optional" {
		t.Fatalf("expected default translator after reset, got %q", msg)
	}
}
