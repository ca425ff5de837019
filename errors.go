package skema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule names (exported consts for IDE completion). A rule name classifies the
// check that failed; the user-supplied error code travels separately.
const (
	RuleRequired    = "required"
	RuleOptional    = "optional"
	RuleInvalidType = "invalid_type"
	RuleTooShort    = "too_short"
	RuleTooLong     = "too_long"
	RuleTooSmall    = "too_small"
	RuleTooBig      = "too_big"
	RuleInvalidEnum = "invalid_enum"
	RulePattern     = "pattern"
	RuleUnknownKey  = "unknown_key"
)

// ValidationError is the single failure kind produced when a value does not
// satisfy a Type. It is created by the first failing Rule and gains one path
// segment per enclosing array or object on its way back to the caller.
type ValidationError struct {
	// Template is the unresolved message; see Message for placeholder rules.
	Template string
	// Value is the offending value.
	Value any
	// Code is the user-supplied error code ("" when none was given).
	Code string
	// Rule names the check that failed (one of the Rule* constants).
	Rule string
	// Path locates Value inside the asserted instance.
	Path Path
}

// Message resolves the template placeholders %name, %type, %value and
// %length against the path and the offending value.
func (e *ValidationError) Message() string {
	name := e.Path.String()
	if name == "" {
		name = "Value"
	}
	return resolveTemplate(e.Template, name, typeName(e.Value), valueString(e.Value), lengthString(e.Value))
}

// Pointer returns the JSON Pointer of the offending value.
func (e *ValidationError) Pointer() string { return e.Path.Pointer() }

func (e *ValidationError) Error() string {
	msg := e.Message()
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	return msg
}

func (e *ValidationError) prepend(s Segment) {
	e.Path = append(Path{s}, e.Path...)
}

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// DefinitionError reports misuse of the schema builders: malformed bounds,
// empty enumerations, bad patterns, invalid defaults or missing child types.
// It is a programmer error and never carries an error code.
type DefinitionError struct {
	// Op is the builder that was misused, for example "String.Length".
	Op string
	// Message describes the problem; %type and %value refer to Value.
	Message string
	Value   any
	// Err is the underlying cause, if any (a regexp error, or the
	// ValidationError raised while checking a default or enumeration member).
	Err error
}

func (e *DefinitionError) Error() string {
	msg := resolveTemplate(e.Message, "Value", typeName(e.Value), valueString(e.Value), lengthString(e.Value))
	if e.Err != nil {
		return fmt.Sprintf("skema: %s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("skema: %s: %s", e.Op, msg)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// IsDefinitionError reports whether err is (or wraps) a *DefinitionError.
func IsDefinitionError(err error) bool {
	var derr *DefinitionError
	return errors.As(err, &derr)
}

func resolveTemplate(tmpl, name, typ, value, length string) string {
	if !strings.Contains(tmpl, "%") {
		return tmpl
	}
	return strings.NewReplacer(
		"%name", name,
		"%type", typ,
		"%value", value,
		"%length", length,
	).Replace(tmpl)
}

// typeName classifies v with JSON vocabulary.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	if _, ok := asSlice(v); ok {
		return "array"
	}
	if _, ok := asMap(v); ok {
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

func lengthString(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Itoa(utf8.RuneCountInString(s))
	}
	if items, ok := asSlice(v); ok {
		return strconv.Itoa(len(items))
	}
	return "undefined"
}
