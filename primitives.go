package skema

import (
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema/i18n"
)

// ---------------- String ----------------

// StringType accepts Go strings.
type StringType struct{ base }

// String returns a string type. The optional code is attached to the
// "is a string" rule.
func String(code ...string) *StringType {
	s := &StringType{}
	s.init(s, Rule{
		Name:      RuleInvalidType,
		Condition: "type(value) != string",
		Message:   i18n.T(i18n.KeyNotString, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { _, ok := v.(string); return !ok },
	})
	return s
}

func (s *StringType) Assert(v any) error { return assertNode(s, v) }

// Optional makes an absent value acceptable.
func (s *StringType) Optional() *StringType { s.setOptional(); return s }

// Default sets a literal default or a Factory.
func (s *StringType) Default(v any) *StringType { scalarDefault(&s.base, "String.Default", v); return s }

// Length adds inclusive bounds on the number of characters. Pass Unbounded
// to leave a side open.
func (s *StringType) Length(min, max float64, code ...string) *StringType {
	lengthRules(&s.base, "String.Length", min, max, i18n.KeyStringTooShort, i18n.KeyStringTooLong, stringLen, firstCode(code))
	return s
}

// Min is Length(min, Unbounded).
func (s *StringType) Min(n float64, code ...string) *StringType {
	return s.Length(n, Unbounded, code...)
}

// Max is Length(Unbounded, max).
func (s *StringType) Max(n float64, code ...string) *StringType {
	return s.Length(Unbounded, n, code...)
}

// Values restricts the string to the given members.
func (s *StringType) Values(allowed []any, code ...string) *StringType {
	valuesRule(&s.base, "String.Values", allowed, firstCode(code))
	return s
}

// Pattern requires the string to match the regular expression expr.
func (s *StringType) Pattern(expr string, code ...string) *StringType {
	if s.broken() {
		return s
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		s.fail(&DefinitionError{Op: "String.Pattern", Message: "malformed regular expression %value", Value: expr, Err: err})
		return s
	}
	shown := "/" + expr + "/"
	s.addRule("String.Pattern", Rule{
		Name:      RulePattern,
		Condition: "value !~ " + shown,
		Message:   i18n.T(i18n.KeyPattern, map[string]string{"pattern": shown}),
		Code:      firstCode(code),
		Params:    map[string]any{"pattern": expr},
		fails:     func(v any) bool { return !re.MatchString(v.(string)) },
	})
	return s
}

func stringLen(v any) int { return utf8.RuneCountInString(v.(string)) }

// ---------------- Number / Integer ----------------

// NumberType accepts any Go numeric value (and json.Number).
type NumberType struct{ base }

// Number returns a number type.
func Number(code ...string) *NumberType {
	n := &NumberType{}
	n.init(n, Rule{
		Name:      RuleInvalidType,
		Condition: "type(value) != number",
		Message:   i18n.T(i18n.KeyNotNumber, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { _, ok := toFloat(v); return !ok },
	})
	return n
}

func (n *NumberType) Assert(v any) error { return assertNode(n, v) }

// Optional makes an absent value acceptable.
func (n *NumberType) Optional() *NumberType { n.setOptional(); return n }

// Default sets a literal default or a Factory.
func (n *NumberType) Default(v any) *NumberType { scalarDefault(&n.base, "Number.Default", v); return n }

// Range adds inclusive bounds. Infinite bounds add no rule; bounds must
// otherwise be finite numbers.
func (n *NumberType) Range(min, max float64, code ...string) *NumberType {
	rangeRules(&n.base, "Number.Range", min, max, false, firstCode(code))
	return n
}

// Min is Range(min, Unbounded).
func (n *NumberType) Min(v float64, code ...string) *NumberType {
	return n.Range(v, Unbounded, code...)
}

// Max is Range(-Unbounded, max).
func (n *NumberType) Max(v float64, code ...string) *NumberType {
	return n.Range(math.Inf(-1), v, code...)
}

// Values restricts the number to the given members.
func (n *NumberType) Values(allowed []any, code ...string) *NumberType {
	valuesRule(&n.base, "Number.Values", allowed, firstCode(code))
	return n
}

// IntegerType accepts finite numbers without a fractional part.
type IntegerType struct{ base }

// Integer returns an integer type.
func Integer(code ...string) *IntegerType {
	n := &IntegerType{}
	n.init(n, Rule{
		Name:      RuleInvalidType,
		Condition: "value is not an integer",
		Message:   i18n.T(i18n.KeyNotInteger, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { return !isInteger(v) },
	})
	return n
}

func (n *IntegerType) Assert(v any) error { return assertNode(n, v) }

// Optional makes an absent value acceptable.
func (n *IntegerType) Optional() *IntegerType { n.setOptional(); return n }

// Default sets a literal default or a Factory.
func (n *IntegerType) Default(v any) *IntegerType {
	scalarDefault(&n.base, "Integer.Default", v)
	return n
}

// Range adds inclusive bounds. Infinite bounds add no rule; bounds must
// otherwise be integers.
func (n *IntegerType) Range(min, max float64, code ...string) *IntegerType {
	rangeRules(&n.base, "Integer.Range", min, max, true, firstCode(code))
	return n
}

// Min is Range(min, Unbounded).
func (n *IntegerType) Min(v float64, code ...string) *IntegerType {
	return n.Range(v, Unbounded, code...)
}

// Max is Range(-Unbounded, max).
func (n *IntegerType) Max(v float64, code ...string) *IntegerType {
	return n.Range(math.Inf(-1), v, code...)
}

// Values restricts the integer to the given members.
func (n *IntegerType) Values(allowed []any, code ...string) *IntegerType {
	valuesRule(&n.base, "Integer.Values", allowed, firstCode(code))
	return n
}

// ---------------- Boolean ----------------

// BooleanType accepts Go bools.
type BooleanType struct{ base }

// Boolean returns a boolean type.
func Boolean(code ...string) *BooleanType {
	b := &BooleanType{}
	b.init(b, Rule{
		Name:      RuleInvalidType,
		Condition: "type(value) != boolean",
		Message:   i18n.T(i18n.KeyNotBoolean, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { _, ok := v.(bool); return !ok },
	})
	return b
}

func (b *BooleanType) Assert(v any) error { return assertNode(b, v) }

// Optional makes an absent value acceptable.
func (b *BooleanType) Optional() *BooleanType { b.setOptional(); return b }

// Default sets a literal default or a Factory.
func (b *BooleanType) Default(v any) *BooleanType {
	scalarDefault(&b.base, "Boolean.Default", v)
	return b
}

// Values restricts the boolean to the given members.
func (b *BooleanType) Values(allowed []any, code ...string) *BooleanType {
	valuesRule(&b.base, "Boolean.Values", allowed, firstCode(code))
	return b
}

// ---------------- Any ----------------

// AnyType accepts every present value.
type AnyType struct{ base }

// Any returns a type without rules of its own.
func Any() *AnyType {
	a := &AnyType{}
	a.init(a)
	return a
}

func (a *AnyType) Assert(v any) error { return assertNode(a, v) }

// Optional makes an absent value acceptable.
func (a *AnyType) Optional() *AnyType { a.setOptional(); return a }

// Default sets a literal default (stored as a deep copy) or a Factory.
func (a *AnyType) Default(v any) *AnyType {
	if a.broken() {
		return a
	}
	if _, ok := asFactory(v); !ok {
		v = deepCopy(v)
	}
	a.setDefault("Any.Default", v)
	return a
}

// ---------------- shared builders ----------------

func scalarDefault(b *base, op string, v any) {
	if b.broken() {
		return
	}
	if _, ok := asFactory(v); !ok {
		_, isSeq := asSlice(v)
		_, isObj := asMap(v)
		if isSeq || isObj {
			b.fail(&DefinitionError{Op: op, Message: "the default value is not a scalar type (found: %type)", Value: v})
			return
		}
	}
	b.setDefault(op, v)
}

// lengthBound validates one side of a length constraint. +Inf means "no
// bound"; anything else must be a non-negative integer.
func lengthBound(op string, n float64) (int, bool, *DefinitionError) {
	if math.IsInf(n, 1) {
		return 0, false, nil
	}
	if math.IsNaN(n) || math.IsInf(n, -1) || n != math.Trunc(n) || n < 0 {
		return 0, false, &DefinitionError{Op: op, Message: "length bound must be a non-negative integer (found: %value)", Value: n}
	}
	return int(n), true, nil
}

// rangeBound validates one side of a range constraint. Infinities mean "no
// bound"; NaN is rejected, and so are fractions for integer ranges.
func rangeBound(op string, n float64, integral bool) (bool, *DefinitionError) {
	if math.IsInf(n, 0) {
		return false, nil
	}
	if math.IsNaN(n) {
		return false, &DefinitionError{Op: op, Message: "range bound must be a finite number (found: %value)", Value: n}
	}
	if integral && n != math.Trunc(n) {
		return false, &DefinitionError{Op: op, Message: "range bound must be an integer (found: %value)", Value: n}
	}
	return true, nil
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func lengthRules(b *base, op string, min, max float64, shortKey, longKey string, length func(any) int, code string) {
	if b.broken() {
		return
	}
	lo, hasLo, derr := lengthBound(op, min)
	if derr != nil {
		b.fail(derr)
		return
	}
	hi, hasHi, derr := lengthBound(op, max)
	if derr != nil {
		b.fail(derr)
		return
	}
	if hasLo {
		shown := strconv.Itoa(lo)
		b.addRule(op, Rule{
			Name:      RuleTooShort,
			Condition: "len(value) < " + shown,
			Message:   i18n.T(shortKey, map[string]string{"min": shown}),
			Code:      code,
			Params:    map[string]any{"min": lo},
			fails:     func(v any) bool { return length(v) < lo },
		})
	}
	if hasHi {
		shown := strconv.Itoa(hi)
		b.addRule(op, Rule{
			Name:      RuleTooLong,
			Condition: "len(value) > " + shown,
			Message:   i18n.T(longKey, map[string]string{"max": shown}),
			Code:      code,
			Params:    map[string]any{"max": hi},
			fails:     func(v any) bool { return length(v) > hi },
		})
	}
}

func rangeRules(b *base, op string, min, max float64, integral bool, code string) {
	if b.broken() {
		return
	}
	hasLo, derr := rangeBound(op, min, integral)
	if derr != nil {
		b.fail(derr)
		return
	}
	hasHi, derr := rangeBound(op, max, integral)
	if derr != nil {
		b.fail(derr)
		return
	}
	if hasLo {
		shown := formatNumber(min)
		b.addRule(op, Rule{
			Name:      RuleTooSmall,
			Condition: "value < " + shown,
			Message:   i18n.T(i18n.KeyTooSmall, map[string]string{"min": shown}),
			Code:      code,
			Params:    map[string]any{"min": min},
			fails:     func(v any) bool { f, _ := toFloat(v); return f < min },
		})
	}
	if hasHi {
		shown := formatNumber(max)
		b.addRule(op, Rule{
			Name:      RuleTooBig,
			Condition: "value > " + shown,
			Message:   i18n.T(i18n.KeyTooBig, map[string]string{"max": shown}),
			Code:      code,
			Params:    map[string]any{"max": max},
			fails:     func(v any) bool { f, _ := toFloat(v); return f > max },
		})
	}
}

// valuesRule adds an enumeration rule after asserting every member against
// the rules accumulated so far.
func valuesRule(b *base, op string, allowed []any, code string) {
	if b.broken() {
		return
	}
	if len(allowed) == 0 {
		b.fail(&DefinitionError{Op: op, Message: "the list of allowed values must not be empty"})
		return
	}
	members := make([]any, len(allowed))
	for i, m := range allowed {
		if err := b.self.Assert(m); err != nil {
			b.fail(&DefinitionError{Op: op, Message: "allowed value %value does not satisfy the type", Value: m, Err: err})
			return
		}
		members[i] = deepCopy(m)
	}
	shown := renderValues(members)
	b.addRule(op, Rule{
		Name:      RuleInvalidEnum,
		Condition: "value not in " + shown,
		Message:   i18n.T(i18n.KeyInvalidEnum, map[string]string{"values": shown}),
		Code:      code,
		Params:    map[string]any{"values": members},
		fails: func(v any) bool {
			for _, m := range members {
				if sameValue(m, v) {
					return false
				}
			}
			return true
		},
	})
}

func renderValues(members []any) string {
	out, err := json.Marshal(members)
	if err != nil {
		return valueString(members)
	}
	return string(out)
}
