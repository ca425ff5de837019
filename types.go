package skema

import (
	"math"
	"sync"

	"github.com/reoring/skema/i18n"
)

// Type is a node of a schema tree: an ordered list of Rules, an optionality
// flag and an optional default. The set of implementations is closed; use the
// String, Number, Integer, Boolean, Any, Mixed, Array and Object constructors.
type Type interface {
	// Assert returns nil when v satisfies the type, a *ValidationError when
	// it does not, and a *DefinitionError when the type itself is malformed.
	Assert(v any) error
	// DefaultValue resolves the default: literals are returned as fresh
	// copies, factories are invoked on every call.
	DefaultValue() (any, bool)
	// IsOptional reports whether an absent (nil) value is accepted.
	IsOptional() bool
	// Rules returns the type's own Rules in evaluation order. The implicit
	// optionality check is not part of the list.
	Rules() []Rule
	// Err returns the first definition error recorded on this type or any
	// of its children.
	Err() error

	node() *base
	check(v any) *ValidationError
}

// Factory produces a default value. It is called once per resolution, so it
// may return a different value every time.
type Factory func() any

// Unbounded leaves a Length or Range side open.
var Unbounded = math.Inf(1)

// Must panics when t carries a definition error. It is intended for
// package-level schema variables.
func Must[T Type](t T) T {
	if err := t.Err(); err != nil {
		panic(err)
	}
	return t
}

// Rule is one atomic check. Rules are immutable once built.
type Rule struct {
	// Name classifies the check (one of the Rule* constants).
	Name string
	// Condition describes, for documentation, when the rule fails.
	Condition string
	// Message is the message template, captured from i18n when built.
	Message string
	// Code is the user-supplied error code.
	Code string
	// Params carries the rule's structured parameters (min, max, values,
	// pattern).
	Params map[string]any

	fails func(v any) bool
}

// Fails reports whether v violates the rule. Absent values are never passed
// to a rule by the validators. A Rule not obtained from a builder has no
// predicate and never fails.
func (r Rule) Fails(v any) bool {
	if r.fails == nil {
		return false
	}
	return r.fails(v)
}

func (r Rule) failure(v any) *ValidationError {
	return &ValidationError{Template: r.Message, Value: v, Code: r.Code, Rule: r.Name}
}

func firstCode(code []string) string {
	if len(code) > 0 {
		return code[0]
	}
	return ""
}

// requiredRule is the reserved check every non-optional type starts with.
func requiredRule() Rule {
	return Rule{
		Name:      RuleRequired,
		Condition: "value is absent",
		Message:   i18n.T(i18n.KeyRequired, nil),
		fails:     func(v any) bool { return v == nil },
	}
}

func optionalRule() Rule {
	return Rule{
		Name:      RuleOptional,
		Condition: "never (absent values are accepted)",
		Message:   i18n.T(i18n.KeyOptional, nil),
		fails:     func(any) bool { return false },
	}
}

// base carries the state shared by every kind. The mutex gives mutations
// exclusive access; the compiled validator is rebuilt lazily after any
// mutation and reused until the next one.
type base struct {
	mu   sync.Mutex
	self Type

	rules    []Rule
	optional bool
	// presence rules, captured with the kind's other templates
	required Rule
	absent   Rule

	def        any
	hasDefault bool
	factory    Factory

	err      *DefinitionError
	compiled func(v any) *ValidationError
}

func (b *base) node() *base { return b }

func (b *base) init(self Type, kind ...Rule) {
	b.self = self
	b.required, b.absent = requiredRule(), optionalRule()
	b.rules = append(b.rules, kind...)
}

// presenceRule returns the optional or required check heading the type.
func (b *base) presenceRule() Rule {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.optional {
		return b.absent
	}
	return b.required
}

func (b *base) IsOptional() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.optional
}

func (b *base) Rules() []Rule {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Rule(nil), b.rules...)
}

func (b *base) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	return nil
}

func (b *base) DefaultValue() (any, bool) {
	b.mu.Lock()
	f, d, has := b.factory, b.def, b.hasDefault
	b.mu.Unlock()
	if f != nil {
		return f(), true
	}
	if !has {
		return nil, false
	}
	return deepCopy(d), true
}

func (b *base) hasLiteralDefault() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasDefault
}

// fail records a definition error unless one is already present.
func (b *base) fail(derr *DefinitionError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = derr
	}
}

// broken reports whether a definition error was recorded; builders become
// no-ops once it is.
func (b *base) broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err != nil
}

func (b *base) setOptional() {
	b.mu.Lock()
	b.optional = true
	b.compiled = nil
	b.mu.Unlock()
}

// addRule appends r and re-checks a literal default against the grown rule
// set.
func (b *base) addRule(op string, r Rule) {
	b.mu.Lock()
	b.rules = append(b.rules, r)
	b.compiled = nil
	def, has := b.def, b.hasDefault
	b.mu.Unlock()
	if has {
		b.checkDefault(op, def)
	}
}

// setDefault stores a literal (already copied by the caller) or a Factory and
// asserts a literal against the current rules right away.
func (b *base) setDefault(op string, v any) {
	if f, ok := asFactory(v); ok {
		b.mu.Lock()
		b.factory, b.def, b.hasDefault = f, nil, false
		b.mu.Unlock()
		return
	}
	b.mu.Lock()
	b.factory, b.def, b.hasDefault = nil, v, true
	b.mu.Unlock()
	b.checkDefault(op, v)
}

func (b *base) checkDefault(op string, v any) {
	if err := b.self.Assert(v); err != nil {
		b.mu.Lock()
		b.def, b.hasDefault = nil, false
		b.mu.Unlock()
		b.fail(&DefinitionError{Op: op, Message: "the default value is invalid", Value: v, Err: err})
	}
}

func asFactory(v any) (Factory, bool) {
	switch f := v.(type) {
	case Factory:
		return f, f != nil
	case func() any:
		return f, f != nil
	}
	return nil, false
}

// validator returns the compiled rule chain, building it on first use after a
// mutation.
func (b *base) validator() func(v any) *ValidationError {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.compiled == nil {
		b.compiled = compile(b.optional, b.required, b.rules)
	}
	return b.compiled
}

func compile(optional bool, required Rule, rules []Rule) func(v any) *ValidationError {
	rs := append([]Rule(nil), rules...)
	if optional {
		return func(v any) *ValidationError {
			if v == nil {
				return nil
			}
			for i := range rs {
				if rs[i].fails(v) {
					return rs[i].failure(v)
				}
			}
			return nil
		}
	}
	return func(v any) *ValidationError {
		if v == nil {
			return required.failure(v)
		}
		for i := range rs {
			if rs[i].fails(v) {
				return rs[i].failure(v)
			}
		}
		return nil
	}
}

func (b *base) check(v any) *ValidationError { return b.validator()(v) }

// assertNode is the public entry point shared by all kinds: definition errors
// first, then the kind's compiled check.
func assertNode(t Type, v any) error {
	if err := t.Err(); err != nil {
		return err
	}
	if verr := t.check(v); verr != nil {
		return verr
	}
	return nil
}
