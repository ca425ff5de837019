package skema

import "github.com/reoring/skema/i18n"

// ArrayType accepts sequences whose elements all satisfy one element type.
type ArrayType struct {
	base
	elem Type
}

// Array returns an array type over elem. The optional code is attached to
// the "is an array" rule.
func Array(elem Type, code ...string) *ArrayType {
	a := &ArrayType{elem: elem}
	a.init(a, Rule{
		Name:      RuleInvalidType,
		Condition: "type(value) != array",
		Message:   i18n.T(i18n.KeyNotArray, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { _, ok := asSlice(v); return !ok },
	})
	if elem == nil {
		a.fail(&DefinitionError{Op: "Array", Message: "element type is not a type"})
	}
	return a
}

func (a *ArrayType) Assert(v any) error { return assertNode(a, v) }

// Elem returns the element type.
func (a *ArrayType) Elem() Type { return a.elem }

// Optional makes an absent value acceptable.
func (a *ArrayType) Optional() *ArrayType { a.setOptional(); return a }

// Default sets a sequence default, stored as a deep copy, or a Factory.
func (a *ArrayType) Default(v any) *ArrayType {
	if a.broken() {
		return a
	}
	if _, ok := asFactory(v); !ok {
		if _, isSeq := asSlice(v); !isSeq {
			a.fail(&DefinitionError{Op: "Array.Default", Message: "the default value is not an array (found: %type)", Value: v})
			return a
		}
		v = deepCopy(v)
	}
	a.setDefault("Array.Default", v)
	return a
}

// Length adds inclusive bounds on the number of elements. Pass Unbounded to
// leave a side open.
func (a *ArrayType) Length(min, max float64, code ...string) *ArrayType {
	lengthRules(&a.base, "Array.Length", min, max, i18n.KeyArrayTooShort, i18n.KeyArrayTooLong, sliceLen, firstCode(code))
	return a
}

// Min is Length(min, Unbounded).
func (a *ArrayType) Min(n float64, code ...string) *ArrayType {
	return a.Length(n, Unbounded, code...)
}

// Max is Length(Unbounded, max).
func (a *ArrayType) Max(n float64, code ...string) *ArrayType {
	return a.Length(Unbounded, n, code...)
}

func sliceLen(v any) int {
	items, _ := asSlice(v)
	return len(items)
}

func (a *ArrayType) Err() error {
	if err := a.base.Err(); err != nil {
		return err
	}
	return a.elem.Err()
}

func (a *ArrayType) check(v any) *ValidationError {
	if verr := a.validator()(v); verr != nil {
		return verr
	}
	items, ok := asSlice(v)
	if !ok {
		return nil
	}
	for i := range items {
		if verr := a.elem.check(items[i]); verr != nil {
			verr.prepend(indexSegment(i))
			return verr
		}
	}
	return nil
}
