package skema

import (
	"sort"

	"github.com/reoring/skema/i18n"
)

// ObjectType accepts string-keyed maps. Declared properties keep their
// declaration order; properties that are not declared are validated by the
// optional dictionary or rejected as unknown.
type ObjectType struct {
	base

	names []string
	props map[string]Type

	dictKey   Type
	dictValue Type

	cached *objectShape
}

// Object returns an object type without properties; declare them with Field.
// The optional code is attached to the "is an object" rule.
func Object(code ...string) *ObjectType {
	o := &ObjectType{props: map[string]Type{}}
	o.init(o, Rule{
		Name:      RuleInvalidType,
		Condition: "type(value) != object",
		Message:   i18n.T(i18n.KeyNotObject, nil),
		Code:      firstCode(code),
		fails:     func(v any) bool { _, ok := asMap(v); return !ok },
	})
	return o
}

// Field declares a property. Declaring the same name twice or passing a nil
// type is a definition error.
func (o *ObjectType) Field(name string, t Type) *ObjectType {
	if o.broken() {
		return o
	}
	if t == nil {
		o.fail(&DefinitionError{Op: "Object.Field", Message: "property %value is not a type", Value: name})
		return o
	}
	o.mu.Lock()
	_, dup := o.props[name]
	if !dup {
		o.names = append(o.names, name)
		o.props[name] = t
		o.cached = nil
	}
	o.mu.Unlock()
	if dup {
		o.fail(&DefinitionError{Op: "Object.Field", Message: "property %value is declared twice", Value: name})
	}
	return o
}

// Dictionary validates undeclared properties: their names against key and
// their values against value. Calling it again replaces the pair.
func (o *ObjectType) Dictionary(key, value Type) *ObjectType {
	if o.broken() {
		return o
	}
	if key == nil || value == nil {
		o.fail(&DefinitionError{Op: "Object.Dictionary", Message: "dictionary key and value must both be types"})
		return o
	}
	o.mu.Lock()
	o.dictKey, o.dictValue = key, value
	o.cached = nil
	o.mu.Unlock()
	return o
}

// Optional makes an absent value acceptable.
func (o *ObjectType) Optional() *ObjectType { o.setOptional(); return o }

func (o *ObjectType) Assert(v any) error { return assertNode(o, v) }

// Properties returns the declared property names in declaration order.
func (o *ObjectType) Properties() []string {
	return append([]string(nil), o.shape().names...)
}

// Property returns the type declared for name.
func (o *ObjectType) Property(name string) (Type, bool) {
	sh := o.shape()
	t, ok := sh.props[name]
	return t, ok
}

// DictionaryTypes returns the dictionary pair, if configured.
func (o *ObjectType) DictionaryTypes() (key, value Type, ok bool) {
	sh := o.shape()
	return sh.dictKey, sh.dictValue, sh.dictKey != nil
}

// objectShape is an immutable snapshot of the declared structure. It is
// rebuilt lazily after Field or Dictionary.
type objectShape struct {
	names     []string
	props     map[string]Type
	dictKey   Type
	dictValue Type
}

func (o *ObjectType) shape() *objectShape {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cached == nil {
		props := make(map[string]Type, len(o.props))
		for k, v := range o.props {
			props[k] = v
		}
		o.cached = &objectShape{
			names:     append([]string(nil), o.names...),
			props:     props,
			dictKey:   o.dictKey,
			dictValue: o.dictValue,
		}
	}
	return o.cached
}

func (o *ObjectType) Err() error {
	if err := o.base.Err(); err != nil {
		return err
	}
	sh := o.shape()
	if len(sh.names) == 0 {
		return &DefinitionError{Op: "Object", Message: "an object must declare at least one property"}
	}
	for _, name := range sh.names {
		if err := sh.props[name].Err(); err != nil {
			return err
		}
	}
	if sh.dictKey != nil {
		if err := sh.dictKey.Err(); err != nil {
			return err
		}
		if err := sh.dictValue.Err(); err != nil {
			return err
		}
	}
	return nil
}

// check validates, in order: the object's own rules, the declared
// properties present on the value, the undeclared properties (sorted by
// name), and finally the declared properties absent from the value so that
// required ones fail and optional ones pass.
func (o *ObjectType) check(v any) *ValidationError {
	if verr := o.validator()(v); verr != nil {
		return verr
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	sh := o.shape()
	for _, name := range sh.names {
		if pv, present := m[name]; present && pv != nil {
			if verr := sh.props[name].check(pv); verr != nil {
				verr.prepend(keySegment(name))
				return verr
			}
		}
	}
	var extra []string
	for k := range m {
		if _, declared := sh.props[k]; !declared {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if verr := o.checkUndeclared(sh, k, m[k]); verr != nil {
			verr.prepend(keySegment(k))
			return verr
		}
	}
	for _, name := range sh.names {
		if pv, present := m[name]; !present || pv == nil {
			if verr := sh.props[name].check(nil); verr != nil {
				verr.prepend(keySegment(name))
				return verr
			}
		}
	}
	return nil
}

func (o *ObjectType) checkUndeclared(sh *objectShape, key string, v any) *ValidationError {
	if sh.dictKey == nil {
		return &ValidationError{Template: i18n.T(i18n.KeyUnknownKey, nil), Value: v, Rule: RuleUnknownKey}
	}
	if verr := sh.dictKey.check(key); verr != nil {
		return verr
	}
	return sh.dictValue.check(v)
}

// skeleton builds a fresh instance holding, per declared property, the
// nested skeleton of a required object property, the resolved default, or
// nil. Factories run on every call.
func (o *ObjectType) skeleton() map[string]any {
	sh := o.shape()
	out := make(map[string]any, len(sh.names))
	for _, name := range sh.names {
		t := sh.props[name]
		if nested, ok := t.(*ObjectType); ok && !nested.IsOptional() {
			out[name] = nested.skeleton()
			continue
		}
		if d, ok := t.DefaultValue(); ok {
			out[name] = d
		} else {
			out[name] = nil
		}
	}
	return out
}

// Create returns a new instance: the default skeleton with patch merged on
// top, validated as a whole.
func (o *ObjectType) Create(patch any) (map[string]any, error) {
	if err := o.Err(); err != nil {
		return nil, err
	}
	return o.Update(o.skeleton(), patch)
}

// Update deep-merges patch into existing and validates the merged result.
// Nested objects merge key by key; every other value, sequences included,
// replaces the previous one, and a nil value marks a property as absent.
// existing is only written to after the merged result validated, so a failed
// update leaves it untouched. The updated instance is returned; it is
// existing itself when existing is a map[string]any.
func (o *ObjectType) Update(existing, patch any) (map[string]any, error) {
	if err := o.Err(); err != nil {
		return nil, err
	}
	kind := o.Rules()[0]
	target, ok := asMap(existing)
	if !ok {
		return nil, kind.failure(existing)
	}
	var changes map[string]any
	if patch != nil {
		if changes, ok = asMap(patch); !ok {
			return nil, kind.failure(patch)
		}
	}
	merged := merge(target, changes)
	if verr := o.check(merged); verr != nil {
		return nil, verr
	}
	for k, v := range merged {
		target[k] = v
	}
	return target, nil
}

// merge returns a new map holding dst with src merged on top. dst and src
// are never modified.
func merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		if sm, ok := plainObject(sv); ok {
			if dm, ok := plainObject(out[k]); ok {
				out[k] = merge(dm, sm)
				continue
			}
		}
		out[k] = deepCopy(sv)
	}
	return out
}

func plainObject(v any) (map[string]any, bool) {
	if _, isSeq := asSlice(v); isSeq {
		return nil, false
	}
	return asMap(v)
}
