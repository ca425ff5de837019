package skema

// MixedType accepts a value when any of its candidates does. Candidates are
// tried in declaration order and the first acceptance wins. When every
// candidate rejects the value, the error of the last candidate is returned
// unchanged.
type MixedType struct {
	base
	candidates []Type
}

// Mixed returns a union over the given candidates.
func Mixed(candidates ...Type) *MixedType {
	m := &MixedType{}
	m.init(m)
	for i, c := range candidates {
		if c == nil {
			m.fail(&DefinitionError{Op: "Mixed", Message: "candidate is not a type", Value: i})
			return m
		}
	}
	m.candidates = append(m.candidates, candidates...)
	return m
}

func (m *MixedType) Assert(v any) error { return assertNode(m, v) }

// Optional makes an absent value acceptable.
func (m *MixedType) Optional() *MixedType { m.setOptional(); return m }

// Default sets a literal default (stored as a deep copy) or a Factory.
func (m *MixedType) Default(v any) *MixedType {
	if m.broken() {
		return m
	}
	if _, ok := asFactory(v); !ok {
		v = deepCopy(v)
	}
	m.setDefault("Mixed.Default", v)
	return m
}

// Candidates returns the union members in declaration order.
func (m *MixedType) Candidates() []Type { return append([]Type(nil), m.candidates...) }

// DefaultValue prefers the union's own default and otherwise falls back to
// the first candidate that has one.
func (m *MixedType) DefaultValue() (any, bool) {
	if v, ok := m.base.DefaultValue(); ok {
		return v, true
	}
	for _, c := range m.candidates {
		if v, ok := c.DefaultValue(); ok {
			return v, true
		}
	}
	return nil, false
}

func (m *MixedType) Err() error {
	if err := m.base.Err(); err != nil {
		return err
	}
	for _, c := range m.candidates {
		if err := c.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (m *MixedType) check(v any) *ValidationError {
	if verr := m.validator()(v); verr != nil {
		return verr
	}
	if v == nil {
		return nil
	}
	var last *ValidationError
	for _, c := range m.candidates {
		verr := c.check(v)
		if verr == nil {
			return nil
		}
		last = verr
	}
	return last
}
