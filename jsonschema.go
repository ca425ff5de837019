package skema

import (
	js "github.com/reoring/skema/jsonschema"
)

// JSONSchema projects t into a JSON Schema representation. Rules map to the
// corresponding keywords through their names and params. A property is
// required unless it is optional, since defaults only apply on Create, and
// an optional value also admits null. Default factories are never called.
func JSONSchema(t Type) (*js.Schema, error) {
	if t == nil {
		return nil, &DefinitionError{Op: "JSONSchema", Message: "root is not a type"}
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	return projectValue(t), nil
}

// projectValue wraps the projection of an optional type so null passes.
func projectValue(t Type) *js.Schema {
	s := project(t)
	if !t.IsOptional() {
		return s
	}
	return &js.Schema{AnyOf: []*js.Schema{s, {Type: "null"}}}
}

func project(t Type) *js.Schema {
	s := &js.Schema{}
	switch k := t.(type) {
	case *StringType:
		s.Type = "string"
	case *NumberType:
		s.Type = "number"
	case *IntegerType:
		s.Type = "integer"
	case *BooleanType:
		s.Type = "boolean"
	case *MixedType:
		for _, c := range k.candidates {
			s.AnyOf = append(s.AnyOf, project(c))
		}
	case *ArrayType:
		s.Type = "array"
		s.Items = projectValue(k.elem)
	case *ObjectType:
		s.Type = "object"
		sh := k.shape()
		s.Properties = make(map[string]*js.Schema, len(sh.names))
		for _, name := range sh.names {
			child := sh.props[name]
			s.Properties[name] = projectValue(child)
			if !child.IsOptional() {
				s.Required = append(s.Required, name)
			}
		}
		if sh.dictKey != nil {
			s.PropertyNames = project(sh.dictKey)
			s.AdditionalProperties = projectValue(sh.dictValue)
		} else {
			s.AdditionalProperties = false
		}
	}

	_, isArray := t.(*ArrayType)
	for _, r := range t.Rules() {
		switch r.Name {
		case RuleTooShort:
			n := r.Params["min"].(int)
			if isArray {
				s.MinItems = &n
			} else {
				s.MinLength = &n
			}
		case RuleTooLong:
			n := r.Params["max"].(int)
			if isArray {
				s.MaxItems = &n
			} else {
				s.MaxLength = &n
			}
		case RuleTooSmall:
			f := r.Params["min"].(float64)
			s.Minimum = &f
		case RuleTooBig:
			f := r.Params["max"].(float64)
			s.Maximum = &f
		case RulePattern:
			// several patterns cannot be expressed with one keyword; keep the last
			s.Pattern = r.Params["pattern"].(string)
		case RuleInvalidEnum:
			s.Enum = r.Params["values"].([]any)
		}
	}
	if t.node().hasLiteralDefault() {
		s.Default, _ = t.DefaultValue()
	}
	return s
}
