package schemafile

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/reoring/skema"
)

// bounds is the value of the length and range attributes. A missing side is
// left open.
type bounds struct {
	Min  *float64 `mapstructure:"min"`
	Max  *float64 `mapstructure:"max"`
	Code string   `mapstructure:"code"`
}

// attributes holds the scalar attributes of one definition. Nested
// definitions (items, types, properties, dictionary) are read from the node
// tree directly so that their order and positions survive.
type attributes struct {
	Type           string  `mapstructure:"type"`
	Code           string  `mapstructure:"code"`
	Optional       bool    `mapstructure:"optional"`
	Default        any     `mapstructure:"default"`
	DefaultFactory string  `mapstructure:"defaultFactory"`
	Length         *bounds `mapstructure:"length"`
	Range          *bounds `mapstructure:"range"`
	Values         []any   `mapstructure:"values"`
	ValuesCode     string  `mapstructure:"valuesCode"`
	Pattern        string  `mapstructure:"pattern"`
	PatternCode    string  `mapstructure:"patternCode"`
}

var nestedKeys = map[string]bool{"items": true, "types": true, "properties": true, "dictionary": true}

var knownAttributes = map[string]bool{
	"type": true, "code": true, "optional": true, "default": true, "defaultFactory": true,
	"length": true, "range": true, "values": true, "valuesCode": true, "pattern": true, "patternCode": true,
	"items": true, "types": true, "properties": true, "dictionary": true,
}

func attrSet(names ...string) map[string]bool {
	m := map[string]bool{"type": true, "optional": true}
	for _, n := range names {
		m[n] = true
	}
	return m
}

var attributesByType = map[string]map[string]bool{
	"string":  attrSet("code", "default", "defaultFactory", "length", "values", "valuesCode", "pattern", "patternCode"),
	"number":  attrSet("code", "default", "defaultFactory", "range", "values", "valuesCode"),
	"integer": attrSet("code", "default", "defaultFactory", "range", "values", "valuesCode"),
	"boolean": attrSet("code", "default", "defaultFactory", "values", "valuesCode"),
	"any":     attrSet("default", "defaultFactory"),
	"mixed":   attrSet("types", "default", "defaultFactory"),
	"array":   attrSet("code", "default", "defaultFactory", "length", "items"),
	"object":  attrSet("code", "properties", "dictionary"),
}

type builder struct {
	factories map[string]func() skema.Factory
	log       *slog.Logger
}

func (b *builder) fail(n *yaml.Node, path string, err error) error {
	return &Error{Line: n.Line, Col: n.Column, Path: path, Err: err}
}

func (b *builder) failf(n *yaml.Node, path, format string, args ...any) error {
	return b.fail(n, path, fmt.Errorf(format, args...))
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

func codes(code string) []string {
	if code == "" {
		return nil
	}
	return []string{code}
}

func (b *builder) build(n *yaml.Node, path string) (skema.Type, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, b.failf(n, path, "a definition must be a mapping")
	}
	pairs, err := mappingPairs(n)
	if err != nil {
		var dup *DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &Error{Line: dup.Line, Col: dup.Col, Path: path, Err: err}
		}
		return nil, b.fail(n, path, err)
	}

	raw := make(map[string]any, len(pairs))
	nested := map[string]*yaml.Node{}
	keys := map[string]*yaml.Node{}
	for _, p := range pairs {
		k := p[0].Value
		keys[k] = p[0]
		if !knownAttributes[k] {
			return nil, b.failf(p[0], path, "unknown attribute %q", k)
		}
		if nestedKeys[k] {
			nested[k] = p[1]
			continue
		}
		v, err := nodeValue(p[1])
		if err != nil {
			var dup *DuplicateKeyError
			if errors.As(err, &dup) {
				return nil, &Error{Line: dup.Line, Col: dup.Col, Path: path, Err: err}
			}
			return nil, b.fail(p[1], path, err)
		}
		raw[k] = v
	}

	typ, _ := raw["type"].(string)
	allowed, ok := attributesByType[typ]
	if !ok {
		if kn, present := keys["type"]; present {
			return nil, b.failf(kn, path, "unknown type %q", typ)
		}
		return nil, b.failf(n, path, "missing type attribute")
	}
	for _, p := range pairs {
		if !allowed[p[0].Value] {
			return nil, b.failf(p[0], path, "attribute %q does not apply to type %q", p[0].Value, typ)
		}
	}

	var attrs attributes
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &attrs, ErrorUnused: true})
	if err != nil {
		return nil, b.fail(n, path, err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, b.fail(n, path, err)
	}

	_, hasDefault := raw["default"]
	var factory skema.Factory
	if attrs.DefaultFactory != "" {
		if hasDefault {
			return nil, b.failf(keys["defaultFactory"], path, "default and defaultFactory are mutually exclusive")
		}
		mk, ok := b.factories[attrs.DefaultFactory]
		if !ok {
			return nil, b.failf(keys["defaultFactory"], path, "unknown factory %q", attrs.DefaultFactory)
		}
		factory = mk()
	}

	b.log.Debug("schema definition", "path", path, "type", typ, "line", n.Line)

	t, err := b.construct(n, path, typ, &attrs, nested)
	if err != nil {
		return nil, err
	}
	switch {
	case factory != nil:
		t = withDefault(t, factory)
	case hasDefault:
		t = withDefault(t, attrs.Default)
	}
	if err := t.Err(); err != nil {
		return nil, b.fail(n, path, err)
	}
	return t, nil
}

func lengthArgs(bd *bounds) (float64, float64) {
	min, max := skema.Unbounded, skema.Unbounded
	if bd.Min != nil {
		min = *bd.Min
	}
	if bd.Max != nil {
		max = *bd.Max
	}
	return min, max
}

func rangeArgs(bd *bounds) (float64, float64) {
	min, max := math.Inf(-1), skema.Unbounded
	if bd.Min != nil {
		min = *bd.Min
	}
	if bd.Max != nil {
		max = *bd.Max
	}
	return min, max
}

func (b *builder) construct(n *yaml.Node, path, typ string, a *attributes, nested map[string]*yaml.Node) (skema.Type, error) {
	switch typ {
	case "string":
		s := skema.String(codes(a.Code)...)
		if a.Optional {
			s.Optional()
		}
		if a.Length != nil {
			min, max := lengthArgs(a.Length)
			s.Length(min, max, codes(a.Length.Code)...)
		}
		if a.Pattern != "" {
			s.Pattern(a.Pattern, codes(a.PatternCode)...)
		}
		if a.Values != nil {
			s.Values(a.Values, codes(a.ValuesCode)...)
		}
		return s, nil

	case "number":
		v := skema.Number(codes(a.Code)...)
		if a.Optional {
			v.Optional()
		}
		if a.Range != nil {
			min, max := rangeArgs(a.Range)
			v.Range(min, max, codes(a.Range.Code)...)
		}
		if a.Values != nil {
			v.Values(a.Values, codes(a.ValuesCode)...)
		}
		return v, nil

	case "integer":
		v := skema.Integer(codes(a.Code)...)
		if a.Optional {
			v.Optional()
		}
		if a.Range != nil {
			min, max := rangeArgs(a.Range)
			v.Range(min, max, codes(a.Range.Code)...)
		}
		if a.Values != nil {
			v.Values(a.Values, codes(a.ValuesCode)...)
		}
		return v, nil

	case "boolean":
		v := skema.Boolean(codes(a.Code)...)
		if a.Optional {
			v.Optional()
		}
		if a.Values != nil {
			v.Values(a.Values, codes(a.ValuesCode)...)
		}
		return v, nil

	case "any":
		v := skema.Any()
		if a.Optional {
			v.Optional()
		}
		return v, nil

	case "mixed":
		var candidates []skema.Type
		if tn, ok := nested["types"]; ok {
			if tn.Kind != yaml.SequenceNode {
				return nil, b.failf(tn, path, "types must be a sequence of definitions")
			}
			for i, c := range tn.Content {
				ct, err := b.build(c, fmt.Sprintf("%s[%d]", join(path, "types"), i))
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, ct)
			}
		}
		v := skema.Mixed(candidates...)
		if a.Optional {
			v.Optional()
		}
		return v, nil

	case "array":
		in, ok := nested["items"]
		if !ok {
			return nil, b.failf(n, path, "an array needs an items definition")
		}
		elem, err := b.build(in, join(path, "items"))
		if err != nil {
			return nil, err
		}
		v := skema.Array(elem, codes(a.Code)...)
		if a.Optional {
			v.Optional()
		}
		if a.Length != nil {
			min, max := lengthArgs(a.Length)
			v.Length(min, max, codes(a.Length.Code)...)
		}
		return v, nil

	case "object":
		o := skema.Object(codes(a.Code)...)
		if a.Optional {
			o.Optional()
		}
		if pn, ok := nested["properties"]; ok {
			if pn.Kind != yaml.MappingNode {
				return nil, b.failf(pn, path, "properties must be a mapping")
			}
			pairs, err := mappingPairs(pn)
			if err != nil {
				var dup *DuplicateKeyError
				if errors.As(err, &dup) {
					return nil, &Error{Line: dup.Line, Col: dup.Col, Path: join(path, "properties"), Err: err}
				}
				return nil, b.fail(pn, path, err)
			}
			for _, p := range pairs {
				name := p[0].Value
				child, err := b.build(p[1], join(join(path, "properties"), name))
				if err != nil {
					return nil, err
				}
				o.Field(name, child)
			}
		}
		if dn, ok := nested["dictionary"]; ok {
			key, value, err := b.dictionary(dn, join(path, "dictionary"))
			if err != nil {
				return nil, err
			}
			o.Dictionary(key, value)
		}
		return o, nil
	}
	return nil, b.failf(n, path, "unknown type %q", typ)
}

func (b *builder) dictionary(n *yaml.Node, path string) (skema.Type, skema.Type, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nil, b.failf(n, path, "dictionary must be a mapping with key and value")
	}
	pairs, err := mappingPairs(n)
	if err != nil {
		return nil, nil, b.fail(n, path, err)
	}
	var key, value skema.Type
	for _, p := range pairs {
		switch p[0].Value {
		case "key":
			if key, err = b.build(p[1], join(path, "key")); err != nil {
				return nil, nil, err
			}
		case "value":
			if value, err = b.build(p[1], join(path, "value")); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, b.failf(p[0], path, "unknown attribute %q", p[0].Value)
		}
	}
	if key == nil || value == nil {
		return nil, nil, b.failf(n, path, "dictionary needs both key and value")
	}
	return key, value, nil
}

// withDefault applies a literal default or a factory through the kind's own
// Default builder.
func withDefault(t skema.Type, v any) skema.Type {
	switch k := t.(type) {
	case *skema.StringType:
		return k.Default(v)
	case *skema.NumberType:
		return k.Default(v)
	case *skema.IntegerType:
		return k.Default(v)
	case *skema.BooleanType:
		return k.Default(v)
	case *skema.AnyType:
		return k.Default(v)
	case *skema.MixedType:
		return k.Default(v)
	case *skema.ArrayType:
		return k.Default(v)
	}
	return t
}
