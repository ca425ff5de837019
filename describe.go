package skema

// Record documents one Rule of a schema tree.
type Record struct {
	// Path holds the property labels leading to the rule's type; the root
	// has an empty path and array elements add "[index]" to the last label.
	Path []string
	// FailureCondition describes when the rule fails.
	FailureCondition string
	// Message is the rule's message with %name resolved to the last path
	// label ("Value" at the root) and value placeholders left neutral.
	Message string
	// Code is the user-supplied error code ("" when none).
	Code string
	// Rule names the check (one of the Rule* constants).
	Rule string
}

// IndexLabel is appended to a path label to denote "any element".
const IndexLabel = "[index]"

// Describe flattens the schema tree rooted at t into one Record per Rule,
// depth first: a type's optionality check, then its own rules in evaluation
// order, then (for objects) each declared property in declaration order or
// (for arrays) the element type.
func Describe(t Type) ([]Record, error) {
	if t == nil {
		return nil, &DefinitionError{Op: "Describe", Message: "root is not a type"}
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	var out []Record
	describeInto(&out, t, nil)
	return out, nil
}

func describeInto(out *[]Record, t Type, path []string) {
	emit := func(r Rule) {
		*out = append(*out, Record{
			Path:             append([]string(nil), path...),
			FailureCondition: r.Condition,
			Message:          describeMessage(r.Message, path),
			Code:             r.Code,
			Rule:             r.Name,
		})
	}
	emit(t.node().presenceRule())
	for _, r := range t.Rules() {
		emit(r)
	}

	switch k := t.(type) {
	case *ObjectType:
		sh := k.shape()
		for _, name := range sh.names {
			child := append(append([]string(nil), path...), name)
			describeInto(out, sh.props[name], child)
		}
	case *ArrayType:
		child := append([]string(nil), path...)
		if len(child) == 0 {
			child = []string{IndexLabel}
		} else {
			child[len(child)-1] += IndexLabel
		}
		describeInto(out, k.elem, child)
	}
}

func describeMessage(tmpl string, path []string) string {
	name := "Value"
	if len(path) > 0 {
		name = path[len(path)-1]
	}
	return resolveTemplate(tmpl, name, "<type>", "<value>", "<length>")
}
